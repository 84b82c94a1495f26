package jito

import (
	"github.com/iancoleman/strcase"
	"net/url"
	"strings"
)

const JITO_DEFAULT_REGION = "default"

const JITO_BUNDLES_PATH = "/api/v1/bundles"

// Block engine base urls keyed by snake_case region name.
var JitoApiUrls = map[string]string{
	JITO_DEFAULT_REGION: "https://mainnet.block-engine.jito.wtf",
	"amsterdam":         "https://amsterdam.mainnet.block-engine.jito.wtf",
	"frankfurt":         "https://frankfurt.mainnet.block-engine.jito.wtf",
	"london":            "https://london.mainnet.block-engine.jito.wtf",
	"ny":                "https://ny.mainnet.block-engine.jito.wtf",
	"new_york":          "https://ny.mainnet.block-engine.jito.wtf",
	"slc":               "https://slc.mainnet.block-engine.jito.wtf",
	"salt_lake_city":    "https://slc.mainnet.block-engine.jito.wtf",
	"singapore":         "https://singapore.mainnet.block-engine.jito.wtf",
	"tokyo":             "https://tokyo.mainnet.block-engine.jito.wtf",
}

// GetJitoApiUrlByRegion resolves a region name such as "Frankfurt", "NY" or
// "new-york". Unknown names resolve to the default block engine.
func GetJitoApiUrlByRegion(region string) string {
	if apiUrl, exists := JitoApiUrls[strcase.ToSnake(strings.TrimSpace(region))]; exists {
		return apiUrl
	}
	return JitoApiUrls[JITO_DEFAULT_REGION]
}

// GetJitoBundlesUrl appends the bundles endpoint to baseUrl and the uuid query
// parameter when uuid is not empty.
func GetJitoBundlesUrl(baseUrl string, uuid string) string {
	bundlesUrl := strings.TrimRight(baseUrl, "/") + JITO_BUNDLES_PATH
	if uuid == "" {
		return bundlesUrl
	}
	return bundlesUrl + "?uuid=" + url.QueryEscape(uuid)
}
