package connection

import (
	"crypto/md5"
	"encoding/base64"
	"fmt"
	"fusiongo/utils"
	"github.com/gagliardetto/solana-go/rpc"
	"sort"
	"sync"
)

type Config struct {
	Host        string            `yaml:"host"`
	Token       string            `yaml:"token"`
	IsSecure    bool              `yaml:"isSecure"`
	MaxReferrer int               `yaml:"maxReferrer"`
	Headers     map[string]string `yaml:"headers"`
}

func (p *Config) Hash() string {
	t := fmt.Sprintf("%s://%s/%s", utils.TT(p.IsSecure, "https", "http"), p.Host, p.Token)
	names := utils.MapKeys(p.Headers)
	sort.Strings(names)
	for _, name := range names {
		t = t + "|" + name + ":" + p.Headers[name]
	}
	sum := md5.Sum([]byte(t))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (p *Config) GetRpcEndpoint() string {
	return fmt.Sprintf("%s://%s",
		utils.TT(p.IsSecure, "https", "http"),
		p.Host+(utils.TT(p.Token == "", "", "/"+p.Token)),
	)
}

// Manager hands out rpc clients per configured endpoint. Up to MaxReferrer clients are
// created for an endpoint, after that an existing one is reused at random.
type Manager struct {
	mx             sync.Mutex
	configs        map[string]*Config
	rpcConnections map[string][]*rpc.Client
}

func CreateManager() *Manager {
	return &Manager{
		configs:        make(map[string]*Config),
		rpcConnections: make(map[string][]*rpc.Client),
	}
}

// AddConfig registers config under id, or under its hash when no id is given, and
// returns the connection id.
func (p *Manager) AddConfig(config Config, id ...string) string {
	p.mx.Lock()
	defer p.mx.Unlock()
	connectionId := config.Hash()
	if len(id) > 0 && len(id[0]) > 0 {
		connectionId = id[0]
	}
	if !utils.MapHas(p.configs, connectionId) {
		p.configs[connectionId] = &config
	}
	return connectionId
}

func (p *Manager) getConnectionId(id ...string) string {
	var connectionId string
	if len(id) > 0 && len(id[0]) > 0 {
		connectionId = id[0]
	}
	if !utils.MapHas(p.configs, connectionId) {
		connectionId = utils.RandomElement(utils.MapKeys(p.configs))
	}
	return connectionId
}

// GetRpc returns a client for id, or for a random endpoint when id is unknown. It panics
// when no endpoint was added.
func (p *Manager) GetRpc(id ...string) *rpc.Client {
	p.mx.Lock()
	defer p.mx.Unlock()
	if len(p.configs) == 0 {
		panic("no rpc connection configured")
	}
	connectionId := p.getConnectionId(id...)
	config := p.configs[connectionId]
	connectionLength := len(p.rpcConnections[connectionId])
	var connection *rpc.Client
	if connectionLength == 0 || config.MaxReferrer <= 0 || connectionLength < config.MaxReferrer {
		connection = p.CreateRpc(config)
		p.rpcConnections[connectionId] = append(p.rpcConnections[connectionId], connection)
	} else {
		connection = utils.RandomElement(p.rpcConnections[connectionId])
	}
	return connection
}

func (p *Manager) CreateRpc(config *Config) *rpc.Client {
	if len(config.Headers) > 0 {
		return rpc.NewWithHeaders(config.GetRpcEndpoint(), config.Headers)
	}
	return rpc.New(config.GetRpcEndpoint())
}
