package config

import (
	"fmt"
	"fusiongo/connection"
	"fusiongo/priorityFee"
	"fusiongo/tx"
	"fusiongo/utils"
	"github.com/gagliardetto/solana-go"
	"gopkg.in/yaml.v3"
	"os"
	"time"
)

type PriorityFeeFileConfig struct {
	Level priorityFee.PriorityFeeLevel `yaml:"level"`
	Min   *uint64                      `yaml:"min"`
	Max   *uint64                      `yaml:"max"`
}

type JitoFileConfig struct {
	Uuid           string  `yaml:"uuid"`
	Tips           uint64  `yaml:"tips"`
	Region         string  `yaml:"region"`
	BlockEngineUrl string  `yaml:"blockEngineUrl"`
	RateLimit      float64 `yaml:"rateLimit"`
}

type TxFileConfig struct {
	PriorityFee                 *PriorityFeeFileConfig `yaml:"priorityFee"`
	Jito                        *JitoFileConfig        `yaml:"jito"`
	DefaultComputeUnitLimit     *uint32                `yaml:"defaultComputeUnitLimit"`
	ComputeUnitMarginMultiplier *float64               `yaml:"computeUnitMarginMultiplier"`
	DisableSimulation           bool                   `yaml:"disableSimulation"`
	IgnoreSimulationError       bool                   `yaml:"ignoreSimulationError"`
	SigVerifyOnSimulation       *bool                  `yaml:"sigVerifyOnSimulation"`
	WaitForConfirmation         *bool                  `yaml:"waitForConfirmation"`
	PollingInterval             time.Duration          `yaml:"pollingInterval"`
	TransactionTimeout          time.Duration          `yaml:"transactionTimeout"`
	Blockhash                   string                 `yaml:"blockhash"`
}

type FileConfig struct {
	Rpc connection.Config `yaml:"rpc"`
	Tx  TxFileConfig      `yaml:"tx"`
}

// LoadConfig reads a yaml config file.
func LoadConfig(file string) (*FileConfig, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*FileConfig, error) {
	var config FileConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	if config.Rpc.Host == "" {
		return nil, fmt.Errorf("rpc.host is required")
	}
	return &config, nil
}

// SmartTxConfig applies the file values on top of tx.DefaultSmartTxConfig.
func (p *TxFileConfig) SmartTxConfig() (tx.SmartTxConfig, error) {
	config := tx.DefaultSmartTxConfig()
	if p.PriorityFee != nil {
		config.PriorityFee = &tx.PriorityFeeConfig{
			FeeLevel: p.PriorityFee.Level,
			FeeMin:   p.PriorityFee.Min,
			FeeMax:   p.PriorityFee.Max,
		}
	}
	if p.Jito != nil {
		config.Jito = &tx.JitoConfig{
			Uuid:           p.Jito.Uuid,
			Tips:           p.Jito.Tips,
			Region:         p.Jito.Region,
			BlockEngineUrl: p.Jito.BlockEngineUrl,
		}
	}
	config.DefaultComputeUnitLimit = utils.ValueOr(p.DefaultComputeUnitLimit, config.DefaultComputeUnitLimit)
	config.ComputeUnitMarginMultiplier = utils.ValueOr(p.ComputeUnitMarginMultiplier, config.ComputeUnitMarginMultiplier)
	config.DisableSimulation = p.DisableSimulation
	config.IgnoreSimulationError = p.IgnoreSimulationError
	config.SigVerifyOnSimulation = utils.ValueOr(p.SigVerifyOnSimulation, config.SigVerifyOnSimulation)
	config.WaitForConfirmation = utils.ValueOr(p.WaitForConfirmation, config.WaitForConfirmation)
	if p.PollingInterval > 0 {
		config.PollingInterval = p.PollingInterval
	}
	if p.TransactionTimeout > 0 {
		config.TransactionTimeout = p.TransactionTimeout
	}
	if p.Blockhash != "" {
		blockhash, err := solana.HashFromBase58(p.Blockhash)
		if err != nil {
			return config, fmt.Errorf("invalid blockhash %q: %w", p.Blockhash, err)
		}
		config.Blockhash = &blockhash
	}
	return config, nil
}
