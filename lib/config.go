package lib

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/units"
)

/* This file implements logic for 'user controlled' configurations of each module of the node */

const (
	// FILE NAMES in the 'data directory'
	ConfigFilePath  = "config.json"  // the file path for the node configuration
	GenesisFilePath = "genesis.json" // the file path for the genesis ledger (deployed assets, owner, params)
)

// Config is the structure of the user configuration options for an exchange node
type Config struct {
	MainConfig    // main options spanning over all modules
	EngineConfig  // exchange engine options
	RPCConfig     // rpc API options
	StoreConfig   // persistence options
	MetricsConfig // telemetry options
}

// DefaultConfig() returns a Config with developer set options
func DefaultConfig() Config {
	return Config{
		MainConfig:    DefaultMainConfig(),
		EngineConfig:  DefaultEngineConfig(),
		RPCConfig:     DefaultRPCConfig(),
		StoreConfig:   DefaultStoreConfig(),
		MetricsConfig: DefaultMetricsConfig(),
	}
}

// MAIN CONFIG BELOW

type MainConfig struct {
	LogLevel string `json:"logLevel"` // any level includes the levels above it: debug < info < warning < error
}

// DefaultMainConfig() sets log level to 'info'
func DefaultMainConfig() MainConfig {
	return MainConfig{
		LogLevel: "info", // everything but debug is the default
	}
}

// GetLogLevel() parses the log string in the config file into a LogLevel Enum
func (m *MainConfig) GetLogLevel() int32 {
	switch {
	case strings.Contains(strings.ToLower(m.LogLevel), "deb"):
		return DebugLevel
	case strings.Contains(strings.ToLower(m.LogLevel), "inf"):
		return InfoLevel
	case strings.Contains(strings.ToLower(m.LogLevel), "war"):
		return WarnLevel
	case strings.Contains(strings.ToLower(m.LogLevel), "err"):
		return ErrorLevel
	default:
		return DebugLevel
	}
}

// ENGINE CONFIG BELOW

// EngineConfig is the node-level (not ledger-level) configuration of the exchange engine
type EngineConfig struct {
	EngineAccount  string `json:"engineAccount"`  // the account that holds every escrowed asset on behalf of the engine
	CurrencyAsset  string `json:"currencyAsset"`  // the fixed 'currency' leg of every pool
	AssetCacheSize int    `json:"assetCacheSize"` // how many verified asset handles are kept resolved
}

// DefaultEngineConfig() returns the developer set engine options
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		EngineAccount:  "con_dex",  // escrow account of the engine
		CurrencyAsset:  "currency", // the native currency asset
		AssetCacheSize: 256,        // plenty for a registry of deployed assets
	}
}

// RPC CONFIG BELOW

type RPCConfig struct {
	RPCPort     string `json:"rpcPort"`     // the port where the rpc server is hosted
	AdminPort   string `json:"adminPort"`   // the port where the admin rpc server is hosted
	RPCUrl      string `json:"rpcURL"`      // the url where the rpc server is hosted
	AdminRPCUrl string `json:"adminRPCUrl"` // the url where the admin rpc server is hosted
	TimeoutS    int    `json:"timeoutS"`    // the rpc request timeout in seconds
}

// DefaultRPCConfig() sets rpc url to localhost and sets rpc and admin ports
func DefaultRPCConfig() RPCConfig {
	return RPCConfig{
		RPCPort:     "50002",                  // the rpc is served on localhost:50002
		AdminPort:   "50003",                  // the admin rpc is served on localhost:50003
		RPCUrl:      "http://localhost:50002", // use a local rpc by default
		AdminRPCUrl: "http://localhost:50003", // use a local admin rpc by default
		TimeoutS:    3,                        // the rpc timeout is 3 seconds
	}
}

// STORE CONFIG BELOW

// StoreConfig is user configurations for the key value database
type StoreConfig struct {
	DataDirPath  string `json:"dataDirPath"`  // path of the designated folder where the application stores its data
	DBName       string `json:"dbName"`       // name of the database
	InMemory     bool   `json:"inMemory"`     // non-disk database, only for testing
	MemTableSize int64  `json:"memTableSize"` // size of each badger memtable in bytes
}

// DefaultDataDirPath() is $USERHOME/.canopy-amm
func DefaultDataDirPath() string {
	// get the user home
	home, err := os.UserHomeDir()
	// if unable to get the user home
	if err != nil {
		// fatal error
		panic(err)
	}
	// exit with full default data directory path
	return filepath.Join(home, ".canopy-amm")
}

// DefaultStoreConfig() returns the developer recommended store configuration
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		DataDirPath:  DefaultDataDirPath(),  // use the default data dir path
		DBName:       "exchange",            // 'exchange' database name
		InMemory:     false,                 // persist to disk, not memory
		MemTableSize: int64(16 * units.MiB), // the ledger is small and written once per call
	}
}

// METRICS CONFIG BELOW

// MetricsConfig represents the configuration for the metrics server
type MetricsConfig struct {
	Enabled           bool   `json:"enabled"`           // if the metrics are enabled
	PrometheusAddress string `json:"prometheusAddress"` // the address of the server
	SampleIntervalS   int    `json:"sampleIntervalS"`   // how often process resource usage is sampled
}

// DefaultMetricsConfig() returns the default metrics configuration
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:           true,           // enabled by default
		PrometheusAddress: "0.0.0.0:9090", // the default prometheus address
		SampleIntervalS:   10,             // sample cpu and memory every 10 seconds
	}
}

// WriteToFile() saves the Config object to a JSON file
func (c Config) WriteToFile(filepath string) error {
	// convert the config to indented 'pretty' json bytes
	jsonBytes, err := json.MarshalIndent(c, "", "  ")
	// if an error occurred during the conversion
	if err != nil {
		// exit with error
		return err
	}
	// write the config.json file to the data directory
	return os.WriteFile(filepath, jsonBytes, os.ModePerm)
}

// NewConfigFromFile() populates a Config object from a JSON file
func NewConfigFromFile(filepath string) (Config, error) {
	// read the file into bytes
	fileBytes, err := os.ReadFile(filepath)
	// if an error occurred
	if err != nil {
		// exit with error
		return Config{}, err
	}
	// define the default config to fill in any blanks in the file
	c := DefaultConfig()
	// populate the default config with the file bytes
	if err = json.Unmarshal(fileBytes, &c); err != nil {
		// exit with error
		return Config{}, err
	}
	// exit
	return c, nil
}
