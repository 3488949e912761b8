package lib

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	expected := Config{
		MainConfig:    DefaultMainConfig(),
		EngineConfig:  DefaultEngineConfig(),
		RPCConfig:     DefaultRPCConfig(),
		StoreConfig:   DefaultStoreConfig(),
		MetricsConfig: DefaultMetricsConfig(),
	}
	require.Equal(t, expected, DefaultConfig())
}

func TestFileConfig(t *testing.T) {
	filePath := "./test_config"
	// define a variable to test upon
	config := DefaultConfig()
	config.CurrencyAsset = "tau"
	// write to file
	require.NoError(t, config.WriteToFile(filePath))
	defer os.RemoveAll(filePath)
	// read from file
	got, err := NewConfigFromFile(filePath)
	require.NoError(t, err)
	// compare got vs expected
	require.Equal(t, config, got)
}

func TestGetLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected int32
	}{
		{name: "debug", level: "debug", expected: DebugLevel},
		{name: "info", level: "INFO", expected: InfoLevel},
		{name: "warn", level: "warning", expected: WarnLevel},
		{name: "error", level: "error", expected: ErrorLevel},
		{name: "unknown", level: "verbose", expected: DebugLevel},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m := MainConfig{LogLevel: test.level}
			require.Equal(t, test.expected, m.GetLogLevel())
		})
	}
}
