// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRPCURL = "https://mainnet.helius-rpc.com/?api-key=test-key"

var validConfigJSON = `{
    "rpc_url": "https://mainnet.helius-rpc.com/?api-key=file-key",
    "poll_interval_ms": 5000,
    "fetch_limit": 10,
    "debug_logging": true
}`

// clearEnv makes sure values from the developer shell do not leak into tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TRANSFER_FEED_RPC_URL",
		"TRANSFER_FEED_METADATA_URL",
		"TRANSFER_FEED_FETCH_LIMIT",
		"HELIUS_RPC_URL",
		"NEXT_PUBLIC_HELIUS_RPC_URL",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRANSFER_FEED_RPC_URL", testRPCURL)

	cfg, err := load("", "")
	require.NoError(t, err)

	assert.Equal(t, testRPCURL, cfg.RPCURL)
	assert.Equal(t, "https://mainnet.helius-rpc.com/?api-key=test-key", cfg.MetadataURL)
	assert.Equal(t, DefaultPriceURL, cfg.PriceURL)
	assert.Equal(t, 10*time.Second, cfg.PollInterval())
	assert.Equal(t, 20, cfg.FetchLimit)
	assert.Equal(t, 20, cfg.DisplayLimit)
	assert.Equal(t, 3, cfg.Retries)
	assert.Equal(t, time.Second, cfg.RetryBaseDelay())
	assert.Equal(t, time.Second, cfg.TxDelay())
	assert.Equal(t, 500*time.Millisecond, cfg.MetadataDelay())
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout())
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
	assert.Equal(t, DefaultExportDir, cfg.ExportDir)
	assert.False(t, cfg.DebugLogging)
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr error
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:    "Valid config file",
			content: validConfigJSON,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://mainnet.helius-rpc.com/?api-key=file-key", cfg.MetadataURL)
				assert.Equal(t, 5*time.Second, cfg.PollInterval())
				assert.Equal(t, 10, cfg.FetchLimit)
				assert.True(t, cfg.DebugLogging)
			},
		},
		{
			name:    "Environment overrides file",
			content: validConfigJSON,
			env: map[string]string{
				"TRANSFER_FEED_RPC_URL":     testRPCURL,
				"TRANSFER_FEED_FETCH_LIMIT": "7",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, testRPCURL, cfg.RPCURL)
				assert.Equal(t, 7, cfg.FetchLimit)
			},
		},
		{
			name:    "Helius variable fallback",
			content: `{}`,
			env:     map[string]string{"NEXT_PUBLIC_HELIUS_RPC_URL": testRPCURL},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, testRPCURL, cfg.RPCURL)
			},
		},
		{
			name:    "Explicit metadata url needs no api key",
			content: `{"rpc_url": "https://api.mainnet-beta.solana.com", "metadata_url": "https://das.example.com/"}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://das.example.com/", cfg.MetadataURL)
			},
		},
		{
			name:    "Missing rpc url",
			content: `{}`,
			wantErr: ErrMissingRPCURL,
		},
		{
			name:    "Missing api key",
			content: `{"rpc_url": "https://api.mainnet-beta.solana.com"}`,
			wantErr: ErrMissingAPIKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeFile(t, "config.json", tt.content)

			cfg, err := load(path, "")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"non-http rpc", `{"rpc_url": "ws://node.example.com/?api-key=k"}`},
		{"zero interval", `{"rpc_url": "` + testRPCURL + `", "poll_interval_ms": 0}`},
		{"negative delay", `{"rpc_url": "` + testRPCURL + `", "tx_delay_ms": -1}`},
		{"zero fetch limit", `{"rpc_url": "` + testRPCURL + `", "fetch_limit": 0}`},
		{"bad price url", `{"rpc_url": "` + testRPCURL + `", "price_url": "price.jup.ag"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			path := writeFile(t, "config.json", tt.content)

			cfg, err := load(path, "")
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides variables that are already set, even when empty
	require.NoError(t, os.Unsetenv("HELIUS_RPC_URL"))
	envFile := writeFile(t, ".env", "HELIUS_RPC_URL="+testRPCURL+"\n")

	cfg, err := load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, testRPCURL, cfg.RPCURL)
}

func TestLoadMissingFiles(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRANSFER_FEED_RPC_URL", testRPCURL)

	_, err := load("", filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err, "missing .env is ignored")

	_, err = load(filepath.Join(t.TempDir(), "absent.json"), "")
	assert.Error(t, err, "explicit config path must exist")
}
