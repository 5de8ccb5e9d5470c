package config

import (
	"os"
)

const (
	// default port for the http server to run
	DefaultPort = "9998"
)

type Config struct {
	Port string

	// Endpoint of the BankID RP API. Leave empty to run against the
	// in-memory simulator.
	Endpoint string

	// ClientCertFile and ClientKeyFile hold the RP certificate for mTLS
	// against a real endpoint.
	ClientCertFile string
	ClientKeyFile  string

	// HashKey and EncryptKey protect the session tokens and cookies.
	HashKey    string
	EncryptKey string
}

// FromEnvVars loads configuration parameters from environment variables.
// If there is no such variable defined, then use default values.
func FromEnvVars(defaults *Config) *Config {
	if defaults == nil {
		defaults = &Config{}
	}
	cfg := &Config{
		Port:           defaults.Port,
		Endpoint:       defaults.Endpoint,
		ClientCertFile: defaults.ClientCertFile,
		ClientKeyFile:  defaults.ClientKeyFile,
		HashKey:        defaults.HashKey,
		EncryptKey:     defaults.EncryptKey,
	}
	if value, ok := os.LookupEnv("PORT"); ok {
		cfg.Port = value
	}
	if value, ok := os.LookupEnv("BANKID_ENDPOINT"); ok {
		cfg.Endpoint = value
	}
	if value, ok := os.LookupEnv("BANKID_CLIENT_CERT_FILE"); ok {
		cfg.ClientCertFile = value
	}
	if value, ok := os.LookupEnv("BANKID_CLIENT_KEY_FILE"); ok {
		cfg.ClientKeyFile = value
	}
	if value, ok := os.LookupEnv("TOKEN_HASH_KEY"); ok {
		cfg.HashKey = value
	}
	if value, ok := os.LookupEnv("TOKEN_ENCRYPT_KEY"); ok {
		cfg.EncryptKey = value
	}
	return cfg
}
