package env

import (
	"os"
	"time"
)

var E *ENV

type ENV struct {
	Environment            string `yaml:"environment"`
	DatabaseConfigFilePath string `yaml:"database_config_file_path"`
	RedisConfigFilePath    string `yaml:"redis_config_file_path"`

	ServerName string `yaml:"server_name"`

	Backend *BackendHost `yaml:"backend"`

	// SecretKey signs session tokens. It is required and has no
	// default; the SECRET_KEY environment variable wins over the file.
	SecretKey      string `yaml:"secret_key"`
	TokenDuration  string `yaml:"token_duration"`
	RequestTimeout string `yaml:"request_timeout"`
}

type BackendHost struct {
	HTTPHost string `yaml:"host_http"`
	Port     string `yaml:"port"`
}

func (env *ENV) GetTokenDuration() time.Duration {
	if env == nil || env.TokenDuration == "" {
		return 168 * time.Hour
	}
	duration, err := time.ParseDuration(env.TokenDuration)
	if err != nil {
		return 168 * time.Hour
	}
	return duration
}

func (env *ENV) GetRequestTimeout() time.Duration {
	if env == nil || env.RequestTimeout == "" {
		return 30 * time.Second
	}
	duration, err := time.ParseDuration(env.RequestTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return duration
}

func (env *ENV) GetServerPort() string {
	if env == nil || env.Backend == nil || env.Backend.Port == "" {
		return "3000"
	}
	return env.Backend.Port
}

func (env *ENV) IsDevelopment() bool {
	return env != nil && env.Environment == "development"
}

func (env *ENV) SetDefaults() {
	if env.Environment == "" {
		env.Environment = "development"
	}
	if env.ServerName == "" {
		env.ServerName = "closet"
	}
	if env.Backend == nil {
		env.Backend = &BackendHost{}
	}
	if env.Backend.Port == "" {
		env.Backend.Port = "3000"
	}
	if env.Backend.HTTPHost == "" {
		env.Backend.HTTPHost = "0.0.0.0"
	}

	// Secret key: environment variable > config file (required, no default)
	if key := os.Getenv("SECRET_KEY"); key != "" {
		env.SecretKey = key
	}
	if env.SecretKey == "" {
		panic("SECRET_KEY is required. Set it via environment variable or config file.")
	}
	if env.TokenDuration == "" {
		env.TokenDuration = "168h"
	}
	if env.RequestTimeout == "" {
		env.RequestTimeout = "30s"
	}
}
