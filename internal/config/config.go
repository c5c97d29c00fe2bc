package config

type Config interface {
	EnvConfig
	AuthConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFile() string
	GetEnv() string
	IsDevelopment() bool
}

type mainConfig struct {
	EnvVars
	Auth
}

func New() Config {
	return mainConfig{}
}
