package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	dataFileVar    = "DATA_FILE"
	environmentVar = "ENV"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8800")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "TaskHive Server")
}

func (EnvVars) GetDataFile() string {
	return GetEnv(dataFileVar, "./data/taskhive.db")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv(environmentVar)
	if env == "" {
		return "DEV"
	}
	return env
}

func (e EnvVars) IsDevelopment() bool {
	return e.GetEnv() == "DEV"
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
