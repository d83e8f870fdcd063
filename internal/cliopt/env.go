package cliopt

import (
	"os"
	"strconv"
)

func GetStringEnv(envVar string, defaultValue string) string {
	envValue, ok := os.LookupEnv(envVar)
	if !ok || envValue == "" {
		return defaultValue
	}
	return envValue
}

// GetBoolEnv ignores values strconv.ParseBool does not understand.
func GetBoolEnv(envVar string, defaultValue bool) bool {
	envValue, ok := os.LookupEnv(envVar)
	if !ok || envValue == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(envValue)
	if err != nil {
		return defaultValue
	}
	return b
}
