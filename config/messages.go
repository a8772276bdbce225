package config

import "fmt"

const (
	errRequiredEnvNotSetFmt = "required environment variable %s is not set"
)

type messageBuilders struct {
	requiredEnvNotSet func(string) error
}

func newMessageBuilders() messageBuilders {
	return messageBuilders{
		requiredEnvNotSet: func(key string) error {
			return fmt.Errorf(errRequiredEnvNotSetFmt, key)
		},
	}
}

var messages = newMessageBuilders()
