package config

import "fmt"

// ConfigurationError is fatal: the process must refuse to start rather
// than attempt degraded operation.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Message)
}
