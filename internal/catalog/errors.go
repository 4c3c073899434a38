// Package catalog provides the localized message catalog used to render check results.
package catalog

import "fmt"

// ConfigError reports a catalog that cannot serve a language: unreadable file,
// malformed YAML, an unknown language or a missing message key.
type ConfigError struct {
	Language Language
	Message  string
	Cause    error
}

func (e *ConfigError) Error() string {
	prefix := "catalog configuration error"
	if e.Language != "" {
		prefix = fmt.Sprintf("catalog configuration error [%s]", e.Language)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}
