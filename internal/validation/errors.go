package validation

import "fmt"

// ConfigError reports an unrecognized check option, such as an unknown value
// type or a malformed size limit. It is returned when options are built, not
// when checks run.
type ConfigError struct {
	Option  string
	Value   string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("invalid %s %q", e.Option, e.Value)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}
