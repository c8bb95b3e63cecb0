package pattern

import "fmt"

// ConfigurationError reports a malformed mode specification: a pattern that
// fails to compile, a duplicated subtype name, or a blueprint with no
// variants. It is only produced while a mode is built, never mid-parse.
type ConfigurationError struct {
	// Mode names the mode being built.
	Mode string

	// Subtype names the offending pattern, when one is identifiable.
	Subtype string

	// Reason describes what is wrong.
	Reason string

	// Err is the underlying cause, if any (e.g. a regexp compile error).
	Err error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("mode %q: %s", e.Mode, e.Reason)
	if e.Subtype != "" {
		msg = fmt.Sprintf("mode %q: pattern %q: %s", e.Mode, e.Subtype, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
