package util

import "fmt"

const pkgName = "hostwild"

// NewError is similar to [errors.New],
// but the message of the resulting error is prefixed with "hostwild: ".
func NewError(text string) error {
	return &configError{msg: text}
}

// Errorf is similar to [fmt.Errorf],
// but the message of the resulting error is prefixed with "hostwild: ".
func Errorf(format string, a ...any) error {
	return &configError{msg: fmt.Sprintf(format, a...)}
}

// A configError is an error that stems from an invalid allowlist
// configuration, as opposed to a runtime mismatch.
type configError struct {
	msg string
}

func (e *configError) Error() string {
	return fmt.Sprintf("%s: %s", pkgName, e.msg)
}
