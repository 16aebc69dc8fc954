// errors.go — External encoder failure type.
package render

import "fmt"

// EncodingError reports an external encoder run that did not produce a valid
// result: a non-zero exit, a timeout, or unusable probe output. Stderr holds
// the process's captured diagnostics.
type EncodingError struct {
	Err    error
	Stderr string
}

func (e *EncodingError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("external encoder: %v: %s", e.Err, e.Stderr)
	}
	return fmt.Sprintf("external encoder: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }
