package validate

import "fmt"

// StrictMode selects which discrepancy kinds are reported.
// It is an immutable value; the zero value reports nothing but
// unsupported managers.
type StrictMode struct {
	versionMismatch bool
	missing         bool
	extra           bool
}

// NewStrictMode returns a policy with the given switches.
func NewStrictMode(versionMismatch, missing, extra bool) StrictMode {
	return StrictMode{versionMismatch: versionMismatch, missing: missing, extra: extra}
}

// Strict returns the default policy, reporting every discrepancy kind.
func Strict() StrictMode {
	return NewStrictMode(true, true, true)
}

// IsStrictOnVersionMismatch reports whether differing versions are reported.
func (s StrictMode) IsStrictOnVersionMismatch() bool { return s.versionMismatch }

// IsStrictOnMissing reports whether documented but not installed packages are reported.
func (s StrictMode) IsStrictOnMissing() bool { return s.missing }

// IsStrictOnExtra reports whether installed but undocumented packages are reported.
func (s StrictMode) IsStrictOnExtra() bool { return s.extra }

func (s StrictMode) String() string {
	return fmt.Sprintf("version=%t missing=%t extra=%t", s.versionMismatch, s.missing, s.extra)
}
