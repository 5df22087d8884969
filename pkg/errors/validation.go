package errors

import (
	"strings"
	"unicode"
)

// ValidatePackageName validates a package name read from package manager metadata.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters (a name must fit on one manifest line)
//   - Maximum length of 256 characters
//
// Ecosystem-specific naming rules are not enforced; adapters report what
// the package manager installed.
func ValidatePackageName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	return nil
}

// ValidateManifestFilename validates a manifest filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidateManifestFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidManifest, "manifest filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidManifest, "manifest filename cannot contain path separators")
	}

	if filename == "." || filename == ".." {
		return New(ErrCodeInvalidManifest, "manifest filename cannot be %q", filename)
	}

	for _, r := range filename {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidManifest, "manifest filename contains invalid characters")
		}
	}

	return nil
}
