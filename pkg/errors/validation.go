package errors

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/matzehuels/stablegraph/pkg/codec"
)

// keyRegex matches snapshot keys: a leading alphanumeric followed by
// alphanumerics, dots, dashes, underscores, colons and slashes.
var keyRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:/-]*$`)

// ValidateKey validates a snapshot key. Keys are used verbatim by the Redis,
// Badger and Mongo backends, so they are restricted to a printable subset.
//
// Validation rules:
//   - Key cannot be empty
//   - Maximum length of 256 characters
//   - No path traversal sequences (..) or double slashes
//   - Only characters matched by [A-Za-z0-9._:/-], starting alphanumeric
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "key cannot be empty")
	}
	if len(key) > 256 {
		return New(ErrCodeInvalidKey, "key too long (max 256 characters)")
	}
	if strings.Contains(key, "..") || strings.Contains(key, "//") {
		return New(ErrCodeInvalidKey, "key contains invalid sequence: %q", key)
	}
	if !keyRegex.MatchString(key) {
		return New(ErrCodeInvalidKey, "invalid key: %q", key)
	}
	return nil
}

// ValidatePath validates a file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateFormat resolves a codec format name, returning a coded error for
// unknown names.
func ValidateFormat(name string) (codec.Format, error) {
	f, err := codec.ParseFormat(name)
	if err != nil {
		return "", Wrap(ErrCodeInvalidFormat, err, "unsupported format %q (want one of json, msgpack, bson)", name)
	}
	return f, nil
}
