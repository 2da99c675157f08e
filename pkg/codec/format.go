package codec

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format names a wire encoding.
type Format string

const (
	JSON    Format = "json"
	MsgPack Format = "msgpack"
	BSON    Format = "bson"
)

// Formats lists the supported formats in a stable order.
var Formats = []Format{JSON, MsgPack, BSON}

// ParseFormat resolves a user-supplied format name. Matching is case
// insensitive and accepts "mpk" as an alias for msgpack.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "msgpack", "mpk":
		return MsgPack, nil
	case "bson":
		return BSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) String() string { return string(f) }
