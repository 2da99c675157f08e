package codec

import "errors"

var (
	// ErrUnknownFormat is returned for format names and file extensions that
	// do not map to a supported encoding.
	ErrUnknownFormat = errors.New("codec: unknown format")

	// ErrMalformed is returned when input bytes do not follow the wire layout.
	ErrMalformed = errors.New("codec: malformed document")

	// ErrUnsupportedVersion is returned for documents written by a newer
	// layout version.
	ErrUnsupportedVersion = errors.New("codec: unsupported version")

	// ErrDirectionMismatch is returned when a directed document is decoded
	// as an undirected graph or the other way around.
	ErrDirectionMismatch = errors.New("codec: direction mismatch")
)
