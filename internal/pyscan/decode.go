package pyscan

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NonUTF8Error is returned by Decode when the source is not valid
// UTF-8 once any byte-order mark has been stripped. Per spec.md §4.5
// step 1, this is a recoverable error: the caller warns and skips the
// file rather than failing the whole build.
type NonUTF8Error struct {
	Path string
}

func (e *NonUTF8Error) Error() string {
	return "file " + e.Path + " is not valid UTF-8"
}

// Decode strips a leading UTF-8 byte-order mark, if present, and
// validates that the remaining bytes are well-formed UTF-8. path is
// used only to annotate the returned error.
func Decode(path string, data []byte) ([]byte, error) {
	stripped, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(stripped) {
		return nil, &NonUTF8Error{Path: path}
	}
	return stripped, nil
}
