// Package jsonx emits JSON in the spacing style the Hug SCM shell
// scripts already produce: single line, a space after every comma and
// colon. Keeping the two sources byte-compatible lets the shell diff
// and cache outputs regardless of which side generated them.
package jsonx

import (
	"bytes"
	"encoding/json"
)

// Marshal encodes v as single-line JSON with ", " and ": " separators.
func Marshal(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return respace(raw), nil
}

// respace inserts a space after structural ',' and ':' bytes. String
// contents are left untouched, tracked via a quote/escape scan.
func respace(raw []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(raw) + len(raw)/8)
	inString := false
	escaped := false
	for _, b := range raw {
		buf.WriteByte(b)
		if inString {
			switch {
			case escaped:
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				inString = false
			}
			continue
		}
		switch b {
		case '"':
			inString = true
		case ',', ':':
			buf.WriteByte(' ')
		}
	}
	return buf.Bytes()
}
