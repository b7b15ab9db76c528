package toast

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Encode serializes messages into the wire format shared by the response
// header and the redirect stores: a JSON array of {"kind","text","options"}.
// Non-ASCII runes are written as \uXXXX escapes so the result is header-safe.
// An empty list encodes to the empty string.
func Encode(msgs []Message) (string, error) {
	if len(msgs) == 0 {
		return "", nil
	}

	data, err := json.Marshal(msgs)
	if err != nil {
		return "", errors.Join(ErrSerialization, err)
	}

	return asciiJSON(data), nil
}

// Decode parses the wire format produced by Encode.
// The empty string decodes to an empty list.
func Decode(s string) ([]Message, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var msgs []Message
	if err := json.Unmarshal([]byte(s), &msgs); err != nil {
		return nil, errors.Join(ErrSerialization, err)
	}
	if len(msgs) == 0 {
		return nil, nil
	}

	return msgs, nil
}

// asciiJSON rewrites every non-ASCII rune of a JSON document as a \u escape.
// Such runes can only occur inside string literals, so the document stays valid.
func asciiJSON(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]

		if r < utf8.RuneSelf {
			sb.WriteByte(byte(r))
			continue
		}

		if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			writeEscape(&sb, hi)
			writeEscape(&sb, lo)
			continue
		}
		writeEscape(&sb, r)
	}

	return sb.String()
}

func writeEscape(sb *strings.Builder, r rune) {
	hex := strconv.FormatInt(int64(r), 16)
	sb.WriteString(`\u`)
	for i := len(hex); i < 4; i++ {
		sb.WriteByte('0')
	}
	sb.WriteString(hex)
}
