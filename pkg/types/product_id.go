package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ProductID is an opaque catalog identifier. Backends send either a JSON number
// or a JSON string, and the id marshals back in the form it arrived.
//
// Numbers and non-numeric strings are held as their text. A JSON string whose
// text is a canonical integer keeps its quotes in the underlying value, so
// "12" and 12 stay distinct ids; use TextProductID to build one.
type ProductID string

// ParseProductID trims raw and rejects empty identifiers. Canonical integers
// parse to the numeric wire form.
func ParseProductID(raw string) (ProductID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("product id is required")
	}
	return ProductID(trimmed), nil
}

// TextProductID builds an id that is sent as a JSON string whatever its text.
func TextProductID(text string) ProductID {
	if isCanonicalInt(text) {
		return ProductID(`"` + text + `"`)
	}
	return ProductID(text)
}

// ProductIDFromInt64 formats a numeric catalog key.
func ProductIDFromInt64(v int64) ProductID {
	return ProductID(strconv.FormatInt(v, 10))
}

// String returns the id text without any wire quoting.
func (id ProductID) String() string {
	if id.quotedDigits() {
		return string(id[1 : len(id)-1])
	}
	return string(id)
}

// IsText reports whether the id travels as a JSON string.
func (id ProductID) IsText() bool {
	return id.quotedDigits() || !isCanonicalInt(string(id))
}

// Int64 returns the numeric value of the id text when it is a canonical
// integer, regardless of wire form.
func (id ProductID) Int64() (int64, bool) {
	text := id.String()
	if !isCanonicalInt(text) {
		return 0, false
	}
	v, err := strconv.ParseInt(text, 10, 64)
	return v, err == nil
}

// MarshalJSON implements json.Marshaler.
func (id ProductID) MarshalJSON() ([]byte, error) {
	if id.IsText() {
		return json.Marshal(id.String())
	}
	return []byte(id), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ProductID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*id = TextProductID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return errors.New("product id must be a string or a number")
	}
	*id = ProductID(n.String())
	return nil
}

func (id ProductID) quotedDigits() bool {
	s := string(id)
	return len(s) > 2 && s[0] == '"' && s[len(s)-1] == '"' && isCanonicalInt(s[1:len(s)-1])
}

func isCanonicalInt(s string) bool {
	v, err := strconv.ParseInt(s, 10, 64)
	return err == nil && strconv.FormatInt(v, 10) == s
}
