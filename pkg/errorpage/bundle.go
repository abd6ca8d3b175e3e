package errorpage

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// KeySeparator splits localization keys into path segments
const KeySeparator = "."

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	ErrInvalidBundle = errors.New("bundle is not a json object")
	ErrKeyNotFound   = errors.New("localization key not found")
	ErrNotString     = errors.New("localization value is not a string")
)

// Bundle is a decoded localization document of nested string mappings
type Bundle map[string]any

// DecodeBundle parses data and requires the top level value to be an object
func DecodeBundle(data []byte) (Bundle, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(err, "failed to decode bundle")
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, ErrInvalidBundle
	}
	return Bundle(m), nil
}

// Resolve walks the bundle along the dot separated key. The walk stops as
// soon as an intermediate value is not an object.
func (b Bundle) Resolve(key string) (any, bool) {
	var cur any = map[string]any(b)
	for _, part := range strings.Split(key, KeySeparator) {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// Lookup returns the string leaf for key
func (b Bundle) Lookup(key string) (string, bool) {
	v, ok := b.Resolve(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
