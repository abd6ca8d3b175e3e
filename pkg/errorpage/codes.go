package errorpage

import (
	"net/http"
	"sort"
	"strconv"
)

// StatusCode is the numeric status as found on the page. It may be empty.
type StatusCode string

const (
	// DefaultKey is used for unknown and missing codes
	DefaultKey = "errors.internal_error"
	// DefaultTitle is used for unknown and missing codes
	DefaultTitle = "Error"
)

// Mapping pairs a localization key with the built-in english title
type Mapping struct {
	Key   string
	Title string
}

// Mappings lists every code with a dedicated key and fallback title
var Mappings = map[StatusCode]Mapping{
	"403": {Key: "errors.forbidden", Title: "Forbidden"},
	"404": {Key: "errors.not_found", Title: "Not Found"},
	"500": {Key: "errors.internal_error", Title: "Internal Server Error"},
	"502": {Key: "errors.bad_gateway", Title: "Bad Gateway"},
	"503": {Key: "errors.service_unavailable", Title: "Service Temporarily Unavailable"},
	"504": {Key: "errors.gateway_timeout", Title: "Gateway Time-out"},
}

// Lookup returns the mapping for an exact code match, or the defaults
func Lookup(code StatusCode) Mapping {
	if m, ok := Mappings[code]; ok {
		return m
	}
	return Mapping{Key: DefaultKey, Title: DefaultTitle}
}

// KnownCodes returns the mapped codes in ascending order
func KnownCodes() []StatusCode {
	codes := make([]StatusCode, 0, len(Mappings))
	for code := range Mappings {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Known reports whether the code has a dedicated mapping
func (c StatusCode) Known() bool {
	_, ok := Mappings[c]
	return ok
}

// Numeric reports whether the code is a non-empty string of ascii digits
func (c StatusCode) Numeric() bool {
	if c == "" {
		return false
	}
	for _, r := range c {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// HTTPStatus returns the code as a response status. Anything that is not a
// 4xx or 5xx number is served as 500.
func (c StatusCode) HTTPStatus() int {
	if !c.Numeric() {
		return http.StatusInternalServerError
	}
	v, err := strconv.Atoi(string(c))
	if err != nil || v < http.StatusBadRequest || v > 599 {
		return http.StatusInternalServerError
	}
	return v
}

// DocumentTitle prefixes the title with the code when there is one
func DocumentTitle(code StatusCode, title string) string {
	if code == "" {
		return title
	}
	return string(code) + " " + title
}
