package handler

// Route type
type Route string

const (
	// RouteStringsAuto serves the bundle negotiated from Accept-Language
	RouteStringsAuto Route = "stringsAuto"
	// RouteStringsLocale serves the bundle of a given locale
	RouteStringsLocale Route = "stringsLocale"
	// RoutePage renders the page for the code in the path
	RoutePage Route = "page"
	// RouteDefaultBackend renders the page for the X-Code header
	RouteDefaultBackend Route = "defaultBackend"
)

const (
	// HeaderCode is set by ingress controllers using a default backend
	HeaderCode = "X-Code"
	// DefaultCode is rendered when a request names no code
	DefaultCode = "404"

	stringsPrefix = "strings/"
	autoBundle    = "auto"
	bundleSuffix  = ".json"
	pageSuffix    = ".html"
)
