package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// APIPath prefixes the JSON endpoints.
	APIPath = RootPath + "api"

	// ErrNilAppOrGatewayFatalLogMsg is used if app, cfg or gateway pointer is nil.
	ErrNilAppOrGatewayFatalLogMsg = "app, cfg or gateway is nil"
)
