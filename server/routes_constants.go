package server

// Route path constants
const (
	RouteFavicon  = "/favicon.ico"
	RouteCatchAll = "/*"
)

const (
	helloBody         = "Hello World!"
	internalErrorBody = "Internal Server Error"
)
