package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc(RouteFavicon, s.FaviconHandler())
	s.RegisterRouteFunc(RouteCatchAll, ChainMiddleware(s.SessionHandler(), s.LoggingMiddleware))
}
