package server

func (s *Server) setupRoutes() {
	s.app.Get("/", s.homeHandler)
	s.app.Get("/health", s.healthHandler)

	s.app.Get("/api/dashboard/metrics", s.metricsHandler)

	s.app.Get("/api/vendas", s.listSalesHandler)
	s.app.Post("/api/vendas", s.addSaleHandler)
	s.app.Put("/api/vendas/:index", s.editSaleHandler)
}
