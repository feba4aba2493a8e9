package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xavierca1/sankhya-leads/internal/infra/http/handlers"
	"github.com/xavierca1/sankhya-leads/internal/infra/http/middleware"
)

type routes struct {
	cors         []string
	sessions     middleware.SessionReader
	health       *handlers.HealthHandler
	leadProducts *handlers.LeadProductHandler
	leads        *handlers.LeadHandler
	products     *handlers.ProductHandler
	session      *handlers.SessionHandler
}

func newRouter(rt routes) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cors,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", rt.health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/leads/produtos/adicionar", rt.leadProducts.Add)

		r.Route("/sankhya/produtos", func(r chi.Router) {
			r.Post("/batch-info", rt.products.BatchInfo)
			r.Get("/search", rt.products.Search)
			r.Get("/estoque", rt.products.Stock)
			r.Get("/preco", rt.products.Price)
		})

		r.Delete("/session", rt.session.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(rt.sessions))
			r.Get("/session", rt.session.Me)
			r.Get("/leads", rt.leads.List)
			r.Get("/leads/{codLead}/produtos/historico", rt.leads.ProductHistory)
		})
	})

	return r
}
