package main

import (
	"log"

	"github.com/xavierca1/sankhya-leads/internal/config"
	"github.com/xavierca1/sankhya-leads/internal/infra/http/middleware"
	"github.com/xavierca1/sankhya-leads/internal/infra/integration/sankhya"
	"github.com/xavierca1/sankhya-leads/internal/infra/session"
	"github.com/xavierca1/sankhya-leads/internal/usecase"
)

// app reúne as dependências que todos os comandos compartilham.
type app struct {
	cfg      *config.Config
	client   *sankhya.Client
	products *sankhya.ProductService
	leads    *sankhya.LeadService
	signer   *session.Signer
	locks    *usecase.LeadLocker
	recalc   *usecase.RecalculateLeadTotalUseCase
}

func newApp(cfg *config.Config) *app {
	tokens := sankhya.NewTokenSource(cfg.SankhyaBaseURL, sankhya.Credentials{
		Token:    cfg.SankhyaToken,
		AppKey:   cfg.SankhyaAppKey,
		Username: cfg.SankhyaUsername,
		Password: cfg.SankhyaPassword,
	})

	client := sankhya.NewClient(cfg.SankhyaBaseURL, tokens)
	client.OnError(func(service string, err error) {
		middleware.RecordIntegrationError("sankhya")
		log.Printf("❌ Sankhya %s: %v", service, err)
	})

	leads := sankhya.NewLeadService(client)
	locks := usecase.NewLeadLocker()

	return &app{
		cfg:      cfg,
		client:   client,
		products: sankhya.NewProductService(client),
		leads:    leads,
		signer:   session.NewSigner(cfg.SessionSecret),
		locks:    locks,
		recalc:   usecase.NewRecalculateLeadTotalUseCase(leads, locks),
	}
}

func loadApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return newApp(cfg), nil
}
