package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/cobra"
	"github.com/xavierca1/sankhya-leads/internal/infra/database"
	"github.com/xavierca1/sankhya-leads/internal/infra/http/handlers"
	"github.com/xavierca1/sankhya-leads/internal/infra/queue"
	"github.com/xavierca1/sankhya-leads/internal/infra/worker"
	"github.com/xavierca1/sankhya-leads/internal/usecase"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Sobe a API HTTP (e o worker de recálculo quando o RabbitMQ está configurado)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx)
		},
	}
}

func runServe(ctx context.Context) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	var (
		db      *sql.DB
		audit   usecase.AuditRecorder
		history handlers.HistoryReader
	)
	if a.cfg.DatabaseURL != "" {
		db, err = database.NewDBConnection(a.cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		repo := database.NewLeadProductLogRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
		audit, history = repo, repo
		log.Println("🗄️ Histórico de inclusões gravando no Postgres")

		go worker.NewStaleTotalWorker(repo, a.recalc).Start(ctx)
	}

	var (
		mq       *queue.RabbitMQ
		producer usecase.QueueProducerInterface
	)
	if a.cfg.RabbitMQURL != "" {
		mq, err = queue.NewRabbitMQ(a.cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		defer mq.Close()

		producer = queue.NewProducer(mq.Ch)
		consumer := queue.NewWorker(mq.Ch, a.recalc, audit)
		go func() {
			if err := consumer.Start(ctx, queue.QueueName); err != nil && ctx.Err() == nil {
				log.Printf("❌ Worker de recálculo parou: %v", err)
			}
		}()
	}

	addProductUC := usecase.NewAddProductUseCase(a.leads, a.products, a.recalc, producer, audit)
	batchInfoUC := usecase.NewBatchInfoUseCase(a.products, a.products)
	listLeadsUC := usecase.NewListLeadsUseCase(a.leads, a.cfg.AdminRole)

	var conn *amqp.Connection
	if mq != nil {
		conn = mq.Conn
	}
	router := newRouter(routes{
		cors:         a.cfg.CORSOrigins,
		sessions:     a.signer,
		health:       handlers.NewHealthHandler(db, conn, a.client.BaseURL()),
		leadProducts: handlers.NewLeadProductHandler(addProductUC),
		leads:        handlers.NewLeadHandler(listLeadsUC, history),
		products:     handlers.NewProductHandler(a.products, batchInfoUC),
		session:      handlers.NewSessionHandler(),
	})

	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🔥 Server sankhya-leads rodando na porta %s", a.cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("🛑 Encerrando servidor...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
