package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xavierca1/sankhya-leads/internal/entity"
)

// LeadTotalRecalculator recalcula e grava o total de um lead.
type LeadTotalRecalculator interface {
	Execute(ctx context.Context, codLead string) (float64, error)
}

// Consumer é o pedaço de *amqp.Channel usado pelo worker.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// AuditRecorder grava no histórico que o total foi corrigido.
type AuditRecorder interface {
	Record(ctx context.Context, log *entity.LeadProductLog) error
}

type Worker struct {
	Channel      Consumer
	Recalculator LeadTotalRecalculator
	Audit        AuditRecorder
	now          func() time.Time
}

// NewWorker aceita audit nil quando não há banco configurado.
func NewWorker(ch Consumer, recalculator LeadTotalRecalculator, audit AuditRecorder) *Worker {
	return &Worker{Channel: ch, Recalculator: recalculator, Audit: audit, now: time.Now}
}

// Start consome queueName até ctx ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ [WORKER] Encerrado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("canal de entregas do RabbitMQ fechado")
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var payload RecalculationPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil || strings.TrimSpace(payload.CodLead) == "" {
		log.Printf("❌ [WORKER] Mensagem inválida: %s", string(d.Body))
		// Sem requeue para não travar a fila
		d.Nack(false, false)
		return
	}

	log.Printf("⚙️ [WORKER] Recalculando lead %s (%s)", payload.CodLead, payload.Reason)

	total, err := w.Recalculator.Execute(ctx, payload.CodLead)
	if err != nil {
		log.Printf("❌ [WORKER] Falha ao recalcular lead %s: %v", payload.CodLead, err)
		d.Nack(false, false)
		return
	}

	log.Printf("✅ [WORKER] Lead %s com valor total %.2f", payload.CodLead, total)
	w.recordRecalculated(ctx, payload.CodLead, total)
	d.Ack(false)
}

// recordRecalculated tira o lead da lista do reconciliador. Falha aqui não devolve a mensagem:
// o total já foi gravado no ERP.
func (w *Worker) recordRecalculated(ctx context.Context, codLead string, total float64) {
	if w.Audit == nil {
		return
	}
	entry := &entity.LeadProductLog{
		ID:             uuid.New().String(),
		CodLead:        codLead,
		NovoValorTotal: total,
		Status:         entity.LogStatusRecalculated,
		CreatedAt:      w.now(),
	}
	if err := w.Audit.Record(ctx, entry); err != nil {
		log.Printf("⚠️ [WORKER] Erro ao registrar recálculo do lead %s: %v", codLead, err)
	}
}
