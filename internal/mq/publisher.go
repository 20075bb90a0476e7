package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/XxArDy/hotels/internal/hotel"
	"github.com/XxArDy/hotels/internal/logger"
)

// EventEnvelope is the wire format for booking events.
type EventEnvelope struct {
	Type    hotel.EventType `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type InvoicePayload struct {
	InvoiceID int       `json:"invoice_id"`
	RoomID    int       `json:"room_id"`
	ClientID  int       `json:"client_id"`
	DateStart time.Time `json:"date_start"`
	DateEnd   time.Time `json:"date_end"`
	Amount    float64   `json:"amount"`
}

type Config struct {
	L     *logger.Logger
	URL   string
	Queue string
}

// Publisher pushes booking events to a durable queue. It is best-effort by
// design: a failed publish is logged and never fails the booking itself.
type Publisher struct {
	l     *logger.Logger
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func NewPublisher(conf Config) (*Publisher, error) {
	conn, err := amqp.Dial(conf.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		conf.Queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()

		return nil, fmt.Errorf("declare queue %v: %w", conf.Queue, err)
	}

	return &Publisher{
		l:     conf.L,
		conn:  conn,
		ch:    ch,
		queue: conf.Queue,
	}, nil
}

func (p *Publisher) Close() {
	if err := p.ch.Close(); err != nil {
		p.l.LogWarnf("Could not close amqp channel: %v", err.Error())
	}

	if err := p.conn.Close(); err != nil {
		p.l.LogWarnf("Could not close amqp connection: %v", err.Error())
	}
}

func (p *Publisher) InvoiceEvent(ctx context.Context, event *hotel.Event, invoice *hotel.Invoice) {
	payload, err := json.Marshal(InvoicePayload{
		InvoiceID: invoice.ID,
		RoomID:    invoice.RoomID,
		ClientID:  invoice.ClientID,
		DateStart: invoice.DateStart,
		DateEnd:   invoice.DateEnd,
		Amount:    invoice.Amount,
	})
	if err != nil {
		p.l.LogErrorf("Could not marshal payload for invoice %v: %v", invoice.ID, err.Error())

		return
	}

	body, err := json.Marshal(EventEnvelope{Type: event.Type, Payload: payload})
	if err != nil {
		p.l.LogErrorf("Could not marshal envelope for invoice %v: %v", invoice.ID, err.Error())

		return
	}

	correlationID, ok := hotel.RequestIDFromContext(ctx)
	if !ok {
		correlationID = uuid.NewString()
	}

	err = p.ch.PublishWithContext(
		ctx,
		"",
		p.queue,
		false, // mandatory
		false, // immediate
		//nolint:exhaustruct
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     uuid.NewString(),
			CorrelationId: correlationID,
			Timestamp:     event.CreatedAt,
			Body:          body,
		},
	)
	if err != nil {
		p.l.LogWarnf("Could not publish %v for invoice %v: %v", event.Type, invoice.ID, err.Error())

		return
	}

	p.l.LogInfo("Published %v for invoice %v", event.Type, invoice.ID)
}
