package notify

import (
	"context"
	"fmt"
	"time"

	mail "github.com/xhit/go-simple-mail/v2"

	"github.com/XxArDy/hotels/internal/hotel"
	"github.com/XxArDy/hotels/internal/logger"
)

const (
	connectTimeout = 10 * time.Second
	sendTimeout    = 10 * time.Second
	queueSize      = 16
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Config struct {
	L    *logger.Logger
	Host string
	Port int
	From string
}

// Mailer sends booking confirmations. Messages go through a channel so the
// SMTP round trip never sits on the request path.
type Mailer struct {
	l        *logger.Logger
	conf     Config
	messages chan Message
}

func NewMailer(conf Config) *Mailer {
	return &Mailer{
		l:        conf.L,
		conf:     conf,
		messages: make(chan Message, queueSize),
	}
}

// Listen drains the message channel until ctx is done.
func (m *Mailer) Listen(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-m.messages:
				m.send(msg)
			}
		}
	}()
}

func (m *Mailer) send(msg Message) {
	server := mail.NewSMTPClient()
	server.Host = m.conf.Host
	server.Port = m.conf.Port
	server.KeepAlive = false
	server.ConnectTimeout = connectTimeout
	server.SendTimeout = sendTimeout

	client, err := server.Connect()
	if err != nil {
		m.l.LogWarnf("Could not connect to smtp server: %v", err.Error())

		return
	}

	email := mail.NewMSG()
	email.SetFrom(m.conf.From).AddTo(msg.To).SetSubject(msg.Subject)
	email.SetBody(mail.TextHTML, msg.Body)

	if err := email.Send(client); err != nil {
		m.l.LogWarnf("Could not send mail to %v: %v", msg.To, err.Error())

		return
	}

	m.l.LogInfo("Confirmation mail sent to %v", msg.To)
}

func (m *Mailer) InvoiceEvent(_ context.Context, event *hotel.Event, invoice *hotel.Invoice) {
	if event.Type != hotel.EventInvoiceCreated {
		return
	}

	if invoice.Client == nil || invoice.Client.Email == "" {
		return
	}

	roomNumber := invoice.RoomID
	if invoice.Room != nil {
		roomNumber = invoice.Room.Number
	}

	msg := Message{
		To:      invoice.Client.Email,
		Subject: "Booking confirmation",
		Body: fmt.Sprintf(
			"<p>Dear %s %s,</p><p>room %d is booked for you from %s to %s. Total: %.2f.</p>",
			invoice.Client.FirstName,
			invoice.Client.LastName,
			roomNumber,
			invoice.DateStart.Format("2006-01-02"),
			invoice.DateEnd.Format("2006-01-02"),
			invoice.Amount,
		),
	}

	select {
	case m.messages <- msg:
	default:
		m.l.LogWarnf("Mail queue is full, dropping confirmation for invoice %v", invoice.ID)
	}
}
