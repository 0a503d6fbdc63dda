package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/tablebook/reservation-service/internal/domain"
)

// Тема по умолчанию для событий бронирований
const DefaultSubject = "reservations.status"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ReservationEvent событие жизненного цикла бронирования для внешних
// потребителей (витрины оператора, дашборды)
type ReservationEvent struct {
	Event       string `json:"event"`
	ID          int64  `json:"reservation_id"`
	RequesterID int64  `json:"requester_id"`
	Status      string `json:"status"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	Zone        string `json:"zone"`
	TableNumber int    `json:"table_number"`
	PartySize   int    `json:"party_size"`
}

const (
	eventCreated       = "reservation_created"
	eventStatusChanged = "reservation_status_changed"
)

// NATSNotifier публикует события бронирований в NATS
type NATSNotifier struct {
	conn    *nats.Conn
	subject string
	logger  Logger
}

// NewNATS подключается к NATS и создает нотификатор
func NewNATS(url, subject string, logger Logger) (*NATSNotifier, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("notifier: failed to connect to NATS at %s: %w", url, err)
	}

	if subject == "" {
		subject = DefaultSubject
	}

	return &NATSNotifier{conn: conn, subject: subject, logger: logger}, nil
}

// ReservationCreated публикует событие о новом бронировании
func (n *NATSNotifier) ReservationCreated(ctx context.Context, res *domain.Reservation) error {
	return n.publish(ctx, eventCreated, res)
}

// StatusChanged публикует событие о смене статуса бронирования
func (n *NATSNotifier) StatusChanged(ctx context.Context, res *domain.Reservation) error {
	return n.publish(ctx, eventStatusChanged, res)
}

func (n *NATSNotifier) publish(_ context.Context, event string, res *domain.Reservation) error {
	payload := ReservationEvent{
		Event:       event,
		ID:          res.ID,
		RequesterID: res.RequesterID,
		Status:      string(res.Status),
		Date:        res.Date.Format(domain.DateFormat),
		StartTime:   res.StartTime.String(),
		Zone:        res.Zone,
		TableNumber: res.TableNumber,
		PartySize:   res.PartySize,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("notifier: failed to marshal event: %w", err)
	}

	if err := n.conn.Publish(n.subject, data); err != nil {
		return fmt.Errorf("notifier: failed to publish to %s: %w", n.subject, err)
	}

	n.logger.Info("notifier: published %s for reservation=%d", event, res.ID)
	return nil
}

// Close закрывает подключение к NATS
func (n *NATSNotifier) Close() {
	n.conn.Close()
}

// LogNotifier запасной нотификатор: пишет события только в лог
// Используется, когда NATS выключен в конфигурации
type LogNotifier struct {
	logger Logger
}

// NewLog создает лог-нотификатор
func NewLog(logger Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// ReservationCreated пишет событие о новом бронировании в лог
func (n *LogNotifier) ReservationCreated(_ context.Context, res *domain.Reservation) error {
	n.logger.Info("notifier: reservation created: id=%d, requester=%d, %s %s, zone=%s, table=%d",
		res.ID, res.RequesterID, res.Date.Format(domain.DateFormat), res.StartTime, res.Zone, res.TableNumber)
	return nil
}

// StatusChanged пишет событие о смене статуса в лог
func (n *LogNotifier) StatusChanged(_ context.Context, res *domain.Reservation) error {
	n.logger.Info("notifier: reservation status changed: id=%d, status=%s", res.ID, res.Status)
	return nil
}
