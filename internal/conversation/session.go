package conversation

import (
	"context"

	"github.com/tablebook/reservation-service/pkg/types"
)

// Step шаг диалога бронирования
type Step int

const (
	StepIdle Step = iota
	StepDate
	StepZone
	StepTime
	StepTable
	StepPartySize
	StepName
	StepContact
	StepConfirm

	// StepPurgeConfirm шаг операторского диалога: ожидание
	// подтверждения пакетного удаления
	StepPurgeConfirm
)

// String возвращает имя шага для логов
func (s Step) String() string {
	switch s {
	case StepIdle:
		return "idle"
	case StepDate:
		return "awaiting_date"
	case StepZone:
		return "awaiting_zone"
	case StepTime:
		return "awaiting_time"
	case StepTable:
		return "awaiting_table"
	case StepPartySize:
		return "awaiting_party_size"
	case StepName:
		return "awaiting_name"
	case StepContact:
		return "awaiting_contact"
	case StepConfirm:
		return "awaiting_confirmation"
	case StepPurgeConfirm:
		return "awaiting_purge_confirmation"
	default:
		return "unknown"
	}
}

// Draft черновик бронирования, заполняется по мере прохождения шагов
// Поля более ранних шагов сохраняются при возврате назад
type Draft struct {
	Date      string
	Zone      string
	Time      types.TimeString
	Table     int
	PartySize int
	Name      string
	Phone     string
}

// Session состояние диалога одного пользователя
// Принадлежит исключительно своему пользователю: между разными
// пользователями нет общего изменяемого состояния
type Session struct {
	RequesterID int64
	Step        Step
	Draft       Draft

	// Поля операторского диалога подтверждения очистки
	PurgeScope string
	PurgeCount int64
}

// SessionStore хранилище сессий диалогов
// Интерфейс позволяет заменить процессную память на внешнее KV
// хранилище, не трогая машину состояний
type SessionStore interface {
	Get(ctx context.Context, requesterID int64) (*Session, bool, error)
	Put(ctx context.Context, session *Session) error
	Delete(ctx context.Context, requesterID int64) error
}
