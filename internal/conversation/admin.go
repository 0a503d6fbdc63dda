package conversation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tablebook/reservation-service/internal/domain"
	"github.com/tablebook/reservation-service/internal/service/reservations"
)

// Команды операторской панели приходят в Payload с префиксом "admin:"
const (
	adminPrefix     = "admin:"
	adminCmdStats   = "stats"
	adminCmdList    = "list"
	adminCmdConfirm = "confirm"
	adminCmdCancel  = "cancel"
	adminCmdPurge   = "purge"
)

// AdminMachine машина состояний операторской панели
// Проверка прав выполняется диспетчером до вызова, но машина
// перепроверяет сама: команда оператора не должна сработать от
// обычного пользователя
type AdminMachine struct {
	sessions   SessionStore
	service    OperatorService
	isOperator func(requesterID int64) bool
	logger     Logger
}

// NewAdminMachine создает машину операторской панели
func NewAdminMachine(
	sessions SessionStore,
	service OperatorService,
	isOperator func(requesterID int64) bool,
	logger Logger,
) *AdminMachine {
	return &AdminMachine{
		sessions:   sessions,
		service:    service,
		isOperator: isOperator,
		logger:     logger,
	}
}

// HandleEvent обрабатывает одно событие операторской панели
func (m *AdminMachine) HandleEvent(ctx context.Context, event Event) ([]Prompt, error) {
	if !m.isOperator(event.RequesterID) {
		m.logger.Warn("admin: access denied for requester=%d", event.RequesterID)
		return []Prompt{{RequesterID: event.RequesterID, Kind: PromptAccessDenied}}, nil
	}

	// Ожидание подтверждения очистки перекрывает разбор команд:
	// подтверждением считается только явное согласие, любой другой
	// ввод отменяет операцию
	session, ok, err := m.sessions.Get(ctx, event.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("%w: get session: %v", ErrSessionStore, err)
	}
	if ok && session.Step == StepPurgeConfirm {
		return m.handlePurgeConfirm(ctx, session, event)
	}

	command := strings.TrimPrefix(event.Payload, adminPrefix)
	name, arg, _ := strings.Cut(command, ":")

	switch name {
	case adminCmdStats:
		return m.handleStats(ctx, event.RequesterID)
	case adminCmdList:
		return m.handleList(ctx, event.RequesterID, arg)
	case adminCmdConfirm:
		return m.handleTransition(ctx, event.RequesterID, arg, m.service.Confirm)
	case adminCmdCancel:
		return m.handleTransition(ctx, event.RequesterID, arg, m.service.Cancel)
	case adminCmdPurge:
		return m.handlePurgeRequest(ctx, event.RequesterID, arg)
	default:
		m.logger.Warn("admin: unknown command %q from requester=%d", event.Payload, event.RequesterID)
		return []Prompt{{RequesterID: event.RequesterID, Kind: PromptIdleMenu}}, nil
	}
}

// HasPendingConfirmation сообщает, ждет ли оператор подтверждения
// очистки. Диспетчер по этому признаку направляет следующий ввод сюда
func (m *AdminMachine) HasPendingConfirmation(ctx context.Context, requesterID int64) (bool, error) {
	session, ok, err := m.sessions.Get(ctx, requesterID)
	if err != nil {
		return false, fmt.Errorf("%w: get session: %v", ErrSessionStore, err)
	}
	return ok && session.Step == StepPurgeConfirm, nil
}

func (m *AdminMachine) handleStats(ctx context.Context, requesterID int64) ([]Prompt, error) {
	stats, err := m.service.Stats(ctx)
	if err != nil {
		m.logger.Error("admin: stats failed: %v", err)
		return m.failure(requesterID), nil
	}

	return []Prompt{{
		RequesterID: requesterID,
		Kind:        PromptOperatorStats,
		Data: OperatorStatsData{
			Total:   stats.Total,
			Pending: stats.Pending,
			Today:   stats.Today,
		},
	}}, nil
}

func (m *AdminMachine) handleList(ctx context.Context, requesterID int64, arg string) ([]Prompt, error) {
	scope := reservations.ListScope(arg)
	if arg == "" {
		scope = reservations.ScopeAll
	}

	list, err := m.service.List(ctx, scope)
	if err != nil {
		m.logger.Error("admin: list %q failed: %v", scope, err)
		return m.failure(requesterID), nil
	}

	return []Prompt{{
		RequesterID: requesterID,
		Kind:        PromptReservationList,
		Data: ReservationListData{
			Scope: string(scope),
			Items: toViews(list),
		},
	}}, nil
}

func (m *AdminMachine) handleTransition(
	ctx context.Context,
	requesterID int64,
	arg string,
	transition func(ctx context.Context, id int64) (*domain.Reservation, error),
) ([]Prompt, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return []Prompt{{RequesterID: requesterID, Kind: PromptIdleMenu, Invalid: true}}, nil
	}

	updated, err := transition(ctx, id)
	if err != nil {
		m.logger.Error("admin: transition for reservation=%d failed: %v", id, err)
		return m.failure(requesterID), nil
	}

	return []Prompt{{
		RequesterID: requesterID,
		Kind:        PromptResult,
		Data:        ResultData{Outcome: OutcomeSuccess, ReservationID: updated.ID},
	}}, nil
}

// handlePurgeRequest показывает предпросмотр и ставит оператора в
// режим ожидания подтверждения. До подтверждения ничего не удаляется
func (m *AdminMachine) handlePurgeRequest(ctx context.Context, requesterID int64, arg string) ([]Prompt, error) {
	scope, ok := reservations.ParsePurgeScope(arg)
	if !ok {
		return []Prompt{{RequesterID: requesterID, Kind: PromptIdleMenu, Invalid: true}}, nil
	}

	count, err := m.service.PurgePreview(ctx, scope)
	if err != nil {
		m.logger.Error("admin: purge preview %q failed: %v", scope, err)
		return m.failure(requesterID), nil
	}

	session := &Session{
		RequesterID: requesterID,
		Step:        StepPurgeConfirm,
		PurgeScope:  string(scope),
		PurgeCount:  count,
	}
	if err := m.sessions.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: put session: %v", ErrSessionStore, err)
	}

	return []Prompt{{
		RequesterID: requesterID,
		Kind:        PromptPurgeConfirm,
		Data:        PurgeConfirmData{Scope: string(scope), Count: count},
	}}, nil
}

func (m *AdminMachine) handlePurgeConfirm(ctx context.Context, session *Session, event Event) ([]Prompt, error) {
	if err := m.sessions.Delete(ctx, session.RequesterID); err != nil {
		return nil, fmt.Errorf("%w: delete session: %v", ErrSessionStore, err)
	}

	if event.Payload != ControlConfirm && event.Payload != ControlYes {
		m.logger.Info("admin: purge %q aborted by requester=%d", session.PurgeScope, session.RequesterID)
		return []Prompt{{
			RequesterID: session.RequesterID,
			Kind:        PromptPurgeResult,
			Data:        PurgeResultData{Scope: session.PurgeScope, Deleted: 0, Aborted: true},
		}}, nil
	}

	scope, ok := reservations.ParsePurgeScope(session.PurgeScope)
	if !ok {
		m.logger.Error("admin: stored purge scope %q is invalid", session.PurgeScope)
		return m.failure(session.RequesterID), nil
	}

	deleted, err := m.service.Purge(ctx, scope)
	if err != nil {
		m.logger.Error("admin: purge %q failed: %v", scope, err)
		return m.failure(session.RequesterID), nil
	}

	m.logger.Info("admin: purge %q deleted %d reservations, requester=%d",
		scope, deleted, session.RequesterID)
	return []Prompt{{
		RequesterID: session.RequesterID,
		Kind:        PromptPurgeResult,
		Data:        PurgeResultData{Scope: string(scope), Deleted: deleted},
	}}, nil
}

func (m *AdminMachine) failure(requesterID int64) []Prompt {
	return []Prompt{{
		RequesterID: requesterID,
		Kind:        PromptResult,
		Data:        ResultData{Outcome: OutcomeFailure},
	}}
}
