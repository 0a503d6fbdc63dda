package conversation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablebook/reservation-service/internal/domain"
	"github.com/tablebook/reservation-service/internal/service/reservations"
)

type fakeOperatorService struct {
	stats        *reservations.Stats
	list         []*domain.Reservation
	previewCount int64
	purged       int64

	confirmed []int64
	cancelled []int64
	purgeRuns []reservations.PurgeScope
	failWith  error
}

func (f *fakeOperatorService) Confirm(_ context.Context, id int64) (*domain.Reservation, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.confirmed = append(f.confirmed, id)
	return &domain.Reservation{ID: id, Status: domain.StatusConfirmed}, nil
}

func (f *fakeOperatorService) Cancel(_ context.Context, id int64) (*domain.Reservation, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.cancelled = append(f.cancelled, id)
	return &domain.Reservation{ID: id, Status: domain.StatusCancelled}, nil
}

func (f *fakeOperatorService) List(_ context.Context, _ reservations.ListScope) ([]*domain.Reservation, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.list, nil
}

func (f *fakeOperatorService) Stats(_ context.Context) (*reservations.Stats, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.stats, nil
}

func (f *fakeOperatorService) PurgePreview(_ context.Context, _ reservations.PurgeScope) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	return f.previewCount, nil
}

func (f *fakeOperatorService) Purge(_ context.Context, scope reservations.PurgeScope) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	f.purgeRuns = append(f.purgeRuns, scope)
	return f.purged, nil
}

const operatorID = int64(100001)

func operatorOnly(id int64) bool { return id == operatorID }

func newTestAdmin(service *fakeOperatorService) (*AdminMachine, *MemoryStore) {
	sessions := NewMemoryStore()
	return NewAdminMachine(sessions, service, operatorOnly, noopLogger{}), sessions
}

func adminSend(t *testing.T, m *AdminMachine, requester int64, payload string) []Prompt {
	t.Helper()
	prompts, err := m.HandleEvent(context.Background(), Event{
		RequesterID: requester,
		Kind:        EventChoice,
		Payload:     payload,
	})
	require.NoError(t, err)
	require.NotEmpty(t, prompts)
	return prompts
}

func TestAdminAccessDenied(t *testing.T) {
	m, _ := newTestAdmin(&fakeOperatorService{})

	prompts := adminSend(t, m, 555, "admin:stats")
	assert.Equal(t, PromptAccessDenied, prompts[0].Kind)
}

func TestAdminStats(t *testing.T) {
	m, _ := newTestAdmin(&fakeOperatorService{
		stats: &reservations.Stats{Total: 12, Pending: 3, Today: 5},
	})

	prompts := adminSend(t, m, operatorID, "admin:stats")
	require.Equal(t, PromptOperatorStats, prompts[0].Kind)

	data, ok := prompts[0].Data.(OperatorStatsData)
	require.True(t, ok)
	assert.Equal(t, int64(12), data.Total)
	assert.Equal(t, int64(3), data.Pending)
	assert.Equal(t, int64(5), data.Today)
}

func TestAdminList(t *testing.T) {
	m, _ := newTestAdmin(&fakeOperatorService{
		list: []*domain.Reservation{
			{ID: 1, Status: domain.StatusPending, StartTime: "19:00"},
			{ID: 2, Status: domain.StatusConfirmed, StartTime: "20:00"},
		},
	})

	prompts := adminSend(t, m, operatorID, "admin:list:pending")
	require.Equal(t, PromptReservationList, prompts[0].Kind)

	data, ok := prompts[0].Data.(ReservationListData)
	require.True(t, ok)
	assert.Equal(t, "pending", data.Scope)
	assert.Len(t, data.Items, 2)
}

func TestAdminConfirmAndCancel(t *testing.T) {
	service := &fakeOperatorService{}
	m, _ := newTestAdmin(service)

	prompts := adminSend(t, m, operatorID, "admin:confirm:17")
	require.Equal(t, PromptResult, prompts[0].Kind)
	result, ok := prompts[0].Data.(ResultData)
	require.True(t, ok)
	assert.Equal(t, OutcomeSuccess, result.Outcome)
	assert.Equal(t, int64(17), result.ReservationID)
	assert.Equal(t, []int64{17}, service.confirmed)

	adminSend(t, m, operatorID, "admin:cancel:18")
	assert.Equal(t, []int64{18}, service.cancelled)
}

func TestAdminTransitionBadID(t *testing.T) {
	service := &fakeOperatorService{}
	m, _ := newTestAdmin(service)

	prompts := adminSend(t, m, operatorID, "admin:confirm:seventeen")
	assert.True(t, prompts[0].Invalid)
	assert.Empty(t, service.confirmed)
}

// Очистка — двухфазная: предпросмотр, затем явное подтверждение
func TestAdminPurgeConfirmFlow(t *testing.T) {
	service := &fakeOperatorService{previewCount: 4, purged: 4}
	m, sessions := newTestAdmin(service)

	prompts := adminSend(t, m, operatorID, "admin:purge:outdated")
	require.Equal(t, PromptPurgeConfirm, prompts[0].Kind)

	preview, ok := prompts[0].Data.(PurgeConfirmData)
	require.True(t, ok)
	assert.Equal(t, "outdated", preview.Scope)
	assert.Equal(t, int64(4), preview.Count)
	// Предпросмотр ничего не удаляет
	assert.Empty(t, service.purgeRuns)

	session, found, err := sessions.Get(context.Background(), operatorID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, StepPurgeConfirm, session.Step)

	prompts = adminSend(t, m, operatorID, ControlConfirm)
	require.Equal(t, PromptPurgeResult, prompts[0].Kind)

	result, ok := prompts[0].Data.(PurgeResultData)
	require.True(t, ok)
	assert.Equal(t, int64(4), result.Deleted)
	assert.False(t, result.Aborted)
	assert.Equal(t, []reservations.PurgeScope{reservations.PurgeOutdated}, service.purgeRuns)

	// Сессия подтверждения закрыта
	_, found, err = sessions.Get(context.Background(), operatorID)
	require.NoError(t, err)
	assert.False(t, found)
}

// Любой ввод, кроме подтверждения, отменяет очистку
func TestAdminPurgeAbortedByAnyOtherInput(t *testing.T) {
	service := &fakeOperatorService{previewCount: 9}
	m, sessions := newTestAdmin(service)

	adminSend(t, m, operatorID, "admin:purge:cancelled")

	prompts := adminSend(t, m, operatorID, "admin:stats")
	require.Equal(t, PromptPurgeResult, prompts[0].Kind)

	result, ok := prompts[0].Data.(PurgeResultData)
	require.True(t, ok)
	assert.True(t, result.Aborted)
	assert.Equal(t, int64(0), result.Deleted)
	assert.Empty(t, service.purgeRuns)

	_, found, err := sessions.Get(context.Background(), operatorID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAdminPurgeBadScope(t *testing.T) {
	service := &fakeOperatorService{}
	m, _ := newTestAdmin(service)

	prompts := adminSend(t, m, operatorID, "admin:purge:everything")
	assert.True(t, prompts[0].Invalid)
	assert.Empty(t, service.purgeRuns)
}

func TestAdminServiceFailure(t *testing.T) {
	service := &fakeOperatorService{failWith: errors.New("storage down")}
	m, _ := newTestAdmin(service)

	prompts := adminSend(t, m, operatorID, "admin:stats")
	require.Equal(t, PromptResult, prompts[0].Kind)
	result, ok := prompts[0].Data.(ResultData)
	require.True(t, ok)
	assert.Equal(t, OutcomeFailure, result.Outcome)
}

func TestDispatcherRouting(t *testing.T) {
	venue := testVenue()
	sessions := NewMemoryStore()
	service := &fakeOperatorService{stats: &reservations.Stats{}, previewCount: 1}

	user := NewMachine(
		sessions,
		&fakeAvailability{venue: venue},
		&fakeCreator{},
		&fakeGuests{},
		&fakeLister{result: &reservations.RequesterReservations{}},
		venue,
		noopLogger{},
	)
	admin := NewAdminMachine(sessions, service, operatorOnly, noopLogger{})
	d := NewDispatcher(user, admin, operatorOnly)

	// Обычный пользователь с admin-командой уходит в пользовательскую машину
	prompts, err := d.Dispatch(context.Background(), Event{RequesterID: 555, Payload: "admin:stats"})
	require.NoError(t, err)
	assert.Equal(t, PromptIdleMenu, prompts[0].Kind)

	// Оператор с admin-командой — в операторскую
	prompts, err = d.Dispatch(context.Background(), Event{RequesterID: operatorID, Payload: "admin:stats"})
	require.NoError(t, err)
	assert.Equal(t, PromptOperatorStats, prompts[0].Kind)

	// Оператор в ожидании подтверждения очистки: обычный ввод тоже
	// уходит в операторскую машину и отменяет очистку
	_, err = d.Dispatch(context.Background(), Event{RequesterID: operatorID, Payload: "admin:purge:outdated"})
	require.NoError(t, err)

	prompts, err = d.Dispatch(context.Background(), Event{RequesterID: operatorID, Payload: "что-то еще"})
	require.NoError(t, err)
	assert.Equal(t, PromptPurgeResult, prompts[0].Kind)

	// Без admin-префикса и ожиданий оператор — обычный пользователь
	prompts, err = d.Dispatch(context.Background(), Event{RequesterID: operatorID, Payload: ControlStart})
	require.NoError(t, err)
	assert.Equal(t, PromptDateOptions, prompts[0].Kind)
}
