package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/tablebook/reservation-service/internal/domain"
	reservationRepo "github.com/tablebook/reservation-service/internal/infra/storage/reservation"
	"github.com/tablebook/reservation-service/pkg/ptr"
)

// ListScope область выборки бронирований для оператора
type ListScope string

const (
	ScopeAll       ListScope = "all"
	ScopePending   ListScope = "pending"
	ScopeConfirmed ListScope = "confirmed"
	ScopeToday     ListScope = "today"
	ScopeTomorrow  ListScope = "tomorrow"
)

// PurgeScope область пакетного удаления
type PurgeScope string

const (
	PurgeOutdated  PurgeScope = "outdated"
	PurgeCancelled PurgeScope = "cancelled"
)

// ParsePurgeScope конвертирует строку в PurgeScope
func ParsePurgeScope(s string) (PurgeScope, bool) {
	switch PurgeScope(s) {
	case PurgeOutdated, PurgeCancelled:
		return PurgeScope(s), true
	default:
		return "", false
	}
}

// Stats сводка для панели оператора
type Stats struct {
	Total   int64
	Pending int64
	Today   int64
}

// RequesterReservations бронирования пользователя: будущие и прошлые
type RequesterReservations struct {
	Upcoming []*domain.Reservation
	Past     []*domain.Reservation
}

// pastReservationsShown сколько прошлых бронирований показывать пользователю
const pastReservationsShown = 5

// Service сервис жизненного цикла бронирований
type Service struct {
	reservationRepo ReservationRepository
	notifier        Notifier
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		notifier:        notifier,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Confirm переводит бронирование pending -> confirmed (действие оператора)
// Повторное подтверждение уже подтвержденной брони — no-op
func (s *Service) Confirm(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.transition(ctx, id, domain.StatusConfirmed)
}

// Cancel переводит бронирование pending/confirmed -> cancelled (действие оператора)
// Повторная отмена уже отмененной брони — no-op
func (s *Service) Cancel(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.transition(ctx, id, domain.StatusCancelled)
}

func (s *Service) transition(ctx context.Context, id int64, target domain.ReservationStatus) (*domain.Reservation, error) {
	s.logger.Info("Transition: reservation id=%d -> %s", id, target)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Transition: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Transition: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
	}

	// Установка уже выставленного статуса — no-op, не ошибка
	if res.Status == target {
		s.logger.Info("Transition: reservation id=%d already %s", id, target)
		return res, nil
	}

	allowed := false
	switch target {
	case domain.StatusConfirmed:
		allowed = res.CanBeConfirmed()
	case domain.StatusCancelled:
		allowed = res.CanBeCancelled()
	}

	if !allowed {
		s.logger.Warn("Transition: id=%d %s -> %s is not allowed", id, res.Status, target)
		return nil, ErrInvalidTransition
	}

	if err := s.reservationRepo.SetStatus(ctx, id, target); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Transition: failed to set status for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: transition - set status: %v", ErrInternal, err)
	}

	res.Status = target

	// Уведомление best-effort: сбой доставки не откатывает переход
	if err := s.notifier.StatusChanged(ctx, res); err != nil {
		s.logger.Warn("Transition: notification failed for id=%d: %v", id, err)
	}

	s.logger.Info("Transition: reservation id=%d is now %s", id, target)
	return res, nil
}

// List возвращает бронирования по области выборки оператора
func (s *Service) List(ctx context.Context, scope ListScope) ([]*domain.Reservation, error) {
	now := s.timeProvider.Now()

	var filter domain.ReservationFilter

	switch scope {
	case ScopeAll, "":
	case ScopePending:
		filter.Status = ptr.Ptr(domain.StatusPending)
	case ScopeConfirmed:
		filter.Status = ptr.Ptr(domain.StatusConfirmed)
	case ScopeToday:
		today := domain.DateOnly(now)
		filter.StartDate = &today
		filter.EndDate = &today
		filter.ActiveOnly = true
	case ScopeTomorrow:
		tomorrow := domain.DateOnly(now).AddDate(0, 0, 1)
		filter.StartDate = &tomorrow
		filter.EndDate = &tomorrow
		filter.ActiveOnly = true
	default:
		return nil, fmt.Errorf("%w: unknown list scope %q", ErrInvalidInput, scope)
	}

	list, err := s.reservationRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for scope=%s: %v", scope, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return list, nil
}

// ListForRequester возвращает активные бронирования пользователя,
// разделенные на будущие и прошлые. Прошлых показывается не больше
// pastReservationsShown, сначала самые свежие
func (s *Service) ListForRequester(ctx context.Context, requesterID int64) (*RequesterReservations, error) {
	now := s.timeProvider.Now()

	list, err := s.reservationRepo.ListWithFilter(ctx, domain.ReservationFilter{
		RequesterID: &requesterID,
		ActiveOnly:  true,
	})
	if err != nil {
		s.logger.Error("ListForRequester: repository error for requester=%d: %v", requesterID, err)
		return nil, fmt.Errorf("%w: ListForRequester - repository error: %v", ErrInternal, err)
	}

	result := &RequesterReservations{
		Upcoming: make([]*domain.Reservation, 0),
		Past:     make([]*domain.Reservation, 0),
	}

	for _, res := range list {
		if res.IsPast(now) {
			result.Past = append(result.Past, res)
		} else {
			result.Upcoming = append(result.Upcoming, res)
		}
	}

	// Хранилище отдает по возрастанию даты; прошлые показываем с конца
	if len(result.Past) > 0 {
		reversed := make([]*domain.Reservation, 0, len(result.Past))
		for i := len(result.Past) - 1; i >= 0; i-- {
			reversed = append(reversed, result.Past[i])
		}
		if len(reversed) > pastReservationsShown {
			reversed = reversed[:pastReservationsShown]
		}
		result.Past = reversed
	}

	return result, nil
}

// Stats возвращает сводку для панели оператора
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	now := s.timeProvider.Now()
	today := domain.DateOnly(now)

	total, err := s.reservationRepo.CountWithFilter(ctx, domain.ReservationFilter{})
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - count total: %v", ErrInternal, err)
	}

	pending, err := s.reservationRepo.CountByStatus(ctx, domain.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - count pending: %v", ErrInternal, err)
	}

	todayCount, err := s.reservationRepo.CountWithFilter(ctx, domain.ReservationFilter{
		StartDate: &today,
		EndDate:   &today,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - count today: %v", ErrInternal, err)
	}

	return &Stats{Total: total, Pending: pending, Today: todayCount}, nil
}

// PurgePreview возвращает число бронирований, попадающих под очистку.
// Вызывается перед Purge: оператор сначала видит количество и только
// после явного подтверждения выполняет удаление
func (s *Service) PurgePreview(ctx context.Context, scope PurgeScope) (int64, error) {
	switch scope {
	case PurgeOutdated:
		count, err := s.reservationRepo.CountExpired(ctx, s.timeProvider.Now())
		if err != nil {
			s.logger.Error("PurgePreview: count expired failed: %v", err)
			return 0, fmt.Errorf("%w: PurgePreview - count expired: %v", ErrInternal, err)
		}
		return count, nil
	case PurgeCancelled:
		count, err := s.reservationRepo.CountByStatus(ctx, domain.StatusCancelled)
		if err != nil {
			s.logger.Error("PurgePreview: count cancelled failed: %v", err)
			return 0, fmt.Errorf("%w: PurgePreview - count cancelled: %v", ErrInternal, err)
		}
		return count, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidScope, scope)
	}
}

// Purge выполняет пакетное удаление по области
func (s *Service) Purge(ctx context.Context, scope PurgeScope) (int64, error) {
	switch scope {
	case PurgeOutdated:
		deleted, err := s.reservationRepo.DeleteExpired(ctx, s.timeProvider.Now())
		if err != nil {
			s.logger.Error("Purge: delete expired failed: %v", err)
			return 0, fmt.Errorf("%w: Purge - delete expired: %v", ErrInternal, err)
		}
		s.logger.Info("Purge: deleted %d outdated reservations", deleted)
		return deleted, nil
	case PurgeCancelled:
		deleted, err := s.reservationRepo.DeleteByStatus(ctx, domain.StatusCancelled)
		if err != nil {
			s.logger.Error("Purge: delete cancelled failed: %v", err)
			return 0, fmt.Errorf("%w: Purge - delete cancelled: %v", ErrInternal, err)
		}
		s.logger.Info("Purge: deleted %d cancelled reservations", deleted)
		return deleted, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidScope, scope)
	}
}
