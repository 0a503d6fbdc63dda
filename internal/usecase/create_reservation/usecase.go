package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tablebook/reservation-service/internal/domain"
	reservationRepo "github.com/tablebook/reservation-service/internal/infra/storage/reservation"
)

// UseCase use case создания бронирования столика
type UseCase struct {
	reservationRepo ReservationRepository
	guestRepo       GuestRepository
	notifier        Notifier
	venue           domain.VenueConfig
	timeProvider    TimeProvider
	logger          Logger

	created   prometheus.Counter
	conflicts prometheus.Counter
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	guestRepo GuestRepository,
	notifier Notifier,
	venue domain.VenueConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		guestRepo:       guestRepo,
		notifier:        notifier,
		venue:           venue,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithMetrics подключает счетчики созданных броней и проигранных гонок
// Без вызова счетчики не собираются
func (uc *UseCase) WithMetrics(created, conflicts prometheus.Counter) *UseCase {
	uc.created = created
	uc.conflicts = conflicts
	return uc
}

// Execute выполняет создание бронирования.
// Проверки доступности по ходу диалога носят справочный характер;
// единственная авторитетная проверка — атомарная условная вставка
// в хранилище. Проигравший гонку получает ErrSlotTaken
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: requester=%d, zone=%s, table=%d, date=%s, time=%s, guests=%d",
		req.RequesterID, req.Zone, req.TableNumber, req.Date.Format(domain.DateFormat), req.StartTime, req.PartySize)

	// 1. Валидация формы запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Семантические проверки против правил заведения
	if err := ValidateDate(req.Date, now, uc.venue.LookAheadDays); err != nil {
		uc.logger.Warn("CreateReservation: date validation failed: %v", err)
		return nil, err
	}

	zone, ok := uc.venue.ZoneByID(req.Zone)
	if !ok {
		uc.logger.Warn("CreateReservation: unknown zone %q", req.Zone)
		return nil, ErrUnknownZone
	}

	if !domain.IsSlotOpen(uc.venue, req.Date, now, req.StartTime) {
		uc.logger.Warn("CreateReservation: time %s is not an open slot", req.StartTime)
		return nil, ErrInvalidTimeSlot
	}

	if !zone.HasTable(req.TableNumber) {
		uc.logger.Warn("CreateReservation: table %d is not in zone %q", req.TableNumber, req.Zone)
		return nil, ErrUnknownTable
	}

	if err := ValidatePartySize(req.PartySize, uc.venue.MaxPartySize); err != nil {
		uc.logger.Warn("CreateReservation: party size validation failed: %v", err)
		return nil, err
	}

	if err := ValidateName(req.FullName); err != nil {
		uc.logger.Warn("CreateReservation: name validation failed: %v", err)
		return nil, err
	}

	if _, err := NormalizePhone(req.Phone); err != nil {
		uc.logger.Warn("CreateReservation: phone validation failed: %v", err)
		return nil, err
	}

	// 3. Атомарная условная вставка — commit-протокол
	reservation := &domain.Reservation{
		RequesterID: req.RequesterID,
		FullName:    req.FullName,
		Phone:       req.Phone,
		Zone:        req.Zone,
		TableNumber: req.TableNumber,
		Date:        domain.DateOnly(req.Date),
		StartTime:   req.StartTime,
		PartySize:   req.PartySize,
		Status:      domain.StatusPending,
	}

	created, err := uc.reservationRepo.CreateIfAvailable(ctx, reservation)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrTableTaken) {
			uc.logger.Warn("CreateReservation: lost the race for zone=%s table=%d date=%s time=%s",
				req.Zone, req.TableNumber, req.Date.Format(domain.DateFormat), req.StartTime)
			if uc.conflicts != nil {
				uc.conflicts.Inc()
			}
			return nil, ErrSlotTaken
		}
		uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
		return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", created.ID)
	if uc.created != nil {
		uc.created.Inc()
	}

	// 4. Кэшируем контакт в профиле гостя (не откатывает бронь при сбое)
	if err := uc.guestRepo.Ensure(ctx, req.RequesterID, req.Username); err != nil {
		uc.logger.Warn("CreateReservation: failed to ensure guest profile: %v", err)
	} else if err := uc.guestRepo.UpdateContact(ctx, req.RequesterID, req.FullName, req.Phone); err != nil {
		uc.logger.Warn("CreateReservation: failed to update guest contact: %v", err)
	}

	// 5. Уведомляем операторов о новой заявке (best-effort)
	if err := uc.notifier.ReservationCreated(ctx, created); err != nil {
		uc.logger.Warn("CreateReservation: notification failed for reservation id=%d: %v", created.ID, err)
	}

	return &Response{
		ID:          created.ID,
		RequesterID: created.RequesterID,
		FullName:    created.FullName,
		Phone:       created.Phone,
		Zone:        created.Zone,
		TableNumber: created.TableNumber,
		Date:        created.Date,
		StartTime:   created.StartTime,
		PartySize:   created.PartySize,
		Status:      string(created.Status),
		CreatedAt:   created.CreatedAt,
	}, nil
}
