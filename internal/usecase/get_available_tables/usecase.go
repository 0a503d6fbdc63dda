package get_available_tables

import (
	"context"
	"fmt"
	"sort"

	"github.com/tablebook/reservation-service/internal/domain"
)

// UseCase use case вычисления свободных столиков на слот
type UseCase struct {
	reservationRepo ReservationRepository
	venue           domain.VenueConfig
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	venue domain.VenueConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		venue:           venue,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute возвращает свободные столики для (дата, время, зона):
// все столики зоны минус столики, занятые активными бронированиями.
//
// Неизвестная зона или время позже последней брони дают пустой список
// без ошибки — вызывающий трактует пустоту как "нечего предложить".
// Результат носит справочный характер: финальное слово за атомарной
// вставкой в хранилище
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableTables: validation failed: %v", err)
		return nil, err
	}

	zone, ok := uc.venue.ZoneByID(req.Zone)
	if !ok {
		uc.logger.Warn("GetAvailableTables: unknown zone %q", req.Zone)
		return &Response{Tables: []int{}}, nil
	}

	if req.StartTime.IsAfter(uc.venue.LastBookingTime) {
		return &Response{Tables: []int{}}, nil
	}

	filter := domain.ReservationFilter{
		Zone:       &req.Zone,
		StartDate:  &req.Date,
		EndDate:    &req.Date,
		StartTime:  &req.StartTime,
		ActiveOnly: true,
	}

	reservations, err := uc.reservationRepo.ListWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableTables: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	taken := make(map[int]struct{}, len(reservations))
	for _, res := range reservations {
		taken[res.TableNumber] = struct{}{}
	}

	free := make([]int, 0, len(zone.Tables))
	for _, table := range zone.Tables {
		if _, busy := taken[table]; !busy {
			free = append(free, table)
		}
	}
	sort.Ints(free)

	return &Response{Tables: free}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	return nil
}
