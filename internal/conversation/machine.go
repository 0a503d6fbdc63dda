package conversation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/tablebook/reservation-service/internal/domain"
	createReservationUC "github.com/tablebook/reservation-service/internal/usecase/create_reservation"
	getAvailableTablesUC "github.com/tablebook/reservation-service/internal/usecase/get_available_tables"
	"github.com/tablebook/reservation-service/pkg/types"
)

// Machine машина состояний диалога бронирования
// Один вызов HandleEvent обрабатывает одно входящее событие и
// возвращает инструкции для отрисовки. Ошибки валидации не двигают
// шаг; испорченная сессия сбрасывается в idle, наружу не поднимается
type Machine struct {
	sessions     SessionStore
	availability AvailabilityResolver
	creator      ReservationCreator
	guests       GuestRegistry
	lister       RequesterLister
	venue        domain.VenueConfig
	timeProvider TimeProvider
	logger       Logger
}

// NewMachine создает новую машину состояний диалога
func NewMachine(
	sessions SessionStore,
	availability AvailabilityResolver,
	creator ReservationCreator,
	guests GuestRegistry,
	lister RequesterLister,
	venue domain.VenueConfig,
	logger Logger,
) *Machine {
	return &Machine{
		sessions:     sessions,
		availability: availability,
		creator:      creator,
		guests:       guests,
		lister:       lister,
		venue:        venue,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// HandleEvent продвигает диалог пользователя на основе события
func (m *Machine) HandleEvent(ctx context.Context, event Event) ([]Prompt, error) {
	// Отмена принимается из любого состояния и выполняется сразу
	if event.Payload == ControlCancel {
		if err := m.sessions.Delete(ctx, event.RequesterID); err != nil {
			return nil, fmt.Errorf("%w: delete session: %v", ErrSessionStore, err)
		}
		return []Prompt{{RequesterID: event.RequesterID, Kind: PromptCancelled}}, nil
	}

	if event.Payload == ControlStart {
		return m.startBooking(ctx, event)
	}

	if event.Payload == ControlMyBookings {
		return m.listOwn(ctx, event)
	}

	session, ok, err := m.sessions.Get(ctx, event.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("%w: get session: %v", ErrSessionStore, err)
	}
	if !ok {
		return []Prompt{{RequesterID: event.RequesterID, Kind: PromptIdleMenu}}, nil
	}

	if event.Payload == ControlBack {
		return m.stepBack(ctx, session)
	}

	switch session.Step {
	case StepDate:
		return m.handleDate(ctx, session, event)
	case StepZone:
		return m.handleZone(ctx, session, event)
	case StepTime:
		return m.handleTime(ctx, session, event)
	case StepTable:
		return m.handleTable(ctx, session, event)
	case StepPartySize:
		return m.handlePartySize(ctx, session, event)
	case StepName:
		return m.handleName(ctx, session, event)
	case StepContact:
		return m.handleContact(ctx, session, event)
	case StepConfirm:
		return m.handleConfirm(ctx, session, event)
	default:
		m.logger.Warn("conversation: requester=%d in unexpected step %s", session.RequesterID, session.Step)
		return m.resetSession(ctx, session.RequesterID)
	}
}

// startBooking начинает новый диалог: регистрирует гостя и
// переводит сессию на выбор даты
func (m *Machine) startBooking(ctx context.Context, event Event) ([]Prompt, error) {
	if err := m.guests.Ensure(ctx, event.RequesterID, event.Username); err != nil {
		// Регистрация профиля не критична для бронирования
		m.logger.Warn("conversation: failed to ensure guest %d: %v", event.RequesterID, err)
	}

	session := &Session{RequesterID: event.RequesterID, Step: StepDate}
	if err := m.sessions.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: put session: %v", ErrSessionStore, err)
	}

	m.logger.Info("conversation: requester=%d started booking", event.RequesterID)
	return []Prompt{m.datePrompt(session.RequesterID, false)}, nil
}

// listOwn возвращает пользователю его бронирования
func (m *Machine) listOwn(ctx context.Context, event Event) ([]Prompt, error) {
	own, err := m.lister.ListForRequester(ctx, event.RequesterID)
	if err != nil {
		m.logger.Error("conversation: list own failed for requester=%d: %v", event.RequesterID, err)
		return []Prompt{{
			RequesterID: event.RequesterID,
			Kind:        PromptResult,
			Data:        ResultData{Outcome: OutcomeFailure},
		}}, nil
	}

	return []Prompt{{
		RequesterID: event.RequesterID,
		Kind:        PromptReservationList,
		Data: ReservationListData{
			Upcoming: toViews(own.Upcoming),
			Past:     toViews(own.Past),
		},
	}}, nil
}

// stepBack возвращает диалог на предыдущий шаг, не трогая уже
// собранные поля черновика
func (m *Machine) stepBack(ctx context.Context, session *Session) ([]Prompt, error) {
	switch session.Step {
	case StepZone:
		session.Step = StepDate
	case StepTime:
		session.Step = StepZone
	case StepTable:
		session.Step = StepTime
	case StepPartySize:
		session.Step = StepTable
	case StepName:
		session.Step = StepPartySize
	case StepContact:
		session.Step = StepName
	case StepConfirm:
		session.Step = StepContact
	default:
		// С первого шага назад некуда
	}

	if err := m.sessions.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: put session: %v", ErrSessionStore, err)
	}

	return m.promptForStep(ctx, session, false)
}

func (m *Machine) handleDate(ctx context.Context, session *Session, event Event) ([]Prompt, error) {
	now := m.timeProvider.Now()

	date, err := time.ParseInLocation(domain.DateFormat, event.Payload, now.Location())
	if err != nil {
		return []Prompt{m.datePrompt(session.RequesterID, true)}, nil
	}

	if err := createReservationUC.ValidateDate(date, now, m.venue.LookAheadDays); err != nil {
		return []Prompt{m.datePrompt(session.RequesterID, true)}, nil
	}

	session.Draft.Date = event.Payload
	session.Step = StepZone
	if err := m.sessions.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: put session: %v", ErrSessionStore, err)
	}

	return m.promptForStep(ctx, session, false)
}

func (m *Machine) handleZone(ctx context.Context, session *Session, event Event) ([]Prompt, error) {
	if session.Draft.Date == "" {
		return m.staleReset(ctx, session, "zone step without date")
	}

	if _, ok := m.venue.ZoneByID(event.Payload); !ok {
		return m.zonePrompts(session.RequesterID, true), nil
	}

	session.Draft.Zone = event.Payload
	session.Step = StepTime
	if err := m.sessions.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: put session: %v", ErrSessionStore, err)
	}

	return m.promptForStep(ctx, session, false)
}

func (m *Machine) handleTime(ctx context.Context, session *Session, event Event) ([]Prompt, error) {
	if session.Draft.Date == "" || session.Draft.Zone == "" {
		return m.staleReset(ctx, session, "time step without date or zone")
	}

	now := m.timeProvider.Now()
	date, err := m.draftDate(session)
	if err != nil {
		return m.staleReset(ctx, session, "time step with unparsable date")
	}

	slot, err := types.NewTimeStringFromString(event.Payload)
	if err != nil || !domain.IsSlotOpen(m.venue, date, now, slot) {
		return m.timePrompts(ctx, session, true)
	}

	// Справочная проверка: есть ли на это время хоть один столик
	free, err := m.freeTables(ctx, date, slot, session.Draft.Zone)
	if err != nil {
		return m.failure(session.RequesterID), nil
	}
	if len(free) == 0 {
		return m.timePrompts(ctx, session, true)
	}

	session.Draft.Time = slot
	session.Step = StepTable
	if err := m.sessions.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: put session: %v", ErrSessionStore, err)
	}

	return m.promptForStep(ctx, session, false)
}

func (m *Machine) handleTable(ctx context.Context, session *Session, event Event) ([]Prompt, error) {
	if session.Draft.Date == "" || session.Draft.Zone == "" || session.Draft.Time.IsZero() {
		return m.staleReset(ctx, session, "table step without date, zone or time")
	}

	table, err := strconv.Atoi(event.Payload)
	if err != nil {
		return m.tablePrompts(ctx, session, true)
	}

	date, err := m.draftDate(session)
	if err != nil {
		return m.staleReset(ctx, session, "table step with unparsable date")
	}

	// Повторная справочная проверка прямо перед выбором: столик мог
	// уйти, пока пользователь думал
	free, err := m.freeTables(ctx, date, session.Draft.Time, session.Draft.Zone)
	if err != nil {
		return m.failure(session.RequesterID), nil
	}
	if !containsTable(free, table) {
		return m.tablePrompts(ctx, session, true)
	}

	session.Draft.Table = table
	session.Step = StepPartySize
	if err := m.sessions.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: put session: %v", ErrSessionStore, err)
	}

	return m.promptForStep(ctx, session, false)
}

func (m *Machine) handlePartySize(ctx context.Context, session *Session, event Event) ([]Prompt, error) {
	if session.Draft.Table == 0 {
		return m.staleReset(ctx, session, "party size step without table")
	}

	size, err := strconv.Atoi(event.Payload)
	if err != nil || createReservationUC.ValidatePartySize(size, m.venue.MaxPartySize) != nil {
		return []Prompt{m.partySizePrompt(session.RequesterID, true)}, nil
	}

	session.Draft.PartySize = size
	session.Step = StepName
	if err := m.sessions.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: put session: %v", ErrSessionStore, err)
	}

	return m.promptForStep(ctx, session, false)
}

func (m *Machine) handleName(ctx context.Context, session *Session, event Event) ([]Prompt, error) {
	if session.Draft.PartySize == 0 {
		return m.staleReset(ctx, session, "name step without party size")
	}

	if err := createReservationUC.ValidateName(event.Payload); err != nil {
		return []Prompt{{RequesterID: session.RequesterID, Kind: PromptNameRequest, Invalid: true}}, nil
	}

	session.Draft.Name = event.Payload
	session.Step = StepContact
	if err := m.sessions.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: put session: %v", ErrSessionStore, err)
	}

	return m.promptForStep(ctx, session, false)
}

func (m *Machine) handleContact(ctx context.Context, session *Session, event Event) ([]Prompt, error) {
	if session.Draft.Name == "" {
		return m.staleReset(ctx, session, "contact step without name")
	}

	// Переданный контакт и ручной ввод проходят одну и ту же проверку
	if _, err := createReservationUC.NormalizePhone(event.Payload); err != nil {
		return []Prompt{m.contactPrompt(ctx, session.RequesterID, true)}, nil
	}

	session.Draft.Phone = event.Payload
	session.Step = StepConfirm
	if err := m.sessions.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: put session: %v", ErrSessionStore, err)
	}

	return m.promptForStep(ctx, session, false)
}

func (m *Machine) handleConfirm(ctx context.Context, session *Session, event Event) ([]Prompt, error) {
	draft := session.Draft
	if draft.Date == "" || draft.Zone == "" || draft.Time.IsZero() ||
		draft.Table == 0 || draft.PartySize == 0 || draft.Name == "" || draft.Phone == "" {
		return m.staleReset(ctx, session, "confirmation step with incomplete draft")
	}

	switch event.Payload {
	case ControlYes, ControlConfirm:
	case ControlNo:
		if err := m.sessions.Delete(ctx, session.RequesterID); err != nil {
			return nil, fmt.Errorf("%w: delete session: %v", ErrSessionStore, err)
		}
		return []Prompt{{RequesterID: session.RequesterID, Kind: PromptCancelled}}, nil
	default:
		prompts, err := m.promptForStep(ctx, session, true)
		return prompts, err
	}

	date, err := m.draftDate(session)
	if err != nil {
		return m.staleReset(ctx, session, "confirmation step with unparsable date")
	}

	created, err := m.creator.Execute(ctx, &createReservationUC.Request{
		RequesterID: session.RequesterID,
		FullName:    draft.Name,
		Phone:       draft.Phone,
		Zone:        draft.Zone,
		TableNumber: draft.Table,
		Date:        date,
		StartTime:   draft.Time,
		PartySize:   draft.PartySize,
	})

	if err != nil {
		if errors.Is(err, createReservationUC.ErrSlotTaken) {
			// Проигрыш гонки: возвращаемся к выбору столика со
			// свежей доступностью
			session.Step = StepTable
			if putErr := m.sessions.Put(ctx, session); putErr != nil {
				return nil, fmt.Errorf("%w: put session: %v", ErrSessionStore, putErr)
			}

			prompts := []Prompt{{
				RequesterID: session.RequesterID,
				Kind:        PromptResult,
				Data:        ResultData{Outcome: OutcomeConflict},
			}}
			tableOptions, tErr := m.tablePrompts(ctx, session, false)
			if tErr == nil {
				prompts = append(prompts, tableOptions...)
			}
			return prompts, nil
		}

		m.logger.Error("conversation: create failed for requester=%d: %v", session.RequesterID, err)
		// Сессия остается на подтверждении: пользователь может повторить
		return m.failure(session.RequesterID), nil
	}

	if err := m.sessions.Delete(ctx, session.RequesterID); err != nil {
		return nil, fmt.Errorf("%w: delete session: %v", ErrSessionStore, err)
	}

	return []Prompt{{
		RequesterID: session.RequesterID,
		Kind:        PromptResult,
		Data:        ResultData{Outcome: OutcomeSuccess, ReservationID: created.ID},
	}}, nil
}

// promptForStep строит инструкцию отрисовки для текущего шага сессии
func (m *Machine) promptForStep(ctx context.Context, session *Session, invalid bool) ([]Prompt, error) {
	switch session.Step {
	case StepDate:
		return []Prompt{m.datePrompt(session.RequesterID, invalid)}, nil
	case StepZone:
		return m.zonePrompts(session.RequesterID, invalid), nil
	case StepTime:
		return m.timePrompts(ctx, session, invalid)
	case StepTable:
		return m.tablePrompts(ctx, session, invalid)
	case StepPartySize:
		return []Prompt{m.partySizePrompt(session.RequesterID, invalid)}, nil
	case StepName:
		return []Prompt{{RequesterID: session.RequesterID, Kind: PromptNameRequest, Invalid: invalid}}, nil
	case StepContact:
		return []Prompt{m.contactPrompt(ctx, session.RequesterID, invalid)}, nil
	case StepConfirm:
		return []Prompt{{
			RequesterID: session.RequesterID,
			Kind:        PromptConfirmationSummary,
			Invalid:     invalid,
			Data: SummaryData{
				Date:      session.Draft.Date,
				Time:      session.Draft.Time.String(),
				Zone:      session.Draft.Zone,
				Table:     session.Draft.Table,
				PartySize: session.Draft.PartySize,
				Name:      session.Draft.Name,
				Phone:     session.Draft.Phone,
			},
		}}, nil
	default:
		return []Prompt{{RequesterID: session.RequesterID, Kind: PromptIdleMenu}}, nil
	}
}

func (m *Machine) datePrompt(requesterID int64, invalid bool) Prompt {
	now := m.timeProvider.Now()

	dates := make([]string, 0, m.venue.LookAheadDays+1)
	for i := 0; i <= m.venue.LookAheadDays; i++ {
		dates = append(dates, domain.DateOnly(now).AddDate(0, 0, i).Format(domain.DateFormat))
	}

	// Если время последней брони на сегодня уже прошло, коллаборатор
	// предложит начинать с завтрашнего дня
	todayClosed := types.NewTimeString(now).IsAfter(m.venue.LastBookingTime)

	return Prompt{
		RequesterID: requesterID,
		Kind:        PromptDateOptions,
		Invalid:     invalid,
		Data:        DateOptionsData{Dates: dates, TodayClosed: todayClosed},
	}
}

func (m *Machine) zonePrompts(requesterID int64, invalid bool) []Prompt {
	zones := make([]ZoneOption, 0, len(m.venue.Zones))
	for _, z := range m.venue.Zones {
		zones = append(zones, ZoneOption{ID: z.ID, Name: z.Name, Tables: len(z.Tables)})
	}

	return []Prompt{{
		RequesterID: requesterID,
		Kind:        PromptZoneOptions,
		Invalid:     invalid,
		Data:        ZoneOptionsData{Zones: zones},
	}}
}

func (m *Machine) timePrompts(ctx context.Context, session *Session, invalid bool) ([]Prompt, error) {
	date, err := m.draftDate(session)
	if err != nil {
		return m.staleReset(ctx, session, "time prompt with unparsable date")
	}

	now := m.timeProvider.Now()
	slots := domain.SlotsForDay(m.venue, date, now)

	options := make([]SlotOption, 0, len(slots))
	for _, slot := range slots {
		free, err := m.freeTables(ctx, date, slot, session.Draft.Zone)
		if err != nil {
			return m.failure(session.RequesterID), nil
		}
		options = append(options, SlotOption{Time: slot.String(), FreeTables: len(free)})
	}

	return []Prompt{{
		RequesterID: session.RequesterID,
		Kind:        PromptTimeOptions,
		Invalid:     invalid,
		Data: TimeOptionsData{
			Date:  session.Draft.Date,
			Zone:  session.Draft.Zone,
			Slots: options,
		},
	}}, nil
}

func (m *Machine) tablePrompts(ctx context.Context, session *Session, invalid bool) ([]Prompt, error) {
	date, err := m.draftDate(session)
	if err != nil {
		return m.staleReset(ctx, session, "table prompt with unparsable date")
	}

	free, err := m.freeTables(ctx, date, session.Draft.Time, session.Draft.Zone)
	if err != nil {
		return m.failure(session.RequesterID), nil
	}

	return []Prompt{{
		RequesterID: session.RequesterID,
		Kind:        PromptTableOptions,
		Invalid:     invalid,
		Data: TableOptionsData{
			Date:   session.Draft.Date,
			Time:   session.Draft.Time.String(),
			Zone:   session.Draft.Zone,
			Tables: free,
		},
	}}, nil
}

func (m *Machine) partySizePrompt(requesterID int64, invalid bool) Prompt {
	return Prompt{
		RequesterID: requesterID,
		Kind:        PromptPartySizeOptions,
		Invalid:     invalid,
		Data:        PartySizeOptionsData{Min: domain.MinPartySize, Max: m.venue.MaxPartySize},
	}
}

// contactPrompt запрашивает телефон; закэшированный контакт
// предлагается для повторного использования. Сбой чтения профиля не
// мешает шагу, просто нечего предложить
func (m *Machine) contactPrompt(ctx context.Context, requesterID int64, invalid bool) Prompt {
	prompt := Prompt{RequesterID: requesterID, Kind: PromptContactRequest, Invalid: invalid}

	profile, err := m.guests.GetByRequesterID(ctx, requesterID)
	if err != nil || profile == nil || profile.Phone == nil || *profile.Phone == "" {
		return prompt
	}

	prompt.Data = ContactRequestData{KnownPhone: *profile.Phone}
	return prompt
}

// staleReset сбрасывает испорченную сессию в idle и просит начать заново
func (m *Machine) staleReset(ctx context.Context, session *Session, reason string) ([]Prompt, error) {
	m.logger.Warn("conversation: %v: requester=%d, step=%s: %s",
		ErrStaleSession, session.RequesterID, session.Step, reason)
	return m.resetSession(ctx, session.RequesterID)
}

func (m *Machine) resetSession(ctx context.Context, requesterID int64) ([]Prompt, error) {
	if err := m.sessions.Delete(ctx, requesterID); err != nil {
		return nil, fmt.Errorf("%w: delete session: %v", ErrSessionStore, err)
	}
	return []Prompt{{RequesterID: requesterID, Kind: PromptRestart}}, nil
}

func (m *Machine) failure(requesterID int64) []Prompt {
	return []Prompt{{
		RequesterID: requesterID,
		Kind:        PromptResult,
		Data:        ResultData{Outcome: OutcomeFailure},
	}}
}

func (m *Machine) freeTables(ctx context.Context, date time.Time, slot types.TimeString, zone string) ([]int, error) {
	resp, err := m.availability.Execute(ctx, &getAvailableTablesUC.Request{
		Date:      date,
		StartTime: slot,
		Zone:      zone,
	})
	if err != nil {
		m.logger.Error("conversation: availability failed for zone=%s date=%s time=%s: %v",
			zone, date.Format(domain.DateFormat), slot, err)
		return nil, err
	}
	return resp.Tables, nil
}

func (m *Machine) draftDate(session *Session) (time.Time, error) {
	return time.ParseInLocation(domain.DateFormat, session.Draft.Date, m.timeProvider.Now().Location())
}

func containsTable(tables []int, table int) bool {
	for _, t := range tables {
		if t == table {
			return true
		}
	}
	return false
}

func toViews(list []*domain.Reservation) []ReservationView {
	views := make([]ReservationView, 0, len(list))
	for _, res := range list {
		views = append(views, ReservationView{
			ID:        res.ID,
			Date:      res.Date.Format(domain.DateFormat),
			Time:      res.StartTime.String(),
			Zone:      res.Zone,
			Table:     res.TableNumber,
			PartySize: res.PartySize,
			Name:      res.FullName,
			Phone:     res.Phone,
			Status:    string(res.Status),
		})
	}
	return views
}
