package conversation

// EventKind тип входящего события от транспорта
type EventKind string

const (
	EventText    EventKind = "text"             // свободный текст
	EventChoice  EventKind = "structured_choice" // выбор кнопки/пункта
	EventContact EventKind = "contact_share"     // переданный контакт
)

// Event входящее событие: транспорт не важен, важна форма
type Event struct {
	RequesterID int64     `json:"requester_id"`
	Kind        EventKind `json:"kind"`
	Payload     string    `json:"payload"`
	Username    *string   `json:"username,omitempty"`
}

// Управляющие значения Payload, общие для всех шагов
const (
	ControlStart      = "start"
	ControlBack       = "back"
	ControlCancel     = "cancel"
	ControlYes        = "yes"
	ControlNo         = "no"
	ControlConfirm    = "confirm"
	ControlMyBookings = "my_bookings"
)

// PromptKind тип инструкции для отрисовки коллаборатором
type PromptKind string

const (
	PromptIdleMenu            PromptKind = "show_idle_menu"
	PromptDateOptions         PromptKind = "show_date_options"
	PromptZoneOptions         PromptKind = "show_zone_options"
	PromptTimeOptions         PromptKind = "show_time_options"
	PromptTableOptions        PromptKind = "show_table_options"
	PromptPartySizeOptions    PromptKind = "show_party_size_options"
	PromptNameRequest         PromptKind = "request_name_text"
	PromptContactRequest      PromptKind = "request_contact"
	PromptConfirmationSummary PromptKind = "show_confirmation_summary"
	PromptResult              PromptKind = "show_result"
	PromptCancelled           PromptKind = "booking_cancelled"
	PromptRestart             PromptKind = "restart_required"
	PromptReservationList     PromptKind = "show_reservation_list"
	PromptOperatorStats       PromptKind = "show_operator_stats"
	PromptPurgeConfirm        PromptKind = "confirm_purge"
	PromptPurgeResult         PromptKind = "show_purge_result"
	PromptAccessDenied        PromptKind = "access_denied"
)

// Prompt исходящая инструкция для коллаборатора
// Invalid = true означает повторный запрос после невалидного ввода;
// текст повторного запроса — забота коллаборатора
type Prompt struct {
	RequesterID int64       `json:"requester_id"`
	Kind        PromptKind  `json:"kind"`
	Invalid     bool        `json:"invalid,omitempty"`
	Data        interface{} `json:"data,omitempty"`
}

// DateOptionsData данные для выбора даты
// TodayClosed = true, когда прием броней на сегодня уже закрыт
type DateOptionsData struct {
	Dates       []string `json:"dates"`
	TodayClosed bool     `json:"today_closed"`
}

// ZoneOption зона для выбора
type ZoneOption struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Tables int    `json:"tables"`
}

// ZoneOptionsData данные для выбора зоны
type ZoneOptionsData struct {
	Zones []ZoneOption `json:"zones"`
}

// SlotOption слот времени со счетчиком свободных столиков
type SlotOption struct {
	Time       string `json:"time"`
	FreeTables int    `json:"free_tables"`
}

// TimeOptionsData данные для выбора времени
type TimeOptionsData struct {
	Date  string       `json:"date"`
	Zone  string       `json:"zone"`
	Slots []SlotOption `json:"slots"`
}

// TableOptionsData данные для выбора столика
type TableOptionsData struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Zone   string `json:"zone"`
	Tables []int  `json:"tables"`
}

// PartySizeOptionsData данные для выбора количества гостей
type PartySizeOptionsData struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ContactRequestData данные для запроса контакта
// KnownPhone заполнен, если гость уже бронировал и телефон закэширован:
// коллаборатор может предложить его для повторного использования
type ContactRequestData struct {
	KnownPhone string `json:"known_phone,omitempty"`
}

// SummaryData сводка черновика перед подтверждением
type SummaryData struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Zone      string `json:"zone"`
	Table     int    `json:"table"`
	PartySize int    `json:"party_size"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
}

// Итоги попытки бронирования
const (
	OutcomeSuccess  = "success"
	OutcomeConflict = "conflict"
	OutcomeFailure  = "failure"
)

// ResultData итог подтверждения бронирования
type ResultData struct {
	Outcome       string `json:"outcome"`
	ReservationID int64  `json:"reservation_id,omitempty"`
}

// ReservationView представление брони для списков
type ReservationView struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Zone      string `json:"zone"`
	Table     int    `json:"table"`
	PartySize int    `json:"party_size"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Status    string `json:"status"`
}

// ReservationListData данные списка бронирований
type ReservationListData struct {
	Scope    string            `json:"scope,omitempty"`
	Upcoming []ReservationView `json:"upcoming,omitempty"`
	Past     []ReservationView `json:"past,omitempty"`
	Items    []ReservationView `json:"items,omitempty"`
}

// OperatorStatsData сводка для панели оператора
type OperatorStatsData struct {
	Total   int64 `json:"total"`
	Pending int64 `json:"pending"`
	Today   int64 `json:"today"`
}

// PurgeConfirmData запрос подтверждения пакетного удаления
type PurgeConfirmData struct {
	Scope string `json:"scope"`
	Count int64  `json:"count"`
}

// PurgeResultData итог пакетного удаления
// Aborted = true, когда подтверждение не получено и ничего не удалено
type PurgeResultData struct {
	Scope   string `json:"scope"`
	Deleted int64  `json:"deleted"`
	Aborted bool   `json:"aborted,omitempty"`
}
