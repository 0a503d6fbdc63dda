package create_reservation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tablebook/reservation-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}
	if req.Zone == "" {
		return fmt.Errorf("%w: zone is required", ErrInvalidInput)
	}
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

// ValidateDate проверяет, что дата не в прошлом и не дальше горизонта
// бронирования. Дата ровно на горизонте допустима
func ValidateDate(date time.Time, now time.Time, lookAheadDays int) error {
	if domain.IsDateInPast(date, now) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidDate)
	}

	maxDate := domain.DateOnly(now).AddDate(0, 0, lookAheadDays)
	if domain.DateOnly(date).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrInvalidDate, lookAheadDays)
	}

	return nil
}

// ValidateName проверяет длину имени в рунах
func ValidateName(name string) error {
	length := utf8.RuneCountInString(strings.TrimSpace(name))
	if length < domain.MinNameLength || length > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be %d to %d characters",
			ErrInvalidName, domain.MinNameLength, domain.MaxNameLength)
	}
	return nil
}

// NormalizePhone приводит контакт к строке цифр
// Возвращает ошибку, если после очистки остались нецифровые символы
// или цифр меньше минимума
func NormalizePhone(phone string) (string, error) {
	cleaned := strings.NewReplacer("+", "", " ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))

	if cleaned == "" {
		return "", fmt.Errorf("%w: phone is required", ErrInvalidPhone)
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: phone must contain digits only", ErrInvalidPhone)
		}
	}
	if len(cleaned) < domain.MinPhoneDigits {
		return "", fmt.Errorf("%w: phone must have at least %d digits", ErrInvalidPhone, domain.MinPhoneDigits)
	}

	return cleaned, nil
}

// ValidatePartySize проверяет количество гостей против лимита заведения
func ValidatePartySize(size, max int) error {
	if size < domain.MinPartySize || size > max {
		return fmt.Errorf("%w: party size must be %d to %d", ErrInvalidPartySize, domain.MinPartySize, max)
	}
	return nil
}
