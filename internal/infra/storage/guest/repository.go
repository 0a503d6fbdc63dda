package guest

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/tablebook/reservation-service/internal/domain"
	"github.com/tablebook/reservation-service/pkg/psqlbuilder"
)

// DBExecutor минимальный интерфейс для выполнения запросов
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Repository репозиторий профилей гостей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория гостей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Ensure регистрирует гостя при первом обращении
// Повторный вызов для известного гостя — no-op
func (r *Repository) Ensure(ctx context.Context, requesterID int64, username *string) error {
	query, args, err := psqlbuilder.Insert("guests").
		Columns("requester_id", "username").
		Values(requesterID, username).
		Suffix("ON CONFLICT (requester_id) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Ensure - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Ensure - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByRequesterID получает профиль гостя по идентификатору пользователя
func (r *Repository) GetByRequesterID(ctx context.Context, requesterID int64) (*domain.GuestProfile, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"requester_id",
		"username",
		"full_name",
		"phone",
		"created_at",
	).
		From("guests").
		Where(squirrel.Eq{"requester_id": requesterID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByRequesterID - build select query: %v", ErrBuildQuery, err)
	}

	var profile domain.GuestProfile
	var createdAt sql.NullTime

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&profile.ID,
		&profile.RequesterID,
		&profile.Username,
		&profile.FullName,
		&profile.Phone,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrGuestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRequesterID - scan guest: %v", ErrScanRow, err)
	}

	profile.CreatedAt = createdAt.Time

	return &profile, nil
}

// UpdateContact кэширует последние использованные имя и телефон гостя
func (r *Repository) UpdateContact(ctx context.Context, requesterID int64, fullName, phone string) error {
	query, args, err := psqlbuilder.Update("guests").
		Set("full_name", fullName).
		Set("phone", phone).
		Where(squirrel.Eq{"requester_id": requesterID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateContact - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateContact - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateContact - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrGuestNotFound
	}

	return nil
}
