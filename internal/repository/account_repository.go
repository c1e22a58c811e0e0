package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schoolhub/schoolbot/internal/model"
	"github.com/schoolhub/schoolbot/internal/repository/base"
)

const accountColumns = `id, username, password_hash, role, telegram_id, first_name, last_name, branch, student_class, created_at`

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func scanAccount(row pgx.Row) (*model.Account, error) {
	var acc model.Account
	err := row.Scan(
		&acc.ID,
		&acc.Username,
		&acc.PasswordHash,
		&acc.Role,
		&acc.TelegramID,
		&acc.FirstName,
		&acc.LastName,
		&acc.Branch,
		&acc.StudentClass,
		&acc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// GetByUsername получает аккаунт по логину
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`

	acc, err := scanAccount(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Аккаунт не найден
		}
		return nil, fmt.Errorf("get account by username: %w", err)
	}

	return acc, nil
}

// GetByTelegramID получает аккаунт, привязанный к чату
func (r *AccountRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE telegram_id = $1`

	acc, err := scanAccount(r.pool.QueryRow(ctx, query, telegramID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by telegram id: %w", err)
	}

	return acc, nil
}

// GetByID получает аккаунт по ID
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	acc, err := scanAccount(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by id: %w", err)
	}

	return acc, nil
}

// BindTelegramID привязывает чат к аккаунту.
// В одной транзакции снимаем привязку с любого другого аккаунта, державшего
// этот чат: telegram_id уникален, и логин всегда детерминированно
// перепривязывает текущий чат.
func (r *AccountRepository) BindTelegramID(ctx context.Context, accountID, telegramID int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE accounts SET telegram_id = NULL WHERE telegram_id = $1 AND id <> $2`,
		telegramID, accountID,
	)
	if err != nil {
		return fmt.Errorf("unbind previous account: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE accounts SET telegram_id = $1 WHERE id = $2`,
		telegramID, accountID,
	)
	if err != nil {
		return fmt.Errorf("bind telegram id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account not found")
	}

	return tx.Commit(ctx)
}

// UnbindTelegramID снимает привязку чата (logout)
func (r *AccountRepository) UnbindTelegramID(ctx context.Context, accountID int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE accounts SET telegram_id = NULL WHERE id = $1`,
		accountID,
	)
	if err != nil {
		return fmt.Errorf("unbind telegram id: %w", err)
	}
	return nil
}

// UpdateField обновляет одно редактируемое поле профиля
func (r *AccountRepository) UpdateField(ctx context.Context, accountID int64, field, value string) error {
	// Имя колонки подставляется только из белого списка
	var column string
	switch field {
	case "username":
		column = "username"
	case "first_name":
		column = "first_name"
	case "last_name":
		column = "last_name"
	default:
		return fmt.Errorf("unknown profile field: %s", field)
	}

	query := fmt.Sprintf(`UPDATE accounts SET %s = $1 WHERE id = $2`, column)
	tag, err := r.pool.Exec(ctx, query, value, accountID)
	if err != nil {
		return fmt.Errorf("update account field: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account not found")
	}

	return nil
}

// UpdatePasswordHash обновляет хэш пароля
func (r *AccountRepository) UpdatePasswordHash(ctx context.Context, accountID int64, hash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE accounts SET password_hash = $1 WHERE id = $2`,
		hash, accountID,
	)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account not found")
	}

	return nil
}

// GetBoundStudents получает студентов с привязанным чатом (для рассылки напоминаний)
func (r *AccountRepository) GetBoundStudents(ctx context.Context) ([]*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE role = 'student' AND telegram_id IS NOT NULL ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get bound students: %w", err)
	}
	defer rows.Close()

	var accounts []*model.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}

	return accounts, nil
}
