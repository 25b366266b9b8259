package registereduser

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ClinicBot/internal/domain"
	"github.com/m04kA/SMC-ClinicBot/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBot/pkg/psqlbuilder"
)

const (
	tableName = "registered_users"

	birthDateLayout = "2006-01-02"

	uniqueViolation = "23505"
)

var columns = []string{
	"id",
	"platform_user_id",
	"pcode",
	"lastname",
	"firstname",
	"midname",
	"bdate",
	"cllogin",
	"clpassword",
	"created_at",
	"updated_at",
}

// Repository хранилище пользователей, прошедших регистрацию или вход в МИС
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет пользователя, заполняя ID и временные метки
func (r *Repository) Create(ctx context.Context, user *domain.RegisteredUser) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	bdate, err := parseBirthDate(user.BirthDate)
	if err != nil {
		return fmt.Errorf("%w: Create - parse bdate: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"platform_user_id",
			"pcode",
			"lastname",
			"firstname",
			"midname",
			"bdate",
			"cllogin",
			"clpassword",
		).
		Values(
			user.PlatformUserID,
			user.PCode,
			user.LastName,
			user.FirstName,
			user.MiddleName,
			bdate,
			user.ClinicLogin,
			user.ClinicPassword,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&user.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrUserAlreadyExists
		}
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	user.CreatedAt = createdAt.Time
	user.UpdatedAt = updatedAt.Time
	return nil
}

// GetByPlatformID ищет пользователя по ID в мессенджере
func (r *Repository) GetByPlatformID(ctx context.Context, platformUserID int64) (*domain.RegisteredUser, error) {
	return r.getOne(ctx, "GetByPlatformID", squirrel.Eq{"platform_user_id": platformUserID})
}

// GetByCredentials ищет пользователя по логину и паролю МИС
func (r *Repository) GetByCredentials(ctx context.Context, login, password string) (*domain.RegisteredUser, error) {
	return r.getOne(ctx, "GetByCredentials", squirrel.And{
		squirrel.Eq{"cllogin": login},
		squirrel.Eq{"clpassword": password},
	})
}

func (r *Repository) getOne(ctx context.Context, method string, where squirrel.Sqlizer) (*domain.RegisteredUser, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	var (
		user                 domain.RegisteredUser
		bdate                sql.NullTime
		createdAt, updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.PlatformUserID,
		&user.PCode,
		&user.LastName,
		&user.FirstName,
		&user.MiddleName,
		&bdate,
		&user.ClinicLogin,
		&user.ClinicPassword,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %v", ErrScanRow, method, err)
	}

	if bdate.Valid {
		user.BirthDate = bdate.Time.Format(birthDateLayout)
	}
	user.CreatedAt = createdAt.Time
	user.UpdatedAt = updatedAt.Time

	return &user, nil
}

// UpdateCredentials меняет логин и пароль МИС у пользователя
func (r *Repository) UpdateCredentials(ctx context.Context, platformUserID int64, creds domain.Credentials) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("cllogin", creds.Login).
		Set("clpassword", creds.Password).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"platform_user_id": platformUserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateCredentials - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateCredentials - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(res, "UpdateCredentials")
}

// DeleteByPlatformID удаляет пользователя
func (r *Repository) DeleteByPlatformID(ctx context.Context, platformUserID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"platform_user_id": platformUserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByPlatformID - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByPlatformID - execute delete: %v", ErrExecQuery, err)
	}

	return checkAffected(res, "DeleteByPlatformID")
}

func checkAffected(res sql.Result, method string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, method, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func parseBirthDate(s string) (interface{}, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(birthDateLayout, s)
	if err != nil {
		return nil, err
	}
	return t, nil
}
