package postgresql

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userSelect = `
	SELECT u.id, u.username, u.email, u.password_hash, u.role, u.employee_id,
		   u.is_active, u.google_id, u.created_at, u.updated_at, e.full_name
	FROM users u
	LEFT JOIN employees e ON u.employee_id = e.id
`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.EmployeeID,
		&u.IsActive, &u.GoogleID, &u.CreatedAt, &u.UpdatedAt, &u.EmployeeName,
	)
	return u, err
}

func (r *userRepositoryImpl) getOne(ctx context.Context, where string, args ...any) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, userSelect+` WHERE `+where, args...))
	if err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getOne(ctx, "u.id = $1", id)
}

func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, "LOWER(u.email) = LOWER($1)", strings.TrimSpace(email))
}

// GetByUsernameOrEmail resolves a login identifier. Usernames and emails are
// compared case-insensitively.
func (r *userRepositoryImpl) GetByUsernameOrEmail(ctx context.Context, login string) (user.User, error) {
	login = strings.TrimSpace(login)
	return r.getOne(ctx, "(LOWER(u.username) = LOWER($1) OR LOWER(u.email) = LOWER($1))", login)
}

func (r *userRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (user.User, error) {
	return r.getOne(ctx, "u.employee_id = $1", employeeID)
}

func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (username, email, password_hash, role, employee_id, is_active, google_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		newUser.Username, newUser.Email, newUser.PasswordHash, newUser.Role,
		newUser.EmployeeID, newUser.IsActive, newUser.GoogleID,
	).Scan(&newUser.ID, &newUser.CreatedAt, &newUser.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, err
	}
	return newUser, nil
}

func (r *userRepositoryImpl) ExistsByUsernameOrEmail(ctx context.Context, username, email string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE (LOWER(username) = LOWER($1) OR LOWER(email) = LOWER($2))
			  AND ($3::uuid IS NULL OR id <> $3::uuid)
		)
	`
	var exists bool
	err := q.QueryRow(ctx, query, username, email, excludeID).Scan(&exists)
	return exists, err
}

func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET email = $2, password_hash = $3, role = $4, employee_id = $5, is_active = $6, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, u.ID, u.Email, u.PasswordHash, u.Role, u.EmployeeID, u.IsActive)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrUserEmailExists
		}
		return err
	}
	if tag.RowsAffected() != 1 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepositoryImpl) LinkGoogleAccount(ctx context.Context, id, googleID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE users SET google_id = $2, updated_at = NOW() WHERE id = $1`, id, googleID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepositoryImpl) List(ctx context.Context, filter user.UserFilter) ([]user.User, int64, error) {
	q := GetQuerier(ctx, r.db)

	var w whereBuilder
	if filter.Search != nil && *filter.Search != "" {
		w.add("(u.username ILIKE $%[1]d OR u.email ILIKE $%[1]d OR e.full_name ILIKE $%[1]d)", "%"+*filter.Search+"%")
	}
	if filter.Role != nil && *filter.Role != "" {
		w.add("u.role = $%d", *filter.Role)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM users u LEFT JOIN employees e ON u.employee_id = e.id ` + w.where()
	if err := q.QueryRow(ctx, countQuery, w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := userSelect + w.where() + ` ORDER BY u.username ` + w.page(filter.Limit, filter.Offset())
	rows, err := q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}
