package user

import (
	"context"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByUsernameOrEmail(ctx context.Context, login string) (User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string, excludeID *string) (bool, error)
	Update(ctx context.Context, u User) error
	LinkGoogleAccount(ctx context.Context, id, googleID string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter UserFilter) ([]User, int64, error)
}
