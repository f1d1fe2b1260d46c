package ports

import (
	"context"

	"github.com/cityreporter/city-reporter-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Email uniqueness is enforced at this boundary: Create returns
// domain.ErrEmailTaken when the email is already registered (the store
// additionally carries a unique index as defense in depth).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Save upserts profile/role/active/points mutations.
	Save(ctx context.Context, user *domain.User) error
	// List returns a zero-indexed page of users ordered by creation time
	// descending, plus the total count.
	List(ctx context.Context, page, size int) ([]*domain.User, int64, error)
	Count(ctx context.Context) (int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
