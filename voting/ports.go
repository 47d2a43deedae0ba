package voting

//go:generate mockgen -source=ports.go -destination=../mocks/mock_voting.go -package=mocks

import (
	"context"
	"io"

	"lunch-voting-api/models"
)

// Identity is the authenticated principal as seen by the token layer.
type Identity struct {
	UserID   string
	Username string
}

// Repository is the persistence the service depends on. Days are
// YYYY-MM-DD keys produced by models.DayOf.
type Repository interface {
	RestaurantExists(ctx context.Context, id uint) (bool, error)
	// FindMenuOn returns nil, nil when the restaurant has no menu that day.
	FindMenuOn(ctx context.Context, restaurantID uint, day string) (*models.Menu, error)
	// CreateMenu returns ErrDuplicateMenu when the per-day unique index fires.
	CreateMenu(ctx context.Context, menu *models.Menu) error
	GetMenu(ctx context.Context, id uint) (*models.Menu, error)
	// FindVoteOn returns nil, nil when the employee has not voted that day.
	FindVoteOn(ctx context.Context, employeeID uint, day string) (*models.Vote, error)
	// RecordVote inserts the vote and increments the menu counter in one
	// transaction. ErrAlreadyVoted when the per-day unique index fires.
	RecordVote(ctx context.Context, vote *models.Vote) error
	// TopMenuOn returns ErrNoMenuToday when no menu exists for the day.
	TopMenuOn(ctx context.Context, day string) (*models.Menu, error)
	MenusOn(ctx context.Context, day string) ([]models.Menu, error)
}

// EmployeeResolver maps an identity to its Employee, or nil when the
// identity has none.
type EmployeeResolver interface {
	ResolveEmployee(ctx context.Context, who Identity) (*models.Employee, error)
}

// FileStore keeps uploaded menu files and hands back a retrievable reference.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Delete(ctx context.Context, ref string) error
}

// Guard is a cross-instance claim used to short-circuit concurrent
// duplicates. Claim reports false when the key is already held.
type Guard interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
