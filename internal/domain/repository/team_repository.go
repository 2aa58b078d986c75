package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/entity"
)

// TeamRepository defines team data access
type TeamRepository interface {
	Create(ctx context.Context, team *entity.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Team, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Team, error)
	Update(ctx context.Context, team *entity.Team) error
}

// UserRepository defines user data access
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]entity.User, error)
}

// CustomerRepository defines customer data access
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, teamID uuid.UUID, search string) ([]entity.Customer, error)
}
