package repository

import (
	"context"

	"github.com/jhoicas/isp-ledger/internal/domain/entity"
)

// UserRepository define el puerto de persistencia de la lista de cuentas locales.
type UserRepository interface {
	List(ctx context.Context) ([]entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// Create devuelve domain.ErrDuplicate si el usuario ya existe.
	Create(ctx context.Context, user entity.User) error
	Update(ctx context.Context, user entity.User) error
	ReplaceAll(ctx context.Context, users []entity.User) error
}

// SessionRepository guarda la sesión activa (una sola por instalación).
type SessionRepository interface {
	Get(ctx context.Context) (*entity.Session, error)
	Set(ctx context.Context, session entity.Session) error
	Clear(ctx context.Context) error
}
