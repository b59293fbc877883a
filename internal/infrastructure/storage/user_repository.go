package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jhoicas/isp-ledger/internal/domain"
	"github.com/jhoicas/isp-ledger/internal/domain/entity"
	"github.com/jhoicas/isp-ledger/internal/domain/repository"
	"github.com/jhoicas/isp-ledger/pkg/logger"
)

var (
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.SessionRepository = (*SessionRepo)(nil)
)

// UserRepo lista de cuentas locales (clave isp_users_db).
type UserRepo struct {
	kv  repository.KeyValueStore
	log *logger.Logger
	mu  sync.Mutex
}

// NewUserRepository construye el repositorio de cuentas.
func NewUserRepository(kv repository.KeyValueStore, log *logger.Logger) *UserRepo {
	return &UserRepo{kv: kv, log: log}
}

func (r *UserRepo) load(ctx context.Context) ([]entity.User, error) {
	raw, ok, err := r.kv.Get(ctx, repository.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("leer usuarios: %w", err)
	}
	if !ok {
		return []entity.User{}, nil
	}
	var users []entity.User
	if err := json.Unmarshal(raw, &users); err != nil {
		r.log.Warn().Err(err).Str("key", repository.KeyUsers).Msg("lista de usuarios corrupta, se usa lista vacía")
		return []entity.User{}, nil
	}
	if users == nil {
		users = []entity.User{}
	}
	return users, nil
}

func (r *UserRepo) save(ctx context.Context, users []entity.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("serializar usuarios: %w", err)
	}
	if err := r.kv.Set(ctx, repository.KeyUsers, raw); err != nil {
		return fmt.Errorf("guardar usuarios: %w", err)
	}
	return nil
}

func (r *UserRepo) List(ctx context.Context) ([]entity.User, error) {
	return r.load(ctx)
}

// GetByUsername devuelve nil, nil si el usuario no existe.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			u := users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Create(ctx context.Context, user entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Username == user.Username {
			return domain.ErrDuplicate
		}
	}
	return r.save(ctx, append(users, user))
}

// Update reemplaza la cuenta con el mismo username. No-op si no existe.
func (r *UserRepo) Update(ctx context.Context, user entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Username == user.Username {
			users[i] = user
			return r.save(ctx, users)
		}
	}
	return nil
}

func (r *UserRepo) ReplaceAll(ctx context.Context, users []entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if users == nil {
		users = []entity.User{}
	}
	return r.save(ctx, users)
}

// SessionRepo sesión activa (clave isp_auth_user).
type SessionRepo struct {
	kv repository.KeyValueStore
}

func NewSessionRepository(kv repository.KeyValueStore) *SessionRepo {
	return &SessionRepo{kv: kv}
}

// Get devuelve nil, nil si no hay sesión (o si el documento es ilegible).
func (r *SessionRepo) Get(ctx context.Context) (*entity.Session, error) {
	raw, ok, err := r.kv.Get(ctx, repository.KeySession)
	if err != nil {
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var s entity.Session
	if err := json.Unmarshal(raw, &s); err != nil || s.Username == "" {
		return nil, nil
	}
	return &s, nil
}

func (r *SessionRepo) Set(ctx context.Context, session entity.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("serializar sesión: %w", err)
	}
	if err := r.kv.Set(ctx, repository.KeySession, raw); err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

func (r *SessionRepo) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, repository.KeySession); err != nil {
		return fmt.Errorf("cerrar sesión: %w", err)
	}
	return nil
}
