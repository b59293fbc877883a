package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/isp-ledger/internal/application/dto"
	"github.com/jhoicas/isp-ledger/internal/domain"
	"github.com/jhoicas/isp-ledger/internal/domain/entity"
	"github.com/jhoicas/isp-ledger/internal/domain/repository"
	"github.com/jhoicas/isp-ledger/pkg/jwt"
	"github.com/jhoicas/isp-ledger/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, logout y sesión actual.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtCfg      JWTConfig
	log         *logger.Logger
	cost        int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, sessionRepo: sessionRepo, jwtCfg: jwtCfg, log: log, cost: bcrypt.DefaultCost}
}

// WithBcryptCost ajusta el costo de bcrypt (tests usan bcrypt.MinCost).
func (uc *AuthUseCase) WithBcryptCost(cost int) *AuthUseCase {
	uc.cost = cost
	return uc
}

func normalize(in dto.CredentialsRequest) (string, string, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return "", "", fmt.Errorf("%w: usuario y contraseña son obligatorios", domain.ErrInvalidInput)
	}
	return username, in.Password, nil
}

// Signup crea una cuenta local. ErrDuplicate si el usuario ya existe.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.CredentialsRequest) (*dto.UserResponse, error) {
	username, password, err := normalize(in)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, entity.User{Username: username, Password: string(hash)}); err != nil {
		return nil, err
	}
	uc.log.Info().Str("username", username).Msg("cuenta creada")
	return &dto.UserResponse{Username: username}, nil
}

// Login verifica credenciales, abre la sesión y emite el token. Las cuentas importadas con
// contraseña en texto plano se aceptan una vez y se migran a bcrypt.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.CredentialsRequest) (*dto.LoginResponse, error) {
	username, password, err := normalize(in)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := uc.verify(ctx, user, password); err != nil {
		return nil, err
	}
	if err := uc.sessionRepo.Set(ctx, entity.Session{Username: username}); err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Username: username}, nil
}

func (uc *AuthUseCase) verify(ctx context.Context, user *entity.User, password string) error {
	if user.HasHashedPassword() {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
			return domain.ErrUnauthorized
		}
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return err
	}
	if err := uc.userRepo.Update(ctx, entity.User{Username: user.Username, Password: string(hash)}); err != nil {
		return err
	}
	uc.log.Info().Str("username", user.Username).Msg("contraseña legada migrada a bcrypt")
	return nil
}

// Logout cierra la sesión activa.
func (uc *AuthUseCase) Logout(ctx context.Context) error {
	return uc.sessionRepo.Clear(ctx)
}

// CurrentUser devuelve el operador con sesión abierta, o nil si no hay.
func (uc *AuthUseCase) CurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	s, err := uc.sessionRepo.Get(ctx)
	if err != nil || s == nil {
		return nil, err
	}
	return &dto.UserResponse{Username: s.Username}, nil
}

// SessionActive indica si la sesión guardada pertenece a username. Un token sigue siendo
// válido criptográficamente tras el logout; esta comprobación lo invalida.
func (uc *AuthUseCase) SessionActive(ctx context.Context, username string) (bool, error) {
	s, err := uc.sessionRepo.Get(ctx)
	if err != nil {
		return false, err
	}
	return s != nil && s.Username == username, nil
}
