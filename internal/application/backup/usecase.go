// Package backup genera y restaura el código de sincronización: base64 de un JSON
// {auth, users, business, timestamp} que el operador copia y pega entre equipos.
package backup

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/jhoicas/isp-ledger/internal/application/dto"
	"github.com/jhoicas/isp-ledger/internal/domain"
	"github.com/jhoicas/isp-ledger/internal/domain/entity"
	"github.com/jhoicas/isp-ledger/internal/domain/repository"
	"github.com/jhoicas/isp-ledger/pkg/logger"
)

// payload documento codificado en el código de sincronización.
type payload struct {
	Auth      json.RawMessage `json:"auth"`
	Users     json.RawMessage `json:"users"`
	Business  json.RawMessage `json:"business"`
	Timestamp int64           `json:"timestamp"`
}

// SyncUseCase exportación/importación de todos los datos de la instalación.
type SyncUseCase struct {
	kv        repository.KeyValueStore
	users     repository.UserRepository
	customers repository.CustomerRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewSyncUseCase construye el caso de uso.
func NewSyncUseCase(kv repository.KeyValueStore, users repository.UserRepository, customers repository.CustomerRepository, log *logger.Logger) *SyncUseCase {
	return &SyncUseCase{kv: kv, users: users, customers: customers, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *SyncUseCase) WithClock(now func() time.Time) *SyncUseCase {
	uc.now = now
	return uc
}

// rawDoc lee el documento tal cual está guardado; si falta o no es JSON válido usa fallback.
func (uc *SyncUseCase) rawDoc(ctx context.Context, key string, fallback string) (json.RawMessage, error) {
	raw, ok, err := uc.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", key, err)
	}
	if !ok {
		return json.RawMessage(fallback), nil
	}
	if !json.Valid(raw) {
		uc.log.Warn().Str("key", key).Msg("documento corrupto, se exporta vacío")
		return json.RawMessage(fallback), nil
	}
	return json.RawMessage(raw), nil
}

// GenerateCode empaqueta sesión, cuentas y cartera en un código base64.
func (uc *SyncUseCase) GenerateCode(ctx context.Context) (*dto.SyncCodeResponse, error) {
	var (
		p   payload
		err error
	)
	if p.Auth, err = uc.rawDoc(ctx, repository.KeySession, "null"); err != nil {
		return nil, err
	}
	if p.Users, err = uc.rawDoc(ctx, repository.KeyUsers, "[]"); err != nil {
		return nil, err
	}
	if p.Business, err = uc.rawDoc(ctx, repository.KeyCustomers, "[]"); err != nil {
		return nil, err
	}
	p.Timestamp = uc.now().UnixMilli()

	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("serializar código: %w", err)
	}
	return &dto.SyncCodeResponse{
		Code:      base64.StdEncoding.EncodeToString(raw),
		Timestamp: p.Timestamp,
	}, nil
}

// present indica si el campo vino en el código con un valor distinto de null.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Restore aplica un código: sobrescribe cuentas y cartera si vienen en él. La sesión nunca
// se restaura. Cualquier error de decodificación (base64, UTF-8, JSON que no sea objeto)
// devuelve ErrInvalidSyncCode sin escribir nada.
func (uc *SyncUseCase) Restore(ctx context.Context, code string) (*dto.SyncImportResponse, error) {
	code = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, code)
	if code == "" {
		return nil, domain.ErrInvalidSyncCode
	}
	raw, err := base64.StdEncoding.DecodeString(code)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", domain.ErrInvalidSyncCode, err)
	}
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: utf-8", domain.ErrInvalidSyncCode)
	}
	if doc := bytes.TrimSpace(raw); len(doc) == 0 || doc[0] != '{' {
		return nil, fmt.Errorf("%w: se espera un objeto JSON", domain.ErrInvalidSyncCode)
	}
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: json: %v", domain.ErrInvalidSyncCode, err)
	}

	out := &dto.SyncImportResponse{}
	var (
		users     []entity.User
		customers []*entity.Customer
	)
	if present(p.Users) {
		if err := json.Unmarshal(p.Users, &users); err != nil {
			return nil, fmt.Errorf("%w: users: %v", domain.ErrInvalidSyncCode, err)
		}
		out.UsersRestored, out.Users = true, len(users)
	}
	if present(p.Business) {
		if err := json.Unmarshal(p.Business, &customers); err != nil {
			return nil, fmt.Errorf("%w: business: %v", domain.ErrInvalidSyncCode, err)
		}
		out.CustomersRestored, out.Customers = true, len(customers)
	}

	// Son dos escrituras independientes: la cartera va primero; si falla la de cuentas,
	// la cartera ya quedó restaurada y se devuelve el error.
	if out.CustomersRestored {
		if err := uc.customers.ReplaceAll(ctx, customers); err != nil {
			return nil, err
		}
	}
	if out.UsersRestored {
		if err := uc.users.ReplaceAll(ctx, users); err != nil {
			return nil, fmt.Errorf("cartera restaurada, cuentas no: %w", err)
		}
	}
	uc.log.Info().
		Int("users", out.Users).
		Int("customers", out.Customers).
		Int64("exported_at", p.Timestamp).
		Msg("código de sincronización restaurado")
	return out, nil
}
