package repository

import "context"

// Claves del almacenamiento. Cada clave guarda un único documento JSON.
const (
	KeyCustomers = "isp_billing_data_v2"
	KeyUsers     = "isp_users_db"
	KeySession   = "isp_auth_user"
)

// KeyValueStore puerto del backend de almacenamiento (archivo, memoria, sqlite, postgres, redis, mongo).
// Get devuelve ok=false cuando la clave no existe.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
