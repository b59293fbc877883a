// Package kvstore contiene los backends locales de repository.KeyValueStore:
// memoria (tests, modo demo) y archivos JSON sobre afero.
package kvstore

import (
	"context"
	"sync"

	"github.com/jhoicas/isp-ledger/internal/domain/repository"
)

var _ repository.KeyValueStore = (*Memory)(nil)

// Memory almacenamiento en memoria. Los valores se copian al entrar y al salir.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory crea un almacenamiento vacío.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
