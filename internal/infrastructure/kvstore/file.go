package kvstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/jhoicas/isp-ledger/internal/domain/repository"
)

var _ repository.KeyValueStore = (*File)(nil)

// File guarda cada clave como <dir>/<clave>.json. Las escrituras van a un
// temporal y se renombran, así un corte a mitad no deja un documento truncado.
type File struct {
	fs  afero.Fs
	dir string
}

// NewFile crea el directorio si no existe. En producción fs es afero.NewOsFs().
func NewFile(fs afero.Fs, dir string) (*File, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de datos %s: %w", dir, err)
	}
	return &File{fs: fs, dir: dir}, nil
}

func (f *File) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("clave inválida %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func (f *File) Get(_ context.Context, key string) ([]byte, bool, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, false, err
	}
	data, err := afero.ReadFile(f.fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("leer %s: %w", p, err)
	}
	return data, true, nil
}

func (f *File) Set(_ context.Context, key string, value []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	tmp := p + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, value, 0o600); err != nil {
		return fmt.Errorf("escribir %s: %w", tmp, err)
	}
	if err := f.fs.Rename(tmp, p); err != nil {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("renombrar %s: %w", p, err)
	}
	return nil
}

func (f *File) Delete(_ context.Context, key string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	if err := f.fs.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("eliminar %s: %w", p, err)
	}
	return nil
}
