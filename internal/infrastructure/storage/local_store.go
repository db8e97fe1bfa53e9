// Package storage implementa usecase.BlobStore sobre disco local y S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/amremberto/gecom-following-preload-sub002/internal/application/usecase"
	"github.com/amremberto/gecom-following-preload-sub002/internal/domain"
)

var _ usecase.BlobStore = (*LocalStore)(nil)

// LocalStore guarda los adjuntos bajo un directorio raíz. La clave es la ruta relativa con "/".
type LocalStore struct {
	basePath string
}

// NewLocalStore crea el directorio raíz si no existe.
func NewLocalStore(basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de adjuntos %s: %w", basePath, err)
	}
	return &LocalStore{basePath: basePath}, nil
}

// Save escribe a un temporal y lo renombra: la clave final nunca apunta a un archivo incompleto.
func (s *LocalStore) Save(ctx context.Context, key string, r io.Reader, _ int64, _ string) error {
	full, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, &ctxReader{ctx: ctx, r: r}); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), full)
}

// Open abre el archivo de la clave. Si no existe devuelve domain.ErrNotFound.
func (s *LocalStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	full, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("archivo %s: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Delete borra el archivo. Si no existe se considera borrado.
func (s *LocalStore) Delete(_ context.Context, key string) error {
	full, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// path resuelve la clave dentro de basePath y rechaza las que escapan de la raíz.
func (s *LocalStore) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if key == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("clave de archivo %q: %w", key, domain.ErrInvalidInput)
	}
	return filepath.Join(s.basePath, clean), nil
}

// ctxReader corta la copia si el contexto se cancela.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
