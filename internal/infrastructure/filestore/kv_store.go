// Package filestore guarda cada clave como un documento JSON en un directorio.
// Funciona sobre cualquier afero.Fs: disco (driver "file") o memoria (driver "memory").
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/spf13/afero"

	"github.com/jhoicas/control-inventario/internal/domain/repository"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.:-]+$`)

// KVStore implementación del puerto KeyValueStore sobre archivos <dir>/<key>.json.
type KVStore struct {
	mu  sync.RWMutex
	fs  afero.Fs
	dir string
}

// New construye el store sobre fs y crea el directorio si no existe.
func New(fs afero.Fs, dir string) (*KVStore, error) {
	if ok, _ := afero.DirExists(fs, dir); ok {
		return &KVStore{fs: fs, dir: dir}, nil
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio %s: %w", dir, err)
	}
	return &KVStore{fs: fs, dir: dir}, nil
}

// NewOnDisk store sobre el sistema de archivos del sistema operativo.
func NewOnDisk(dir string) (*KVStore, error) {
	return New(afero.NewOsFs(), dir)
}

// NewInMemory store efímero; los datos se pierden al cerrar el proceso.
func NewInMemory() *KVStore {
	return &KVStore{fs: afero.NewMemMapFs(), dir: "/"}
}

func (s *KVStore) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("clave inválida %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *KVStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, err := afero.ReadFile(s.fs, p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("leer %s: %w", p, err)
	}
	return value, true, nil
}

// Set escribe en un archivo temporal y lo renombra, así un lector nunca ve un documento a medias.
func (s *KVStore) Set(_ context.Context, key string, value []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := p + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, value, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, p); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("renombrar %s: %w", p, err)
	}
	return nil
}

func (s *KVStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("borrar %s: %w", p, err)
	}
	return nil
}

func (s *KVStore) Close() error { return nil }
