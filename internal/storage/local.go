package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
)

// LocalStorage хранит объекты файлами в одном каталоге.
// Доступ идёт через os.Root, поэтому ключ не может выйти за пределы каталога.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if dir == "" {
		return nil, errors.New("upload directory is required")
	}
	return &LocalStorage{dir: dir}, nil
}

// EnsureBucket создаёт каталог, если его нет.
func (s *LocalStorage) EnsureBucket(ctx context.Context) error {
	return os.MkdirAll(s.dir, 0o755)
}

func (s *LocalStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	root, err := os.OpenRoot(s.dir)
	if err != nil {
		return err
	}
	defer root.Close()

	f, err := root.OpenFile(key, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = root.Remove(key)
		return err
	}
	return f.Close()
}

func (s *LocalStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	root, err := os.OpenRoot(s.dir)
	if err != nil {
		return nil, err
	}
	defer root.Close()

	f, err := root.Open(key)
	if err != nil {
		// выход за пределы каталога не отличаем от отсутствующего файла
		return nil, ErrObjectNotFound
	}
	if st, err := f.Stat(); err != nil || st.IsDir() {
		_ = f.Close()
		return nil, ErrObjectNotFound
	}
	return f, nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	root, err := os.OpenRoot(s.dir)
	if err != nil {
		return err
	}
	defer root.Close()

	if err := root.Remove(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Bucket returns the upload directory.
func (s *LocalStorage) Bucket() string {
	return s.dir
}
