package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PublicPrefix URL-префикс, под которым раздаётся корень хранилища.
const PublicPrefix = "/media"

const bytesInMB = 1 << 20

var ErrTooLarge = errors.New("storage: file exceeds upload limit")

// PhotoStorage хранит аватары на диске: <root>/<userID>/avatar_<nanos><ext>.
type PhotoStorage struct {
	root     string
	maxBytes int64
}

func NewPhotoStorage(root string, maxUploadMB int64) (*PhotoStorage, error) {
	if maxUploadMB <= 0 {
		return nil, fmt.Errorf("storage: upload limit must be positive, got %d MB", maxUploadMB)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create root %s: %w", root, err)
	}
	return &PhotoStorage{root: root, maxBytes: maxUploadMB * bytesInMB}, nil
}

func (s *PhotoStorage) Root() string          { return s.root }
func (s *PhotoStorage) MaxUploadBytes() int64 { return s.maxBytes }

// Save копирует r в каталог пользователя и возвращает путь относительно корня
// (через "/"). Файл появляется под итоговым именем только целиком.
func (s *PhotoStorage) Save(ctx context.Context, userID uuid.UUID, ext string, r io.Reader) (rel string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, userID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: create user dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("storage: create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	n, err := io.Copy(tmp, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("storage: write: %w", err)
	}
	if n > s.maxBytes {
		return "", ErrTooLarge
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("storage: close: %w", err)
	}

	name := "avatar_" + strconv.FormatInt(time.Now().UnixNano(), 10) + normalizeExt(ext)
	if err = os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("storage: rename: %w", err)
	}
	return path.Join(userID.String(), name), nil
}

// Delete принимает путь из Save или публичный URL. Пути вне корня и
// отсутствующие файлы игнорируются.
func (s *PhotoStorage) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rel := filepath.FromSlash(strings.TrimPrefix(ref, PublicPrefix+"/"))
	if rel == "" || !filepath.IsLocal(rel) {
		return nil
	}

	if err := os.Remove(filepath.Join(s.root, rel)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: remove %s: %w", rel, err)
	}
	return nil
}

func PublicURL(rel string) string {
	return path.Join(PublicPrefix, rel)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if ext == "." || strings.ContainsAny(ext, `/\`) {
		return ".bin"
	}
	return ext
}
