package storage

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// Разрешённые расширения аватаров и соответствующие MIME-типы.
var allowedImages = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var ErrUnsupportedImage = errors.New("Only JPEG, PNG, GIF and WebP images are allowed")

// DetectImage проверяет расширение имени файла и магические байты содержимого.
// Возвращает reader, который снова отдаёт файл с начала, и каноническое расширение.
func DetectImage(filename string, r io.Reader) (io.Reader, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	wantMIME, ok := allowedImages[ext]
	if !ok {
		return nil, "", ErrUnsupportedImage
	}

	head := make([]byte, 261)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, "", fmt.Errorf("storage: не удалось прочитать файл: %w", err)
	}
	head = head[:n]

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown || kind.MIME.Value != wantMIME {
		return nil, "", ErrUnsupportedImage
	}

	return io.MultiReader(strings.NewReader(string(head)), r), "." + kind.Extension, nil
}
