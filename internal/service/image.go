package service

import (
	"CurtainSamples/internal/storage"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// UploadURLPrefix путь, по которому раздаются загруженные изображения.
const UploadURLPrefix = "/api/uploads/"

var imageContentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)
	whitespaceRun       = regexp.MustCompile(`\s+`)
)

// ImageService сохраняет и отдаёт картинки товаров.
type ImageService struct {
	storage storage.ObjectStorage
	logger  *zap.SugaredLogger
}

func NewImageService(st storage.ObjectStorage, logger *zap.SugaredLogger) *ImageService {
	return &ImageService{storage: st, logger: logger}
}

// SaveImage сохраняет файл под уникальным именем и возвращает путь для скачивания.
// ok=false без ошибки означает, что расширение не из списка png/jpg/jpeg/gif и ничего не записано.
func (s *ImageService) SaveImage(ctx context.Context, filename string, r io.Reader, size int64) (url string, ok bool, err error) {
	ext := strings.ToLower(filepath.Ext(baseName(filename)))
	contentType, allowed := imageContentTypes[ext]
	if !allowed {
		s.logger.Warnw("image rejected: unsupported extension", "filename", filename)
		return "", false, nil
	}

	key := uuid.NewString() + "_" + SanitizeFilename(filename)
	if err := s.storage.Put(ctx, key, r, size, contentType); err != nil {
		return "", false, fmt.Errorf("store image %q: %w", key, err)
	}
	s.logger.Infow("image stored", "key", key, "size", size)
	return UploadURLPrefix + key, true, nil
}

// Open открывает ранее сохранённую картинку. Имя должно быть одним компонентом пути.
func (s *ImageService) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	if !validImageName(name) {
		return nil, "", ErrImageNotFound
	}
	rc, err := s.storage.Get(ctx, name)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, "", ErrImageNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("open image %q: %w", name, err)
	}
	return rc, contentTypeFor(name), nil
}

// Remove удаляет картинку по адресу, выданному SaveImage. Чужие адреса не трогаются.
func (s *ImageService) Remove(ctx context.Context, url string) error {
	name, ok := strings.CutPrefix(url, UploadURLPrefix)
	if !ok || !validImageName(name) {
		return ErrImageNotFound
	}
	if err := s.storage.Delete(ctx, name); err != nil {
		return fmt.Errorf("remove image %q: %w", name, err)
	}
	s.logger.Infow("image removed", "key", name)
	return nil
}

func validImageName(name string) bool {
	return name != "" && name != "." && !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}

// SanitizeFilename приводит имя файла к безопасному ASCII-виду:
// без каталогов, пробелы заменены на "_", остаются только буквы, цифры и "._-".
// Расширение сохраняется в нижнем регистре; пустая основа превращается в "image".
func SanitizeFilename(filename string) string {
	base := baseName(filename)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	stem = toASCII(stem)
	stem = whitespaceRun.ReplaceAllString(strings.TrimSpace(stem), "_")
	stem = unsafeFilenameChars.ReplaceAllString(stem, "")
	stem = strings.Trim(stem, "._")
	if stem == "" {
		stem = "image"
	}

	ext = strings.ToLower(unsafeFilenameChars.ReplaceAllString(ext, ""))
	return stem + ext
}

// baseName последний компонент пути с любым из разделителей / или \.
func baseName(filename string) string {
	if i := strings.LastIndexAny(filename, `/\`); i >= 0 {
		return filename[i+1:]
	}
	return filename
}

func toASCII(s string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(s) {
		if r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func contentTypeFor(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := imageContentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
