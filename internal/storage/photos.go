package storage

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// UploadDir is the folder, relative to the storage root, that holds trip photos.
const UploadDir = "uploads"

// MaxDimension bounds the width and height of a stored photo.
const MaxDimension = 1600

var (
	ErrTooLarge     = errors.New("photo exceeds the maximum upload size")
	ErrInvalidImage = errors.New("photo must be a jpeg, png, gif, bmp or tiff image")
)

// PhotoStore keeps delivery-note photos on local disk under Root.
type PhotoStore struct {
	Root      string
	PublicURL string
	MaxBytes  int64
}

func NewPhotoStore(root, publicURL string, maxBytes int64) *PhotoStore {
	return &PhotoStore{Root: root, PublicURL: strings.TrimRight(publicURL, "/"), MaxBytes: maxBytes}
}

// Save decodes the upload, shrinks it to fit MaxDimension and writes it as JPEG.
// It returns the path relative to Root.
func (s *PhotoStore) Save(fh *multipart.FileHeader) (string, error) {
	if s.MaxBytes > 0 && fh.Size > s.MaxBytes {
		return "", ErrTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", ErrInvalidImage
	}
	b := img.Bounds()
	if b.Dx() > MaxDimension || b.Dy() > MaxDimension {
		img = imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
	}

	if err := os.MkdirAll(filepath.Join(s.Root, UploadDir), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	rel := path.Join(UploadDir, uuid.NewString()+".jpg")
	if err := imaging.Save(img, s.fullPath(rel), imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}
	return rel, nil
}

// Delete removes a stored photo; a file that is already gone is not an error.
func (s *PhotoStore) Delete(rel string) error {
	if rel == "" {
		return nil
	}
	if err := os.Remove(s.fullPath(rel)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete photo %s: %w", rel, err)
	}
	return nil
}

// URL is the public address of a stored photo.
func (s *PhotoStore) URL(rel string) string {
	return s.PublicURL + "/storage/" + strings.TrimLeft(rel, "/")
}

// fullPath keeps rel inside Root.
func (s *PhotoStore) fullPath(rel string) string {
	return filepath.Join(s.Root, filepath.FromSlash(path.Clean("/"+rel)))
}
