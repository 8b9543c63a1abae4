package utils

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// SupportedImageExtensions lists the file extensions the tool will touch.
// Scanned photo batches are png/jpeg; anything else is skipped at discovery.
var SupportedImageExtensions = []string{".jpg", ".jpeg", ".png"}

// JPEGQuality is used when rewriting JPEG files in place.
const JPEGQuality = 95

// IsSupportedImage reports whether the path has a supported image extension.
// The check is case-insensitive so scanner output like IMG_0001.JPG matches.
func IsSupportedImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedImageExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// ImageMetadata captures lightweight file and pixel information.
type ImageMetadata struct {
	Path      string
	Format    string // "jpeg" or "png", as reported by the registered decoder
	SizeBytes int64
	Mode      os.FileMode
	Width     int
	Height    int
}

// LoadImage opens and decodes an image file, returning the image and metadata.
func LoadImage(path string) (image.Image, ImageMetadata, error) {
	if path == "" {
		return nil, ImageMetadata{}, &ImageProcessingError{Operation: "load", Err: errors.New("empty path")}
	}
	if !IsSupportedImage(path) {
		err := &ImageProcessingError{Operation: "load", Err: fmt.Errorf("unsupported format: %s", filepath.Ext(path))}
		return nil, ImageMetadata{}, err
	}

	f, err := os.Open(path) //nolint:gosec // G304: reading user-provided image path is expected
	if err != nil {
		return nil, ImageMetadata{}, &ImageProcessingError{Operation: "load", Err: err}
	}
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing image file: %v\n", err)
		}
	}()

	fi, statErr := f.Stat()
	if statErr != nil {
		return nil, ImageMetadata{}, &ImageProcessingError{Operation: "load", Err: statErr}
	}

	img, format, decErr := image.Decode(f)
	if decErr != nil {
		return nil, ImageMetadata{}, &ImageProcessingError{Operation: "decode", Err: decErr}
	}

	b := img.Bounds()
	meta := ImageMetadata{
		Path:      path,
		Format:    format,
		SizeBytes: fi.Size(),
		Mode:      fi.Mode().Perm(),
		Width:     b.Dx(),
		Height:    b.Dy(),
	}

	return img, meta, nil
}

// SaveImage re-encodes img in the given format and replaces the file at path.
// The write goes to a temporary file in the same directory followed by a
// rename, so a failed encode never clobbers the original. Pixel metadata such
// as EXIF capture dates is not carried across the re-encode.
func SaveImage(img image.Image, path, format string, mode os.FileMode) error {
	if img == nil {
		return &ImageProcessingError{Operation: "save", Err: errors.New("nil image")}
	}
	if mode == 0 {
		mode = 0o644
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &ImageProcessingError{Operation: "save", Err: err}
	}
	tmpPath := tmp.Name()
	defer func() {
		// No-op after a successful rename.
		_ = os.Remove(tmpPath)
	}()

	if err := encodeImage(tmp, img, format); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return &ImageProcessingError{Operation: "save", Err: err}
	}

	if err := os.Chmod(tmpPath, mode); err != nil {
		return &ImageProcessingError{Operation: "save", Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &ImageProcessingError{Operation: "save", Err: err}
	}
	return nil
}

// encodeImage writes img to w in the original file's format.
func encodeImage(w *os.File, img image.Image, format string) error {
	switch format {
	case "jpeg":
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return &ImageProcessingError{Operation: "encode", Err: err}
		}
	case "png":
		if err := png.Encode(w, img); err != nil {
			return &ImageProcessingError{Operation: "encode", Err: err}
		}
	default:
		return &ImageProcessingError{Operation: "encode", Err: fmt.Errorf("unsupported format: %q", format)}
	}
	return nil
}
