package utils

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image/jpeg"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	// Maximum file size (10MB)
	MaxImageSize = 10 * 1024 * 1024
	// Stored photos are scaled down to this width
	maxImageWidth = 1600
	jpegQuality   = 85
)

var (
	ErrUnsupportedImage = errors.New("unsupported image format. Allowed formats: jpg, jpeg, png, gif")
	ErrImageTooLarge    = fmt.Errorf("file too large. Maximum size is %d bytes", MaxImageSize)

	// Allowed image extensions
	allowedImageExts = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
	}
	allowedImageTypes = map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
	}
)

// ValidateImageUpload checks the name and size of an uploaded photo
func ValidateImageUpload(filename string, size int64) error {
	if size > MaxImageSize {
		return ErrImageTooLarge
	}
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" && !allowedImageExts[ext] {
		return ErrUnsupportedImage
	}
	return nil
}

// DetectImageType sniffs the content type of data, rejecting non-images
func DetectImageType(data []byte) (string, error) {
	contentType := http.DetectContentType(data)
	if !allowedImageTypes[contentType] {
		return "", ErrUnsupportedImage
	}
	return contentType, nil
}

// NormalizeImage decodes a photo, applies EXIF orientation, scales it down to
// a sensible width and re-encodes it as JPEG.
func NormalizeImage(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeBase64 decodes plain base64 or a data URL such as
// "data:image/png;base64,iVBOR...".
func DecodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		idx := strings.Index(s, ",")
		if idx < 0 {
			return nil, errors.New("malformed data URL")
		}
		s = s[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 data: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("empty data")
	}
	return data, nil
}

// ToDataURL encodes data as a base64 data URL
func ToDataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
