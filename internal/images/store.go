// Package images stores post attachments on disk, content-addressed by hash.
package images

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"yatube/internal/models"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder
)

const (
	DefaultMaxUploadSizeMB = 10
	masterMaxSize          = 2048
	thumbMaxSize           = 256
	jpegQuality            = 82
	webpQuality            = 70
)

// Store writes attachment images under a media directory. Each upload is
// stored as a full-size JPEG plus a WebP thumbnail, keyed by the content
// hash so re-uploads of the same bytes share one set of files.
type Store struct {
	dir            string
	maxUploadBytes int64
}

func NewStore(dir string) *Store {
	return &Store{
		dir:            dir,
		maxUploadBytes: int64(DefaultMaxUploadSizeMB) * 1024 * 1024,
	}
}

// Save validates, normalizes, and persists an uploaded image. It returns the
// URL path the stored image is served under.
func (s *Store) Save(content []byte) (string, error) {
	if len(content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(content)) > s.maxUploadBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(content)
	if !isAllowedImageMIME(detectedType) {
		return "", models.NewValidationError("Invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}
	if !isSupportedFormat(format) {
		return "", models.NewValidationError("Unsupported image format")
	}

	master := resizeToFit(decoded, masterMaxSize, masterMaxSize)
	thumb := resizeToFit(decoded, thumbMaxSize, thumbMaxSize)

	encodedMaster, err := encodeJPEG(master, jpegQuality)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	encodedThumb, err := encodeWebP(thumb, webpQuality)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	// Files live under <dir>/i/<hash>/ so the returned URL resolves through
	// the static /media mount without a dedicated handler.
	hash := contentHash(content)
	masterAbs := filepath.Join(s.dir, "i", hash, "image.jpg")
	thumbAbs := filepath.Join(s.dir, "i", hash, "thumb.webp")

	if err := writeBytesToFile(masterAbs, encodedMaster); err != nil {
		return "", models.NewInternalError(err)
	}
	if err := writeBytesToFile(thumbAbs, encodedThumb); err != nil {
		_ = os.Remove(masterAbs)
		return "", models.NewInternalError(err)
	}

	return URLPath(hash), nil
}

// URLPath returns the serving path for a stored image hash.
func URLPath(hash string) string {
	return fmt.Sprintf("/media/i/%s/image.jpg", hash)
}

// ThumbURLPath returns the serving path for a stored image's thumbnail.
func ThumbURLPath(hash string) string {
	return fmt.Sprintf("/media/i/%s/thumb.webp", hash)
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg", "png", "gif", "webp":
		return true
	default:
		return false
	}
}

func writeBytesToFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
