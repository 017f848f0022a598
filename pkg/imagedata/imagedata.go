// Package imagedata converts between image files, raw bytes and the
// base64 data URIs stored alongside journal entries.
package imagedata

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	// ErrMalformed is returned for data URIs that can't be split into a
	// media type and a base64 payload.
	ErrMalformed = errors.New("invalid image format. Please upload a valid image or add a text entry")

	// ErrUnsupported is returned for files that aren't PNG or JPEG.
	ErrUnsupported = errors.New("unsupported image type, use a PNG or JPEG")
)

// Accepted lists the media types an image upload may have.
var Accepted = []string{"image/png", "image/jpeg"}

// MaxFileSize bounds image uploads.
const MaxFileSize = 10 << 20

// Image is a decoded inline image.
type Image struct {
	MediaType string
	Data      []byte
}

// Parse splits a "data:<media type>;base64,<payload>" URI.
func Parse(uri string) (*Image, error) {
	head, payload, ok := strings.Cut(uri, ",")
	if !ok || payload == "" {
		return nil, ErrMalformed
	}
	head, ok = strings.CutPrefix(head, "data:")
	if !ok {
		return nil, ErrMalformed
	}
	mediaType, params, ok := strings.Cut(head, ";")
	if !ok || mediaType == "" || !strings.Contains(params, "base64") {
		return nil, ErrMalformed
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &Image{MediaType: mediaType, Data: data}, nil
}

// FromBytes sniffs the media type of data and rejects anything not listed
// in Accepted.
func FromBytes(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrUnsupported
	}
	mt := mimetype.Detect(data)
	for _, accepted := range Accepted {
		if mt.Is(accepted) {
			return &Image{MediaType: accepted, Data: data}, nil
		}
	}
	return nil, fmt.Errorf("%w: got %s", ErrUnsupported, mt.String())
}

// Load reads an image file from disk.
func Load(path string) (*Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read the selected file: %w", err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("image %s is larger than %d bytes", path, MaxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read the selected file: %w", err)
	}
	return FromBytes(data)
}

// Base64 is the bare standard base64 payload.
func (i *Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// DataURI renders the image as a data URI.
func (i *Image) DataURI() string {
	return "data:" + i.MediaType + ";base64," + i.Base64()
}
