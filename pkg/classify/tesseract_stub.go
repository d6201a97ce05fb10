//go:build !(cgo && linux)

package classify

import (
	"context"
	"image"

	"github.com/Amjad50/Fyp/pkg/errors"
)

// Tesseract is unavailable on this platform.
type Tesseract struct{}

// TesseractOptions configures [NewTesseract].
type TesseractOptions struct {
	Language       string
	TessdataPrefix string
	NoWhitelist    bool
}

// NewTesseract always fails: OCR needs cgo on Linux.
func NewTesseract(TesseractOptions) (*Tesseract, error) {
	return nil, errors.New(errors.ErrCodeUnavailable, "tesseract OCR requires a Linux build with cgo")
}

func (*Tesseract) Name() string { return "tesseract" }

func (*Tesseract) Classify(context.Context, image.Image) (string, error) {
	return "", errors.New(errors.ErrCodeUnavailable, "tesseract OCR requires a Linux build with cgo")
}

func (*Tesseract) Version() string { return "" }

func (*Tesseract) Close() error { return nil }

var _ Classifier = (*Tesseract)(nil)
