//go:build cgo && linux

package classify

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/Amjad50/Fyp/pkg/errors"
)

// Tesseract classifies glyphs with the Tesseract OCR engine in
// single-character mode. A client is not safe for concurrent use, so
// calls are serialized.
type Tesseract struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// TesseractOptions configures [NewTesseract].
type TesseractOptions struct {
	// Language is the Tesseract language code. Defaults to "eng".
	Language string
	// TessdataPrefix overrides the directory holding the training data.
	TessdataPrefix string
	// NoWhitelist lets Tesseract answer with any character, so symbols
	// such as ∑ and π can be recognized by capable language models.
	NoWhitelist bool
}

// NewTesseract creates a Tesseract classifier.
func NewTesseract(opts TesseractOptions) (*Tesseract, error) {
	if opts.Language == "" {
		opts.Language = "eng"
	}
	client := gosseract.NewClient()
	if opts.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(opts.TessdataPrefix); err != nil {
			client.Close()
			return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "set tessdata path")
		}
	}
	if err := client.SetLanguage(opts.Language); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "set language %s", opts.Language)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_CHAR); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "set page segmentation mode")
	}
	if !opts.NoWhitelist {
		if err := client.SetWhitelist(ocrWhitelist); err != nil {
			client.Close()
			return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "set whitelist")
		}
	}
	return &Tesseract{client: client}, nil
}

func (t *Tesseract) Name() string { return "tesseract" }

// Classify runs OCR on the glyph.
func (t *Tesseract) Classify(ctx context.Context, glyph image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, glyph); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode glyph")
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "set image")
	}
	text, err := t.client.Text()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeUnknownLabel, err, "ocr")
	}
	label := NormalizeOCR(text)
	if label == "" {
		return "", errors.New(errors.ErrCodeUnknownLabel, "ocr returned %q", text)
	}
	return label, nil
}

// Version returns the Tesseract library version.
func (t *Tesseract) Version() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.client.Version()
}

// Close releases the OCR engine.
func (t *Tesseract) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.client.Close()
}

var _ Classifier = (*Tesseract)(nil)
