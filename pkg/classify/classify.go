// Package classify turns glyph images into symbol labels.
//
// # Classifiers
//
// A [Classifier] labels one glyph at a time. Three are provided:
//
//   - [Tesseract]: OCR in single-character mode, available on Linux builds
//     with cgo; elsewhere [NewTesseract] returns an UNAVAILABLE error
//   - [Shape]: recognizes bars (- and =) from the ink layout alone
//   - [Chain]: asks several classifiers in turn and keeps the first answer
//
// A classifier that cannot name a glyph returns an UNKNOWN_LABEL error so
// a [Chain] moves on to the next one.
//
// # Fraction bars
//
// A fraction bar and a minus sign look the same in isolation. Classifiers
// report both as "-"; [ResolveFractionBars] relabels a bar as \frac once
// the whole expression is known and the bar has symbols above and below it.
package classify

import (
	"context"
	"image"
	"time"

	"github.com/Amjad50/Fyp/pkg/errors"
	"github.com/Amjad50/Fyp/pkg/observability"
)

// Classifier labels a single glyph image.
type Classifier interface {
	Name() string
	Classify(ctx context.Context, glyph image.Image) (string, error)
}

// Func adapts a function to the [Classifier] interface.
type Func struct {
	ID string
	Fn func(ctx context.Context, glyph image.Image) (string, error)
}

func (f Func) Name() string { return f.ID }

func (f Func) Classify(ctx context.Context, glyph image.Image) (string, error) {
	return f.Fn(ctx, glyph)
}

// Chain tries each classifier in order. Unavailable classifiers and
// UNKNOWN_LABEL answers fall through to the next one; any other error
// stops the chain.
type Chain []Classifier

func (c Chain) Name() string {
	name := "chain("
	for i, cl := range c {
		if i > 0 {
			name += ","
		}
		name += cl.Name()
	}
	return name + ")"
}

func (c Chain) Classify(ctx context.Context, glyph image.Image) (string, error) {
	for _, cl := range c {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		start := time.Now()
		label, err := cl.Classify(ctx, glyph)
		observability.Classifier().OnClassify(ctx, cl.Name(), label, time.Since(start), err)
		if err == nil {
			return label, nil
		}
		if !errors.Is(err, errors.ErrCodeUnknownLabel) && !errors.Is(err, errors.ErrCodeUnavailable) {
			return "", err
		}
	}
	return "", errors.New(errors.ErrCodeUnknownLabel, "no classifier recognized the glyph")
}

var (
	_ Classifier = Func{}
	_ Classifier = Chain(nil)
)
