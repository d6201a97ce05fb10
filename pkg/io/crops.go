package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/Amjad50/Fyp/pkg/errors"
	"github.com/Amjad50/Fyp/pkg/geometry"
	"github.com/Amjad50/Fyp/pkg/symbols"
)

// CropsFile is the on-disk form of a crops file.
type CropsFile struct {
	Image string      `json:"image,omitempty"`
	Crops []cropEntry `json:"crops"`
}

type cropEntry struct {
	Label string `json:"label"`
	Box   [4]int `json:"box"`
}

// ReadCrops decodes a crops file from r. It returns an error if the JSON is
// malformed, the crop list is empty, or a label or box is invalid. ReadCrops
// does not close r.
func ReadCrops(r io.Reader) ([]symbols.LabeledCrop, error) {
	var data CropsFile
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode crops")
	}
	if len(data.Crops) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "crops file has no crops")
	}

	crops := make([]symbols.LabeledCrop, len(data.Crops))
	for i, c := range data.Crops {
		if err := errors.ValidateLabel(c.Label); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "crop %d", i)
		}
		if err := errors.ValidateBox(c.Box[0], c.Box[1], c.Box[2], c.Box[3]); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "crop %d (%s)", i, c.Label)
		}
		crops[i] = symbols.LabeledCrop{
			Label: c.Label,
			Box:   geometry.NewBox(c.Box[0], c.Box[1], c.Box[2], c.Box[3]),
		}
	}
	return crops, nil
}

// ImportCrops reads the crops file at path.
func ImportCrops(path string) ([]symbols.LabeledCrop, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	crops, err := ReadCrops(f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "read %s", path)
	}
	return crops, nil
}

// WriteCrops encodes crops as an indented crops file. image is recorded
// when non-empty.
func WriteCrops(w io.Writer, image string, crops []symbols.LabeledCrop) error {
	out := CropsFile{Image: image, Crops: make([]cropEntry, len(crops))}
	for i, c := range crops {
		out.Crops[i] = cropEntry{
			Label: c.Label,
			Box:   [4]int{c.Box.Left, c.Box.Top, c.Box.Right, c.Box.Bottom},
		}
	}
	return writeJSON(w, out)
}

// ExportCrops writes crops to a file at path.
func ExportCrops(path, image string, crops []symbols.LabeledCrop) error {
	return create(path, func(w io.Writer) error { return WriteCrops(w, image, crops) })
}

func open(path string) (*os.File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	return f, nil
}

func create(path string, write func(io.Writer) error) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode")
	}
	return nil
}
