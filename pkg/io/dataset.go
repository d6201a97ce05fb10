package io

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Amjad50/Fyp/pkg/errors"
)

// Entry is one expression of an evaluation dataset. Exactly one of Crops
// and Image is set; both are paths resolved against the manifest directory.
type Entry struct {
	Name  string `json:"name"`
	Crops string `json:"crops,omitempty"`
	Image string `json:"image,omitempty"`
	Expr  string `json:"expr"`
}

// Dataset is a decoded evaluation manifest.
type Dataset struct {
	Entries []Entry `json:"entries"`
}

// ReadDataset reads the manifest at path. Files ending in .csv are read as
// file_basename,expr tables; anything else is read as JSON.
func ReadDataset(path string) (*Dataset, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var ds *Dataset
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		ds, err = readCSVDataset(f)
	} else {
		ds, err = readJSONDataset(f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "read %s", path)
	}

	dir := filepath.Dir(path)
	for i := range ds.Entries {
		e := &ds.Entries[i]
		if (e.Crops == "") == (e.Image == "") {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"%s: entry %q needs exactly one of crops and image", path, e.Name)
		}
		for _, p := range []*string{&e.Crops, &e.Image} {
			if *p == "" {
				continue
			}
			if err := errors.ValidateRelativePath(*p); err != nil {
				return nil, errors.Wrap(errors.GetCode(err), err, "%s: entry %q", path, e.Name)
			}
			*p = filepath.Join(dir, *p)
		}
		if e.Name == "" {
			e.Name = strings.TrimSuffix(filepath.Base(e.Crops+e.Image), filepath.Ext(e.Crops+e.Image))
		}
	}
	return ds, nil
}

func readJSONDataset(r io.Reader) (*Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode dataset")
	}
	if len(ds.Entries) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dataset has no entries")
	}
	return &ds, nil
}

func readCSVDataset(r io.Reader) (*Dataset, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode dataset")
	}
	if len(rows) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dataset has no entries")
	}

	nameCol := slices.Index(rows[0], "file_basename")
	exprCol := slices.Index(rows[0], "expr")
	if nameCol < 0 || exprCol < 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "dataset header needs file_basename and expr columns")
	}

	ds := &Dataset{Entries: make([]Entry, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		name := row[nameCol]
		ds.Entries = append(ds.Entries, Entry{Name: name, Image: name + ".png", Expr: row[exprCol]})
	}
	return ds, nil
}
