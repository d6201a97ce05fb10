package io

import (
	"encoding/json"
	"io"

	"github.com/Amjad50/Fyp/pkg/errors"
	"github.com/Amjad50/Fyp/pkg/tree"
)

// WriteTree encodes the exported form of t as indented JSON.
func WriteTree(w io.Writer, t *tree.Tree) error {
	return writeJSON(w, t.Export())
}

// ExportTree writes the exported form of t to a file at path.
func ExportTree(path string, t *tree.Tree) error {
	return create(path, func(w io.Writer) error { return WriteTree(w, t) })
}

// ReadTree rebuilds a tree from the JSON written by [WriteTree]. Nodes must
// be listed by position starting at 0. Within a relation, children keep the
// order they are listed in.
func ReadTree(r io.Reader) (*tree.Tree, error) {
	var views []tree.NodeView
	if err := json.NewDecoder(r).Decode(&views); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode tree")
	}
	return tree.FromExport(views)
}

// ImportTree reads the tree file at path.
func ImportTree(path string) (*tree.Tree, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadTree(f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "read %s", path)
	}
	return t, nil
}
