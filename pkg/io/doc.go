// Package io reads and writes the JSON files fyp works with: symbol crops,
// parsed trees and evaluation datasets.
//
// # Crops
//
// A crops file lists the recognized symbols of one expression. Boxes are
// [left, top, right, bottom] in pixels:
//
//	{
//	  "image": "expr.png",
//	  "crops": [
//	    {"label": "\\frac", "box": [0, 50, 100, 53]},
//	    {"label": "2",      "box": [36, 0, 64, 46]},
//	    {"label": "1",      "box": [38, 60, 61, 106]}
//	  ]
//	}
//
// Use [ImportCrops] to read a file or [ReadCrops] for any io.Reader. Labels
// and boxes are validated; whether a label is known to the symbol table is
// left to the parser. [WriteCrops] produces the same format, which is what
// `fyp segment` emits.
//
// # Trees
//
// [WriteTree] writes the exported form of a parsed tree, one object per
// node with its forward relations:
//
//	[
//	  {"position": 0, "label": "\\frac", "box": [0, 50, 100, 53],
//	   "relations": {"up": [1], "down": [2]}},
//	  ...
//	]
//
// [ReadTree] rebuilds a tree from that form, so a tree can be saved, edited
// by hand and rendered again.
//
// # Datasets
//
// [ReadDataset] reads an evaluation manifest, either JSON:
//
//	{"entries": [{"name": "a", "crops": "a.json", "expr": "\\frac{2}{1}"}]}
//
// or a CSV with file_basename and expr columns, where each row refers to
// file_basename.png next to the manifest. Entry paths are relative to the
// manifest directory.
//
// # Errors
//
// Decoding failures are INVALID_FORMAT errors, invalid content is
// INVALID_INPUT, INVALID_LABEL or INVALID_BOX, and missing files are
// FILE_NOT_FOUND. All errors name the offending file or entry.
package io
