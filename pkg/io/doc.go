// Package io reads and writes outlines as documents.
//
// # Overview
//
// The outline model has no serialization of its own. This package turns an
// outline into a [Document] by walking it with [outline.Outline.Rows], and
// builds an outline back from a document by replaying AddColumn and
// InsertRow calls. Nothing outside the public outline API is touched, so a
// document round trip produces an outline that is equal in shape, columns
// and values, but with new row and column identities.
//
// # Document Format
//
// A document has two top-level arrays. Row values are positional: the n-th
// value belongs to the n-th column.
//
//	{
//	  "columns": [
//	    {"kind": "text", "title": "Content"},
//	    {"kind": "check", "title": "Complete"}
//	  ],
//	  "rows": [
//	    {"values": ["Groceries", false], "children": [
//	      {"values": ["Milk", true]}
//	    ]}
//	  ]
//	}
//
// Column kinds are "text", "check", "number" and "tags". A row may carry
// fewer values than there are columns; missing and null values take the
// column default.
//
// # Formats
//
// The same document is available as JSON, TOML and YAML. [FormatFromPath]
// picks the format from a file extension (.json, .toml, .yaml or .yml).
// Markdown (.md) is write-only: it renders the outline as a nested bullet
// list for reading, see [WriteMarkdown].
//
//	o, err := io.Import("plan.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = io.Export(o, "plan.json")
//
// Cell values are converted to their column kind with mapstructure, so an
// integer read from TOML or YAML becomes a float64 in a number column, and a
// list of strings becomes []string in a tags column.
//
// # Errors
//
// Errors carry a code from [github.com/jimtonn/foldout/pkg/errors]:
// INVALID_FORMAT for unknown formats and undecodable input, INVALID_DOCUMENT
// for documents that decode but do not describe a valid outline, and
// FILE_NOT_FOUND when an import path does not exist.
package io
