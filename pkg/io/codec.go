package io

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jimtonn/foldout/pkg/errors"
	"github.com/jimtonn/foldout/pkg/outline"
)

// ReadDocument decodes a document in format f from r. It does not close r.
func ReadDocument(r io.Reader, f Format) (*Document, error) {
	if err := errors.ValidateFormat(string(f), names(ReadableFormats)...); err != nil {
		return nil, err
	}

	var doc Document
	var err error
	switch f {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&doc)
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&doc)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
		if stderrors.Is(err, io.EOF) {
			err = nil
		}
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", f)
	}
	return &doc, nil
}

// WriteDocument encodes doc in format f to w. Markdown is not a document
// format; use [Write] or [WriteMarkdown] for it.
func WriteDocument(doc *Document, w io.Writer, f Format) error {
	var err error
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(doc); err == nil {
			err = enc.Close()
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "cannot write a document as %q", f)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", f)
	}
	return nil
}

// Read decodes an outline in format f from r.
//
// Read returns an INVALID_FORMAT error if f is not readable or the input
// does not decode, and an INVALID_DOCUMENT error if the decoded document
// names an unknown column kind, has more values than columns in some row,
// or holds a value that does not convert to its column's kind.
//
// The returned outline is independent of r. Read does not close r.
func Read(r io.Reader, f Format) (*outline.Outline, error) {
	doc, err := ReadDocument(r, f)
	if err != nil {
		return nil, err
	}
	return doc.Build()
}

// Write encodes o in format f to w.
func Write(o *outline.Outline, w io.Writer, f Format) error {
	if err := errors.ValidateFormat(string(f), names(WritableFormats)...); err != nil {
		return err
	}
	if f == FormatMarkdown {
		return WriteMarkdown(o, w)
	}
	doc, err := FromOutline(o)
	if err != nil {
		return err
	}
	return WriteDocument(doc, w, f)
}

// Import reads the file at path, choosing the format from its extension.
func Import(path string) (*outline.Outline, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer file.Close()
	return Read(file, f)
}

// Export writes o to the file at path, choosing the format from its
// extension. The file is created or truncated.
func Export(o *outline.Outline, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := Write(o, file, f); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "close %s", path)
	}
	return nil
}
