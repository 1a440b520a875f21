// Package document loads schema documents from disk. The format is chosen
// from the file extension: .json, .yaml/.yml or .cbor. Every format is read
// through koanf so the resulting schema.Document is independent of the
// source encoding.
package document

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/perfmap/core/schema"
)

// Format identifies a document encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	CBOR Format = "cbor"
)

// ErrUnsupportedFormat indicates an extension or format without a parser.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// FormatFromPath selects the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".cbor":
		return CBOR, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Parser returns the koanf parser for f.
func Parser(f Format) (koanf.Parser, error) {
	switch f {
	case JSON:
		return json.Parser(), nil
	case YAML:
		return yaml.Parser(), nil
	case CBOR:
		return NewCBORParser()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Load reads and parses the document at path.
func Load(path string) (schema.Document, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return schema.Document{}, err
	}
	p, err := Parser(f)
	if err != nil {
		return schema.Document{}, err
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), p); err != nil {
		return schema.Document{}, fmt.Errorf("load %s: %w", path, err)
	}
	return schema.NewDocument(k.Raw()), nil
}

// Parse decodes an in-memory document.
func Parse(data []byte, f Format) (schema.Document, error) {
	p, err := Parser(f)
	if err != nil {
		return schema.Document{}, err
	}
	m, err := p.Unmarshal(data)
	if err != nil {
		return schema.Document{}, fmt.Errorf("parse %s: %w", f, err)
	}
	return schema.NewDocument(m), nil
}

// Marshal encodes doc in format f.
func Marshal(doc schema.Document, f Format) ([]byte, error) {
	p, err := Parser(f)
	if err != nil {
		return nil, err
	}
	return p.Marshal(doc.Raw())
}
