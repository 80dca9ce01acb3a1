package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/convkit/convkit/internal/defs"
)

// Format is a serialization format for the configuration record.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// ValidFormats returns all supported formats.
func ValidFormats() []Format {
	return []Format{FormatYAML, FormatTOML, FormatJSON}
}

// ParseFormat converts a string into a Format.
// Returns ErrUnsupportedFormat for unknown values.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatYAML, FormatTOML, FormatJSON:
		return Format(s), nil
	case "":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w (got: %q)", ErrUnsupportedFormat, s)
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Encode serializes a record in the given format.
func Encode(rec *Record, format Format) ([]byte, error) {
	rec.Normalize()

	switch format {
	case FormatYAML:
		return yaml.Marshal(rec)
	case FormatTOML:
		return toml.Marshal(rec)
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rec); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w (got: %q)", ErrUnsupportedFormat, format)
}

// Decode parses a record from data in the given format.
func Decode(data []byte, format Format) (*Record, error) {
	rec := &Record{}
	var err error

	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, rec)
	case FormatTOML:
		err = toml.Unmarshal(data, rec)
	case FormatJSON:
		err = json.Unmarshal(data, rec)
	default:
		return nil, fmt.Errorf("%w (got: %q)", ErrUnsupportedFormat, format)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	rec.Normalize()
	return rec, nil
}

// RecordPath returns the well-known record path inside projectRoot for
// the given format.
func RecordPath(projectRoot string, format Format) string {
	return filepath.Join(projectRoot, defs.RecordBasename+format.Ext())
}

// WriteRecord serializes the record and writes it to the well-known path
// in projectRoot, overwriting any pre-existing file at that path.
func WriteRecord(rec *Record, projectRoot string, format Format) (string, error) {
	data, err := Encode(rec, format)
	if err != nil {
		return "", err
	}

	path := RecordPath(projectRoot, format)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write record %q: %w", path, err)
	}
	return path, nil
}

// ReadRecord reads and parses the record at the well-known path in
// projectRoot for the given format.
func ReadRecord(projectRoot string, format Format) (*Record, error) {
	path := RecordPath(projectRoot, format)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, path)
		}
		return nil, fmt.Errorf("read record %q: %w", path, err)
	}
	return Decode(data, format)
}

// FindRecord searches projectRoot for a record in any supported format,
// in format preference order (yaml, toml, json). Returns the parsed
// record and the format it was found in.
func FindRecord(projectRoot string) (*Record, Format, error) {
	for _, format := range ValidFormats() {
		rec, err := ReadRecord(projectRoot, format)
		if err == nil {
			return rec, format, nil
		}
		if !errors.Is(err, ErrRecordNotFound) {
			return nil, format, err
		}
	}
	return nil, "", ErrRecordNotFound
}
