// Package output serializes extraction results.
package output

import (
	"bytes"
	stdjson "encoding/json"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("invalid format: %s (must be json or yaml)", s)
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// Marshal encodes v in the given format.
func Marshal(v interface{}, format Format, pretty bool) ([]byte, error) {
	switch format {
	case FormatYAML:
		return ToYAML(v)
	case FormatJSON, "":
		return ToJSON(v, pretty)
	}
	return nil, fmt.Errorf("invalid format: %s", format)
}

// ToJSON encodes v as JSON, indented by two spaces when pretty is set.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if !pretty {
		return data, nil
	}

	var buf bytes.Buffer
	if err := stdjson.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToYAML encodes v as YAML with a two space indent.
func ToYAML(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
