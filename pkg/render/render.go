// Package render writes a document node in one of the supported output
// formats.
package render

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	btoml "github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/segmentio/encoding/json"

	"github.com/dzjyyds666/tq/parse/toml"
)

type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// defaultName is the key used for arrays that have no key of their own.
const defaultName = "value"

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTOML, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTOML, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want toml, json or yaml)", s)
	}
}

// Render writes n to w followed by a newline. name is the key an array was
// found under; it becomes the header of an array of tables.
func Render(w io.Writer, n toml.Node, format Format, name string) error {
	switch format {
	case FormatTOML, "":
		return renderTOML(w, n, name)
	case FormatJSON:
		out, err := json.MarshalIndent(plain(n), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", out)
		return err
	case FormatYAML:
		out, err := yaml.Marshal(plain(n))
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func renderTOML(w io.Writer, n toml.Node, name string) error {
	switch v := n.(type) {
	case *toml.Table:
		return btoml.NewEncoder(w).Encode(toml.ToUntyped(v))
	case *toml.Array:
		if name == "" {
			name = defaultName
		}
		if isTableArray(v) {
			return btoml.NewEncoder(w).Encode(map[string]any{name: toml.ToUntyped(v)})
		}
		// A bare array is not a TOML document; encode it as a value and
		// drop the key.
		var buf bytes.Buffer
		if err := btoml.NewEncoder(&buf).Encode(map[string]any{defaultName: toml.ToUntyped(v)}); err != nil {
			return err
		}
		_, err := io.WriteString(w, strings.TrimPrefix(buf.String(), defaultName+" = "))
		return err
	case *toml.Value:
		_, err := fmt.Fprintln(w, v.String())
		return err
	default:
		return fmt.Errorf("cannot render %s", toml.KindOf(n))
	}
}

func isTableArray(a *toml.Array) bool {
	if len(a.Elems) == 0 {
		return false
	}
	for _, e := range a.Elems {
		if _, ok := e.(*toml.Table); !ok {
			return false
		}
	}
	return true
}

// plain converts n into generic values for the JSON and YAML encoders. Dates,
// times and non-finite floats are replaced by their TOML text.
func plain(n toml.Node) any {
	switch v := n.(type) {
	case *toml.Table:
		m := make(map[string]any, len(v.Items))
		for k, child := range v.Items {
			m[k] = plain(child)
		}
		return m
	case *toml.Array:
		out := make([]any, len(v.Elems))
		for i := range v.Elems {
			out[i] = plain(v.Elems[i])
		}
		return out
	case *toml.Value:
		if v.Kind().IsDatetime() {
			return v.String()
		}
		if f, ok := v.V.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return v.String()
		}
		return v.V
	default:
		return nil
	}
}
