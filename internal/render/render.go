// Package render prints API results for the command line.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/bigstock-client/pkg/bigstock"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Renderer writes results to Out in the chosen format. Raw payloads are also
// saved to RawOut when it is set.
type Renderer struct {
	Out    io.Writer
	Format string
	RawOut string
}

// New validates the format and returns a renderer.
func New(out io.Writer, format, rawOut string) (*Renderer, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "":
		format = FormatJSON
	case FormatJSON, FormatYAML:
	case "yml":
		format = FormatYAML
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	if out == nil {
		out = os.Stdout
	}
	return &Renderer{Out: out, Format: format, RawOut: strings.TrimSpace(rawOut)}, nil
}

// Result prints a normalized API result.
func (r *Renderer) Result(res bigstock.Result) error {
	switch res.Kind {
	case bigstock.KindDecoded:
		return r.Value(res.Decoded)
	case bigstock.KindError:
		return r.Value(res.Error)
	case bigstock.KindRaw:
		return r.raw(res)
	default:
		return fmt.Errorf("cannot render %s result", res.Kind)
	}
}

// Value prints any value with the configured encoder.
func (r *Renderer) Value(v any) error {
	switch r.Format {
	case FormatYAML:
		enc := yaml.NewEncoder(r.Out)
		enc.SetIndent(2)
		if err := enc.Encode(plain(v)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(r.Out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

// Line prints a single line of text.
func (r *Renderer) Line(s string) error {
	_, err := fmt.Fprintln(r.Out, s)
	return err
}

func (r *Renderer) raw(res bigstock.Result) error {
	contentType := ""
	if res.Response != nil {
		contentType = res.Response.ContentType()
	}

	if r.RawOut != "" {
		if err := os.WriteFile(r.RawOut, res.Raw, 0o644); err != nil {
			return fmt.Errorf("write raw payload: %w", err)
		}
		return r.Line(fmt.Sprintf("wrote %d bytes (%s) to %s", len(res.Raw), displayType(contentType), r.RawOut))
	}

	switch {
	case strings.Contains(contentType, "html"):
		sum, err := summarizeHTML(res.Raw)
		if err != nil {
			return err
		}
		return r.Value(sum)
	case strings.HasPrefix(contentType, "text/"):
		_, err := r.Out.Write(res.Raw)
		if err == nil && len(res.Raw) > 0 && res.Raw[len(res.Raw)-1] != '\n' {
			_, err = io.WriteString(r.Out, "\n")
		}
		return err
	default:
		return r.Line(fmt.Sprintf("%d bytes (%s); use --raw-out to save", len(res.Raw), displayType(contentType)))
	}
}

func displayType(contentType string) string {
	if contentType == "" {
		return "unknown type"
	}
	return contentType
}

// plain turns json.Number leaves into Go numbers so YAML prints them unquoted.
func plain(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = plain(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}
