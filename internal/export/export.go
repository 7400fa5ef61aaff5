// Package export writes a widget tree as YAML or JSON. Keys appear in a
// fixed order: type first, then the widget's own fields, then layout and
// children for containers.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/wdl/internal/wdl"
)

// Format is an output encoding.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
)

// ParseFormat accepts yaml, yml or json in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return YAML, nil
	case "json":
		return JSON, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want yaml or json)", s)
	}
}

// Document is the exported shape of a window.
type Document struct {
	Type     string   `json:"type" yaml:"type"`
	Title    string   `json:"title" yaml:"title"`
	Width    int      `json:"width" yaml:"width"`
	Height   int      `json:"height" yaml:"height"`
	Layout   Layout   `json:"layout" yaml:"layout"`
	Children []Widget `json:"children" yaml:"children"`
}

// Layout is the exported shape of a layout. Grid fields are nil for flow.
type Layout struct {
	Type string `json:"type" yaml:"type"`
	Rows *int   `json:"rows,omitempty" yaml:"rows,omitempty"`
	Cols *int   `json:"cols,omitempty" yaml:"cols,omitempty"`
	Hgap *int   `json:"hgap,omitempty" yaml:"hgap,omitempty"`
	Vgap *int   `json:"vgap,omitempty" yaml:"vgap,omitempty"`
}

// Widget is the exported shape of any child. Only the fields of its Type
// are set.
type Widget struct {
	Type     string   `json:"type" yaml:"type"`
	Label    *string  `json:"label,omitempty" yaml:"label,omitempty"`
	Text     *string  `json:"text,omitempty" yaml:"text,omitempty"`
	Columns  *int     `json:"columns,omitempty" yaml:"columns,omitempty"`
	Options  []string `json:"options,omitempty" yaml:"options,omitempty"`
	Layout   *Layout  `json:"layout,omitempty" yaml:"layout,omitempty"`
	Children []Widget `json:"children,omitempty" yaml:"children,omitempty"`
}

// FromWindow converts a tree into its exported shape.
func FromWindow(w *wdl.Window) Document {
	return Document{
		Type:     "window",
		Title:    w.Title,
		Width:    w.Width,
		Height:   w.Height,
		Layout:   fromLayout(w.Layout),
		Children: fromWidgets(w.Children),
	}
}

func fromLayout(l wdl.Layout) Layout {
	g, ok := l.(wdl.GridLayout)
	if !ok {
		return Layout{Type: "flow"}
	}
	return Layout{Type: "grid", Rows: &g.Rows, Cols: &g.Cols, Hgap: &g.Hgap, Vgap: &g.Vgap}
}

func fromWidgets(ws []wdl.Widget) []Widget {
	out := make([]Widget, 0, len(ws))
	for _, w := range ws {
		out = append(out, fromWidget(w))
	}
	return out
}

func fromWidget(w wdl.Widget) Widget {
	switch w := w.(type) {
	case *wdl.Button:
		return Widget{Type: "button", Label: &w.Label}
	case *wdl.Label:
		return Widget{Type: "label", Text: &w.Text}
	case *wdl.TextField:
		return Widget{Type: "textfield", Columns: &w.Columns}
	case *wdl.RadioGroup:
		return Widget{Type: "group", Options: w.Options}
	case *wdl.Panel:
		l := fromLayout(w.Layout)
		return Widget{Type: "panel", Layout: &l, Children: fromWidgets(w.Children)}
	default:
		panic(fmt.Sprintf("export: unexpected widget %T", w))
	}
}

// Write encodes w to out in format f.
func Write(out io.Writer, w *wdl.Window, f Format) error {
	doc := FromWindow(w)
	switch f {
	case YAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case JSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// Marshal is Write into a byte slice.
func Marshal(w *wdl.Window, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, w, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
