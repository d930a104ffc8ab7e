// Package inspect renders decoded wire values and encoded payloads for the
// terminal.
package inspect

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"tgwire/pkg/encode"
	"tgwire/pkg/types"
	"tgwire/pkg/wireerr"

	"github.com/charmbracelet/lipgloss"
)

const indentUnit = "  "

// Renderer draws generic JSON trees with a fixed theme.
type Renderer struct {
	theme theme
}

// New returns a renderer using the default theme.
func New() *Renderer {
	return &Renderer{theme: defaultTheme()}
}

// Tree renders a generic JSON tree (maps, slices, scalars) under a title.
func (r *Renderer) Tree(title, meta string, tree any) string {
	var b strings.Builder
	r.writeNode(&b, 0, "", tree)

	return r.frame(title, meta, strings.TrimRight(b.String(), "\n"))
}

// Update renders a decoded update, titled by its kind and id.
func (r *Renderer) Update(enc *encode.Encoder, update types.Update) (string, error) {
	tree, err := enc.Value(update)
	if err != nil {
		return "", fmt.Errorf("encode update: %w", err)
	}

	kind := string(update.Kind())
	if kind == "" {
		kind = "empty"
	}

	return r.Tree("update "+update.UpdateID.String(), kind, tree), nil
}

// Payload renders the wire keys of an encoded operation. Attachments show the
// file name they carry instead of their content.
func (r *Renderer) Payload(methodName string, payload encode.Payload) string {
	var b strings.Builder
	for _, key := range payload.Keys() {
		b.WriteString(r.theme.key.Render(key))
		if upload, ok := payload.Files[key]; ok {
			b.WriteString(" <- ")
			b.WriteString(r.theme.attachment.Render(upload.Name()))
		} else {
			b.WriteString(" = ")
			b.WriteString(r.theme.text.Render(payload.Fields[key]))
		}
		b.WriteByte('\n')
	}

	return r.frame(methodName, payload.Shape.String(), strings.TrimRight(b.String(), "\n"))
}

// Error renders a failure. Categorized wire errors show their category and
// path on separate lines.
func (r *Renderer) Error(err error) string {
	if err == nil {
		return ""
	}

	lines := []string{err.Error()}
	var wireErr *wireerr.Error
	if errors.As(err, &wireErr) {
		lines = append(lines, "category: "+string(wireErr.Category))
		if path := wireErr.PathString(); path != "" {
			lines = append(lines, "path: "+path)
		}
	}

	title := r.theme.errorTitle.Render("error")
	return lipgloss.JoinVertical(lipgloss.Left, title, r.theme.errorBox.Render(strings.Join(lines, "\n")))
}

func (r *Renderer) frame(title, meta, body string) string {
	header := r.theme.title.Render(title)
	if meta != "" {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, " ", r.theme.titleMeta.Render(meta))
	}
	if body == "" {
		return header
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, r.theme.box.Render(body))
}

func (r *Renderer) writeNode(b *strings.Builder, depth int, label string, node any) {
	indent := strings.Repeat(indentUnit, depth)

	switch typed := node.(type) {
	case map[string]any:
		if label != "" {
			b.WriteString(indent + label + "\n")
			depth++
		}
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			r.writeNode(b, depth, r.theme.key.Render(key), typed[key])
		}
	case []any:
		if label != "" {
			b.WriteString(indent + label + "\n")
			depth++
		}
		for i, item := range typed {
			r.writeNode(b, depth, r.theme.index.Render("["+strconv.Itoa(i)+"]"), item)
		}
	default:
		text := r.scalar(typed)
		if label == "" {
			b.WriteString(indent + text + "\n")
			return
		}
		b.WriteString(indent + label + ": " + text + "\n")
	}
}

func (r *Renderer) scalar(node any) string {
	switch typed := node.(type) {
	case nil:
		return r.theme.literal.Render("null")
	case string:
		return r.theme.text.Render(strconv.Quote(typed))
	case bool:
		return r.theme.literal.Render(strconv.FormatBool(typed))
	case json.Number:
		return r.theme.number.Render(typed.String())
	case int, int64, float64:
		return r.theme.number.Render(fmt.Sprint(typed))
	default:
		return fmt.Sprint(typed)
	}
}
