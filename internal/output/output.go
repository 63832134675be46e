package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Printer handles formatted output to a writer.
// Results go to the main writer; diagnostics, warnings and prompts go to the
// error writer so that stdout stays pipeable.
type Printer struct {
	w      io.Writer
	errW   io.Writer
	json   bool
	isTTY  bool
	styles *Styles
}

// Styles holds lipgloss styles for human-readable output.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Bold    lipgloss.Style
	Dim     lipgloss.Style
	Key     lipgloss.Style
	Bump    map[string]lipgloss.Style
}

func newStyles(color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &Styles{
			Error: plain, Success: plain, Warning: plain,
			Bold: plain, Dim: plain, Key: plain,
			Bump: map[string]lipgloss.Style{},
		}
	}
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Bold:    lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Bump: map[string]lipgloss.Style{
			"major": lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			"minor": lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			"patch": lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		},
	}
}

// NewPrinter creates a new Printer.
// Colors are enabled only when isTTY is true and NO_COLOR is unset.
func NewPrinter(writer io.Writer, jsonMode bool, isTTY bool) *Printer {
	return &Printer{
		w:      writer,
		errW:   writer,
		json:   jsonMode,
		isTTY:  isTTY,
		styles: newStyles(isTTY && !NoColor()),
	}
}

// Discard returns a printer that drops everything. Used in hook mode, where
// git owns the terminal and diagnostics must stay silent.
func Discard() *Printer {
	return NewPrinter(io.Discard, false, false)
}

// WithStderr sets a separate writer for errors, warnings and prompts in
// human mode. Returns the printer for chaining.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

// IsJSON returns true if the printer is in JSON mode.
func (p *Printer) IsJSON() bool {
	return p.json
}

// IsTTY returns true if the printer output is a TTY.
func (p *Printer) IsTTY() bool {
	return p.isTTY
}

// Success outputs a success result.
// In JSON mode the data is encoded as-is. In human mode a "message" key is
// printed on its own; otherwise keys are printed one per line.
func (p *Printer) Success(data map[string]any) error {
	if p.json {
		return p.WriteJSON(data)
	}
	if msg, ok := data["message"].(string); ok {
		mustWrite(fmt.Fprintln(p.w, p.styles.Success.Render(msg)))
		return nil
	}
	for key, val := range data {
		mustWrite(fmt.Fprintf(p.w, "%s: %v\n", p.styles.Bold.Render(key), val))
	}
	return nil
}

// Error outputs an error.
// JSON mode writes {"error": "...", "code": N} to the main writer.
func (p *Printer) Error(err error) {
	exitErr := &ExitError{}
	if !errors.As(err, &exitErr) {
		exitErr = &ExitError{Code: ExitUserError, Message: err.Error()}
	}

	if p.json {
		mustWrite(p.w.Write(ErrorJSON(exitErr.Message, exitErr.Code)))
		mustWrite(fmt.Fprintln(p.w))
		return
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Error.Render("Error"), exitErr.Message))
}

// Warn outputs a warning message.
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.json {
		_ = p.WriteJSON(map[string]any{"warning": msg})
		return
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Warning.Render("Warning"), msg))
}

// Stderr writes a diagnostic line to the error writer. No-op in JSON mode.
func (p *Printer) Stderr(format string, args ...any) {
	if p.json {
		return
	}
	mustWrite(fmt.Fprintf(p.errW, format, args...))
}

// Prompt writes an interactive question to the error writer without a
// trailing newline. Prompts are never JSON encoded.
func (p *Printer) Prompt(question string) {
	mustWrite(fmt.Fprint(p.errW, p.styles.Bold.Render(question)))
}

// Print formats and writes to the output without a newline.
func (p *Printer) Print(format string, args ...any) {
	mustWrite(fmt.Fprintf(p.w, format, args...))
}

// Println writes a line to the output.
func (p *Printer) Println(args ...any) {
	mustWrite(fmt.Fprintln(p.w, args...))
}

// KeyValue renders "Key: Value".
func (p *Printer) KeyValue(key string, value string) {
	mustWrite(fmt.Fprintf(p.w, "%s %s\n", p.styles.Key.Render(key+":"), value))
}

// Bump renders a semver bump level with its color.
func (p *Printer) Bump(level string) string {
	style, ok := p.styles.Bump[level]
	if !ok {
		return level
	}
	return style.Render(level)
}

// Dim renders text in the muted style.
func (p *Printer) Dim(text string) string {
	return p.styles.Dim.Render(text)
}

// WriteJSON encodes any data as indented JSON and writes it.
func (p *Printer) WriteJSON(data any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorJSON returns JSON-formatted error bytes: {"error": "message", "code": N}.
func ErrorJSON(message string, code int) []byte {
	result, _ := json.Marshal(map[string]any{
		"error": message,
		"code":  code,
	})
	return result
}

// mustWrite panics if a write operation fails. Writes go to stdout, stderr
// or buffers, none of which are expected to fail.
func mustWrite(_ int, err error) {
	if err != nil {
		panic(fmt.Sprintf("write failed: %v", err))
	}
}

// Table renders rows with space-padded columns. Padding is computed on the
// raw cell text so styled cells (see Cell) still line up.
func (p *Printer) Table(rows [][]Cell) {
	widths := map[int]int{}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell.Text))
		}
	}
	for _, row := range rows {
		var line strings.Builder
		for i, cell := range row {
			if i > 0 {
				line.WriteString("  ")
			}
			rendered := cell.Text
			if cell.Render != nil {
				rendered = cell.Render(cell.Text)
			}
			line.WriteString(rendered)
			if i < len(row)-1 {
				line.WriteString(strings.Repeat(" ", widths[i]-len(cell.Text)))
			}
		}
		mustWrite(fmt.Fprintln(p.w, line.String()))
	}
}

// Cell is a table cell with optional styling.
type Cell struct {
	Text   string
	Render func(string) string
}
