package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// style is an ANSI SGR sequence.
type style string

const (
	styleReset style = "\033[0m"
	styleRed   style = "\033[31m"
	styleCyan  style = "\033[36m"
	styleGray  style = "\033[90m"
	styleBold  style = "\033[1m"
)

// colorEnabled controls whether ANSI colors are used.
var colorEnabled = true

// DisableColors disables ANSI color output.
func DisableColors() {
	colorEnabled = false
}

// EnableColors enables ANSI color output.
func EnableColors() {
	colorEnabled = true
}

// paint applies styles to text when colors are enabled.
func paint(text string, styles ...style) string {
	if !colorEnabled || len(styles) == 0 {
		return text
	}
	var b strings.Builder
	for _, s := range styles {
		b.WriteString(string(s))
	}
	b.WriteString(text)
	b.WriteString(string(styleReset))
	return b.String()
}

// formatWidth is the wrap width for detail text.
const formatWidth = 70

// Format renders the error for a terminal:
//
//	ERROR Q060 [config]: Invalid configuration file
//
//	  quasar.yaml could not be read or parsed.
//
//	  Cause: open quasar.yaml: permission denied
//	  Hint:  Check file permissions
func (e *QuasarError) Format() string {
	var b strings.Builder

	header := "ERROR"
	if e.Code != "" {
		header += " " + e.Code
	}
	if e.Category != "" {
		header += " [" + string(e.Category) + "]"
	}
	fmt.Fprintf(&b, "\n%s %s\n\n", paint(header+":", styleRed, styleBold), paint(e.Message, styleBold))

	if lines := wrapText(e.Detail, formatWidth); len(lines) > 0 {
		for _, line := range lines {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}

	labelled := []struct {
		label string
		style style
		text  string
	}{
		{"Cause:", styleGray, causeText(e.Wrapped)},
		{"Hint: ", styleCyan, e.Suggestion},
	}
	wrote := false
	for _, l := range labelled {
		if l.text == "" {
			continue
		}
		fmt.Fprintf(&b, "  %s %s\n", paint(l.label, l.style), l.text)
		wrote = true
	}
	if wrote {
		b.WriteString("\n")
	}

	return b.String()
}

func causeText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// FormatCompact returns the single-line form, identical to Error.
func (e *QuasarError) FormatCompact() string {
	return e.Error()
}

// wrapText splits text into lines of at most width runes where word
// boundaries allow. A single word longer than width gets its own line.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := []string{words[0]}
	for _, word := range words[1:] {
		last := &lines[len(lines)-1]
		if len(*last)+1+len(word) > width {
			lines = append(lines, word)
			continue
		}
		*last += " " + word
	}
	return lines
}

// Fprint writes err to w, using Format for quasar errors.
func Fprint(w io.Writer, err error) {
	var qe *QuasarError
	if errors.As(err, &qe) {
		io.WriteString(w, qe.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", paint("ERROR:", styleRed, styleBold), err.Error())
}
