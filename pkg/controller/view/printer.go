package view

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes CLI output with a small fixed palette
type Printer struct {
	w io.Writer

	title   *color.Color
	success *color.Color
	warning *color.Color
	failure *color.Color
	faint   *color.Color
}

// NewPrinter creates a printer. Colors are disabled when noColor is set,
// regardless of terminal detection.
func NewPrinter(w io.Writer, noColor bool) *Printer {
	p := &Printer{
		w:       w,
		title:   color.New(color.FgCyan, color.Bold),
		success: color.New(color.FgGreen),
		warning: color.New(color.FgYellow),
		failure: color.New(color.FgRed, color.Bold),
		faint:   color.New(color.Faint),
	}
	if noColor {
		for _, c := range []*color.Color{p.title, p.success, p.warning, p.failure, p.faint} {
			c.DisableColor()
		}
	}
	return p
}

func (p *Printer) Title(format string, args ...any) {
	_, _ = p.title.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) Success(format string, args ...any) {
	_, _ = p.success.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) Warning(format string, args ...any) {
	_, _ = p.warning.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) Error(format string, args ...any) {
	_, _ = p.failure.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) Faint(format string, args ...any) {
	_, _ = p.faint.Fprintf(p.w, format+"\n", args...)
}

// Block writes pre-rendered text as is
func (p *Printer) Block(text string) {
	if text == "" {
		return
	}
	_, _ = fmt.Fprintln(p.w, text)
}

// Messages prints the error, warning and notice of a console snapshot
func (p *Printer) Messages(errMsg, warning, notice string) {
	if errMsg != "" {
		p.Error("%s", errMsg)
	}
	if warning != "" {
		p.Warning("%s", warning)
	}
	if notice != "" {
		p.Success("%s", notice)
	}
}
