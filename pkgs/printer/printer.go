// Package printer writes user facing messages, as opposed to log lines, to
// the terminal.
package printer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jaryaman/gpgedit/pkgs/styles"
)

type ctxkey string

const writerKey = ctxkey("writerKey")

// WithWriter sets the writer printers obtained through Ctx write to.
func WithWriter(ctx context.Context, writer io.Writer) context.Context {
	return context.WithValue(ctx, writerKey, writer)
}

// GetWriter returns the writer stored by WithWriter.
func GetWriter(ctx context.Context) (io.Writer, bool) {
	w, ok := ctx.Value(writerKey).(io.Writer)
	return w, ok
}

// Hinter is implemented by errors that carry advice for the user on top of
// their message.
type Hinter interface {
	Hint() string
}

type Printer struct {
	writer io.Writer
	base   styles.RenderFunc
	light  styles.RenderFunc
}

func New(w io.Writer) *Printer {
	return &Printer{
		writer: w,
		base:   styles.Bold,
		light:  styles.Subtle,
	}
}

// Ctx returns a copy of the printer writing to the writer stored on ctx, if
// any.
func (p *Printer) Ctx(ctx context.Context) *Printer {
	w, ok := GetWriter(ctx)
	if !ok {
		return p
	}

	cp := *p
	cp.writer = w
	return &cp
}

func (p *Printer) println(s string) {
	_, _ = fmt.Fprintln(p.writer, s)
}

func (p *Printer) LineBreak() {
	p.println("")
}

// Success prints a check mark followed by msg.
func (p *Printer) Success(msg string) {
	p.println(styles.Success(styles.Check) + " " + p.base(msg))
}

// Notice prints an informational line that is not a failure.
func (p *Printer) Notice(msg string) {
	p.println(styles.Subtle(styles.Dot) + " " + msg)
}

// Warning prints msg highlighted as something the user should act on.
func (p *Printer) Warning(msg string) {
	p.println(styles.Warning(styles.Bang + " " + msg))
}

// FatalError prints err in a box. Errors implementing Hinter anywhere in the
// chain get their hint printed below the message.
func (p *Printer) FatalError(err error) {
	msg := err.Error()

	var h Hinter
	if errors.As(err, &h) {
		if hint := strings.TrimSpace(h.Hint()); hint != "" {
			msg += "\n" + hint
		}
	}

	p.println(styles.ErrorBox("Error", msg))
}
