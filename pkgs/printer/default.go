package printer

import (
	"context"
	"os"
)

var ConsolePrinter = New(os.Stdout)

func Ctx(ctx context.Context) *Printer {
	return ConsolePrinter.Ctx(ctx)
}

func FatalError(err error) {
	ConsolePrinter.FatalError(err)
}

func LineBreak() {
	ConsolePrinter.LineBreak()
}
