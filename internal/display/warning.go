package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	bracketColor = color.RGB(120, 120, 120)
	errorMark    = color.RGB(200, 0, 0).Add(color.Bold)
	errorText    = color.RGB(200, 0, 0)
	warnMark     = color.RGB(255, 200, 0).Add(color.Bold)
	warnText     = color.RGB(190, 140, 30)
)

// Error writes a fatal error line: "[ ! ] message".
func Error(out io.Writer, message string) {
	writeMarked(out, errorMark, errorText, message)
}

// Warn writes a warning line: "[ ! ] message".
func Warn(out io.Writer, message string) {
	writeMarked(out, warnMark, warnText, message)
}

func writeMarked(out io.Writer, mark, text *color.Color, message string) {
	fmt.Fprintf(out, "%s %s %s %s\n",
		bracketColor.Sprint("["),
		mark.Sprint("!"),
		bracketColor.Sprint("]"),
		text.Sprint(message),
	)
}
