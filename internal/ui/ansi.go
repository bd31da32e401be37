package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
)

var (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"

	symCheck = "✔"
	symCross = "✖"
)

var (
	forceColor   bool
	disableColor bool
	profile      = termenv.Ascii
)

// DetectColor inspects w (usually stdout) and the environment. termenv
// honors NO_COLOR and CLICOLOR_FORCE, which is what scripted output wants.
func DetectColor(w io.Writer) {
	f, ok := w.(*os.File)
	if !ok {
		profile = termenv.Ascii
		return
	}
	profile = termenv.NewOutput(f).EnvColorProfile()
}

func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

func colorOn() bool {
	if disableColor {
		return false
	}
	return forceColor || profile != termenv.Ascii
}

// C wraps s in the given escape sequence when colour output is on.
func C(color, s string) string {
	if !colorOn() || color == "" {
		return s
	}
	return color + s + reset
}

func OK(w io.Writer, msg string)   { fmt.Fprintln(w, C(fgGreen, symCheck+" "+msg)) }
func Fail(w io.Writer, msg string) { fmt.Fprintln(w, C(fgRed, symCross+" "+msg)) }
