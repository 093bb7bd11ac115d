package logging

import "github.com/fatih/color"

// Level colours. fatih/color turns these into no-ops when the output is not a
// terminal, or when NO_COLOR is set.
var (
	colorError  = color.New(color.FgRed, color.Bold)
	colorWarn   = color.New(color.FgRed)
	colorInfo   = color.New(color.Reset)
	colorDebug  = color.New(color.FgGreen)
	colorTrace  = color.New(color.FgYellow)
	colorHeader = color.New(color.FgWhite)
)
