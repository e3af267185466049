package main

import "fmt"

const (
	ansiBlue   = "\033[0;34m"
	ansiGreen  = "\033[0;32m"
	ansiRed    = "\033[0;31m"
	ansiYellow = "\033[1;33m"
	ansiReset  = "\033[0m"
)

func statusf(color, glyph, format string, a ...interface{}) {
	fmt.Printf(color+glyph+" "+format+ansiReset+"\n", a...)
}

func PrintInfo(format string, a ...interface{}) {
	statusf(ansiBlue, "ℹ", format, a...)
}

func PrintSuccess(format string, a ...interface{}) {
	statusf(ansiGreen, "✓", format, a...)
}

func PrintWarning(format string, a ...interface{}) {
	statusf(ansiYellow, "⚠", format, a...)
}

func PrintError(format string, a ...interface{}) {
	statusf(ansiRed, "✗", format, a...)
}

func PrintHeader(title string) {
	fmt.Printf("\n"+ansiYellow+"=== %s ==="+ansiReset+"\n", title)
}
