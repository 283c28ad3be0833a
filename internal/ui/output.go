// Package ui provides colored terminal output for the CLI.
package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const headerWidth = 60

// center left-pads text so it sits in the middle of width. Text wider
// than width is returned unchanged.
func center(text string, width int) string {
	if len(text) >= width {
		return text
	}
	return strings.Repeat(" ", (width-len(text))/2) + text
}

// Header prints a banner with the given title.
func Header(title string) {
	line := strings.Repeat("=", headerWidth)
	c := color.New(color.FgCyan, color.Bold)
	c.Println(line)
	c.Println(center(title, headerWidth))
	c.Println(line)
}

// Step prints a numbered progress step.
func Step(n, total int, msg string) {
	color.New(color.FgBlue).Printf("[%d/%d] ", n, total)
	fmt.Println(msg)
}

// Success prints a green success message.
func Success(msg string) {
	color.New(color.FgGreen).Printf("✓ %s\n", msg)
}

// Info prints a neutral informational message.
func Info(msg string) {
	fmt.Printf("  %s\n", msg)
}

// Warning prints a yellow warning message.
func Warning(msg string) {
	color.New(color.FgYellow).Printf("⚠ %s\n", msg)
}

// Error prints a red error message.
func Error(msg string) {
	color.New(color.FgRed).Printf("✗ %s\n", msg)
}
