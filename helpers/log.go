package helpers

import (
	"fmt"

	"github.com/fatih/color"
)

// One-line tagged terminal reporting. Every provisioning step and every
// preflight check reports through these so the output stays greppable.

func Info(format string, args ...interface{}) {
	fmt.Printf(" %s %s\n", color.CyanString("▶"), fmt.Sprintf(format, args...))
}

func Success(format string, args ...interface{}) {
	fmt.Printf(" %s %s\n", color.GreenString("✓"), fmt.Sprintf(format, args...))
}

func Warn(format string, args ...interface{}) {
	fmt.Printf(" %s %s\n", color.YellowString("!"), fmt.Sprintf(format, args...))
}

func Fail(format string, args ...interface{}) {
	fmt.Printf(" %s %s\n", color.RedString("✗"), fmt.Sprintf(format, args...))
}
