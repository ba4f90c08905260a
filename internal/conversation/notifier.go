// Package conversation provides command parsing and the user-facing
// message channel.
package conversation

import (
	"context"
	"fmt"

	"foodexplorer/internal/domain"
	"foodexplorer/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

// ANSI escape codes for terminal formatting.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
)

// PrintFunc is a function used to print formatted output.
// Matches the signature of both fmt.Printf and display.UI.Printf.
type PrintFunc func(format string, a ...interface{})

// CLINotifier writes user-facing messages to the terminal with ANSI
// formatting: green for success, yellow for warnings, bold red for
// errors.
type CLINotifier struct {
	log     *logger.Logger
	printFn PrintFunc
}

// NewCLINotifier creates a terminal notifier.
// If printFn is nil, fmt.Printf is used.
func NewCLINotifier(log *logger.Logger, printFn PrintFunc) *CLINotifier {
	if printFn == nil {
		printFn = func(format string, a ...interface{}) {
			fmt.Printf(format+"\n", a...)
		}
	}
	return &CLINotifier{log: log, printFn: printFn}
}

// Success prints a success acknowledgment.
func (n *CLINotifier) Success(ctx context.Context, message string) {
	n.log.Debug("notify success: %s", message)
	n.printFn("%s%s%s", green, message, reset)
}

// Warn prints a validation or bounds warning.
func (n *CLINotifier) Warn(ctx context.Context, message string) {
	n.log.Debug("notify warn: %s", message)
	n.printFn("%s%s%s", yellow, message, reset)
}

// Error prints a failure message in bold red.
func (n *CLINotifier) Error(ctx context.Context, message string) {
	n.log.Debug("notify error: %s", message)
	n.printFn("%s%s%s%s", red, bold, message, reset)
}
