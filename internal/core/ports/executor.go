package ports

import (
	"context"
	"io"
)

// Command describes an external process invocation.
type Command struct {
	// Name is the executable, resolved through PATH.
	Name string
	// Args are passed to the executable.
	Args []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Stdout and Stderr, when set, receive a copy of the process output.
	Stdout io.Writer
	Stderr io.Writer
}

// Executor defines the interface for running external commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes the command and returns an error if it exits unsuccessfully.
	Run(ctx context.Context, cmd Command) error

	// Output executes the command and returns its standard output.
	Output(ctx context.Context, cmd Command) (string, error)
}
