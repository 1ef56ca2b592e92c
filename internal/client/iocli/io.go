package iocli

import "io"

//go:generate moq -out io_mock.go . IO

// IO - ввод/вывод команд CLI
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	Confirm(prompt string) (bool, error)
	IsInteractive() bool
	Out() io.Writer
}
