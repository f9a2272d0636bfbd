// pattern: Functional Core
package cli

import (
	"errors"
	"fmt"
	"io"
)

// ErrUnknownCommand is returned for a subcommand that is not registered.
var ErrUnknownCommand = errors.New("unknown command")

// Command represents a single CLI command with its metadata and handler.
type Command struct {
	Name    string
	Summary string
	Usage   string
	Run     func(args []string) error
}

// App represents the top-level CLI application.
type App struct {
	commands map[string]*Command
	order    []string
	version  string
	help     io.Writer
}

// NewApp creates a new CLI application with the given version. Help text is
// written to help.
func NewApp(version string, help io.Writer) *App {
	return &App{
		commands: make(map[string]*Command),
		version:  version,
		help:     help,
	}
}

// AddCommand registers a command. Help lists commands in registration order.
func (a *App) AddCommand(cmd *Command) {
	if _, ok := a.commands[cmd.Name]; !ok {
		a.order = append(a.order, cmd.Name)
	}
	a.commands[cmd.Name] = cmd
}

// Version returns the version the app was built with.
func (a *App) Version() string {
	return a.version
}

// Execute dispatches the CLI arguments to the appropriate command.
// Returns true if the picker should be launched, false otherwise.
func (a *App) Execute(args []string) (bool, error) {
	// No args: launch the picker
	if len(args) == 0 {
		return true, nil
	}

	name := args[0]
	if name == "help" || name == "--help" || name == "-h" {
		a.PrintHelp(a.help)
		return false, nil
	}

	cmd, ok := a.commands[name]
	if !ok {
		a.PrintHelp(a.help)
		return false, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	for _, arg := range args[1:] {
		if arg == "--" {
			break
		}
		if arg == "--help" || arg == "-h" {
			fmt.Fprintf(a.help, "%s\n", cmd.Usage)
			return false, nil
		}
	}
	return false, cmd.Run(args[1:])
}

// PrintHelp prints the top-level help text.
func (a *App) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage: prj [options] [command]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	for _, name := range a.order {
		fmt.Fprintf(w, "  %-10s %s\n", name, a.commands[name].Summary)
	}
	fmt.Fprintf(w, "  %-10s %s\n", "(none)", "Fuzzy-pick a project and print its path")
	fmt.Fprintf(w, "\nUse \"prj <command> --help\" for command details.\n\n")
	fmt.Fprintf(w, "Options:\n")
}
