package cliapp

import (
	"github.com/spf13/cobra"

	"github.com/cmdrec/cmdrec/internal/command"
	"github.com/cmdrec/cmdrec/internal/param"
)

// App couples a root cobra command with register-and-rebind declaration:
// each Command call both mounts a CLI subcommand and hands back the
// directly invocable rebound function.
type App struct {
	root *cobra.Command
}

// NewApp creates an application root.
func NewApp(use, short string) *App {
	return &App{
		root: &cobra.Command{Use: use, Short: short},
	}
}

// Command declares a command, registers it on the root, and returns the
// rebound callable. The returned Func carries the back-reference to the
// declaration, so record synthesis on it still reads descriptor defaults.
func (a *App) Command(name string, fn any, specs ...param.Spec) (*command.Func, error) {
	cmd, err := command.New(name, fn, specs...)
	if err != nil {
		return nil, err
	}
	cc, err := Bridge(cmd)
	if err != nil {
		return nil, err
	}
	a.root.AddCommand(cc)
	return command.Rebind(cmd), nil
}

// Root returns the root cobra command, for composition with other CLI code.
func (a *App) Root() *cobra.Command { return a.root }

// Execute runs the CLI.
func (a *App) Execute() error { return a.root.Execute() }
