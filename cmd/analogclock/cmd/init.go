package cmd

import (
	"fmt"

	"github.com/go-drift/analogclock/cmd/analogclock/internal/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "init",
		Short: "Write a default analogclock.yaml",
		Long: `Write a configuration file populated with the default settings.

The file is written to analogclock.yaml unless a path is given. Existing
files are left untouched unless --force is passed.

Examples:
  analogclock init
  analogclock init ./deploy/clock.yaml --force`,
		Usage: "analogclock init [path] [--force]",
		Run:   runInit,
	})
}

func runInit(args []string) error {
	path := config.DefaultFile
	force := false
	pathSet := false
	for _, arg := range args {
		switch {
		case arg == "--force" || arg == "-f":
			force = true
		case !pathSet && len(arg) > 0 && arg[0] != '-':
			path = arg
			pathSet = true
		default:
			return fmt.Errorf("unexpected argument %q\n\nUsage: analogclock init [path] [--force]", arg)
		}
	}

	if err := config.Write(path, config.Default(), force); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
