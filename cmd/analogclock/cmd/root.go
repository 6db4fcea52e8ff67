// Package cmd implements the analogclock CLI commands.
//
// The root command dispatches to subcommands (run, snapshot, init).
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "analogclock",
	Short: "analogclock - an animated analog clock face",
	Long: `analogclock draws a clock face with hour, minute and second hands and
keeps it in sync with the wall clock, writing frames as PNG or SVG.

Use "analogclock <command> --help" for more information about a command.`,
	Usage: "analogclock <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the given arguments.
func Execute(args []string) error {
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	switch args[0] {
	case "-h", "--help", "help":
		printHelp(rootCmd)
		return nil
	case "-v", "--version", "version":
		fmt.Printf("analogclock version %s (built %s)\n", Version, BuildTime)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

func printHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
	fmt.Println()
	fmt.Println("Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Printf("  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -h, --help           Show help for a command")
	fmt.Println("  -v, --version        Print version information")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  analogclock init                      Write a default analogclock.yaml")
	fmt.Println("  analogclock run --out clock.png       Keep clock.png up to date")
	fmt.Println("  analogclock snapshot --time 10:09:30  Render a single frame")
}

func printCommandHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
}

// commonOptions holds flags shared by commands that load a config.
type commonOptions struct {
	configFiles []string
	out         string
	format      string
	fps         int
	debugAddr   string
}

// parseCommonFlag consumes a shared flag at args[i] and returns the index of
// the last argument it used. ok is false when args[i] is not a shared flag.
func parseCommonFlag(args []string, i int, opts *commonOptions) (next int, ok bool, err error) {
	name, value, hasValue := strings.Cut(args[i], "=")
	switch name {
	case "--config", "--out", "--format", "--fps", "--debug-addr":
	default:
		return i, false, nil
	}
	if !hasValue {
		if i+1 >= len(args) {
			return i, true, fmt.Errorf("%s requires a value", name)
		}
		i++
		value = args[i]
	}

	switch name {
	case "--config":
		opts.configFiles = append(opts.configFiles, value)
	case "--out":
		opts.out = value
	case "--format":
		opts.format = value
	case "--debug-addr":
		opts.debugAddr = value
	case "--fps":
		fps, err := strconv.Atoi(value)
		if err != nil || fps <= 0 {
			return i, true, fmt.Errorf("--fps must be a positive integer (got %q)", value)
		}
		opts.fps = fps
	}
	return i, true, nil
}
