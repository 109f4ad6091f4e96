package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/squire-lang/squire/squire"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "repl":
		return replCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	root := fs.String("root", "", "directory relative scroll paths resolve against")
	verbose := fs.Bool("v", false, "log scroll failures to stderr")
	checkOnly := fs.Bool("check", false, "only parse the script without executing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("squire run: script path required")
	}
	absScriptPath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(absScriptPath)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	rootDir, err := resolveRoot(absScriptPath, *root)
	if err != nil {
		return err
	}

	engine, err := squire.NewEngine(squire.Config{Root: rootDir, Logger: newLogger(*verbose)})
	if err != nil {
		return err
	}
	session := squire.NewSession(engine)
	defer session.Reset()

	if *checkOnly {
		if err := session.Check(string(input)); err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		return nil
	}
	if err := session.Run(context.Background(), string(input), os.Stdout); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	return nil
}

func replCommand(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	root := fs.String("root", "", "directory relative scroll paths resolve against")
	if err := fs.Parse(args); err != nil {
		return err
	}
	engine, err := squire.NewEngine(squire.Config{Root: *root})
	if err != nil {
		return err
	}
	return runREPL(engine)
}

// resolveRoot picks the directory scroll paths resolve against: the -root
// flag when given, otherwise the directory holding the script.
func resolveRoot(scriptPath, root string) (string, error) {
	if root == "" {
		return filepath.Dir(scriptPath), nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("access root %q: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("root %q is not a directory", abs)
	}
	return abs, nil
}

func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s run [flags] <script>\n", prog)
	fmt.Fprintf(os.Stderr, "       %s repl [-root dir]\n", prog)
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  -root <dir>")
	fmt.Fprintln(os.Stderr, "    directory relative scroll paths resolve against (default: script directory)")
	fmt.Fprintln(os.Stderr, "  -v")
	fmt.Fprintln(os.Stderr, "    log scroll failures to stderr")
	fmt.Fprintln(os.Stderr, "  -check")
	fmt.Fprintln(os.Stderr, "    only parse the script without executing")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
