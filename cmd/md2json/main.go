package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-md2json/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Commands recognized as the first argument.
var commands = []string{"render", "styles", "version", "help"}

func main() {
	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if wantsVerbose(os.Args) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) {
		if !looksLikeMarkdown(cmd) {
			fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
			printUsage(env.Stderr)
			return ExitUsage
		}
		cmd, rest = "render", legacyArgs(args[1:])
	}

	switch cmd {
	case "render":
		ctx, stop := notifyContext(context.Background())
		defer stop()
		if err := runRender(ctx, rest, env); err != nil {
			fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
			return exitCodeFor(err)
		}
	case "styles":
		runStyles(env)
	case "version":
		fmt.Fprintf(env.Stdout, "go-md2json %s\n", Version)
	case "help":
		runHelp(rest, env)
	}
	return ExitSuccess
}

// isCommand reports whether s names a command (case-sensitive).
func isCommand(s string) bool {
	return slices.Contains(commands, s)
}

// looksLikeMarkdown reports whether s is a Markdown file argument.
func looksLikeMarkdown(s string) bool {
	return fileutil.HasMarkdownExtension(s)
}

// legacyArgs maps the two-argument form "<post.md> <options.json> [flags]"
// onto render arguments.
func legacyArgs(args []string) []string {
	if len(args) >= 2 && !isFlag(args[1]) {
		out := []string{args[0], "--config", args[1]}
		return append(out, args[2:]...)
	}
	return args
}

func isFlag(s string) bool {
	return len(s) > 1 && s[0] == '-'
}

// wantsVerbose scans raw arguments for the verbose flag before parsing.
func wantsVerbose(args []string) bool {
	return slices.Contains(args, "-v") || slices.Contains(args, "--verbose")
}
