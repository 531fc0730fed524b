package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2json <command> [flags] [args]")
	fmt.Fprintln(w, "       md2json <post.md> <options.json>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Convert a Markdown document to metadata and HTML")
	fmt.Fprintln(w, "  styles     List code highlight styles")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2json help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2json render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a Markdown document with YAML front matter to")
	fmt.Fprintln(w, `{"metadata": {...}, "content": "<html>"}.`)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file, or - to read standard input")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -c, --config <name>       Options file name, path, or preset (default, blog)")
	fmt.Fprintln(w, "      --date-format <s>     strftime pattern, or preset: iso, rfc822, w3c, long")
	fmt.Fprintln(w, "      --style <s>           Code highlight style (see 'md2json styles')")
	fmt.Fprintln(w, "      --sanitize            Sanitize rendered HTML")
	fmt.Fprintln(w, "  -t, --timeout <d>         Render timeout (e.g., 5s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: stdout)")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: json, yaml")
	fmt.Fprintln(w, "      --pretty              Indent JSON output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2JSON_CONFIG, MD2JSON_STYLE, MD2JSON_DATE_FORMAT, MD2JSON_FORMAT,")
	fmt.Fprintln(w, "  MD2JSON_TIMEOUT. Flags override environment, which overrides the file.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "styles":
		fmt.Fprintln(env.Stdout, "Usage: md2json styles")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List code highlight styles accepted by highlight.style and --style.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2json version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2json help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
