// Command oxparse parses source files and dumps their syntax trees.
//
// Three subcommands cover the tooling workflows: parse (AST dump as JSON or
// CBOR), tokens (token stream listing), and watch (re-parse on every file
// change and report diagnostics).
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"

	"github.com/oxparse-dev/oxparse/lexer"
	"github.com/oxparse-dev/oxparse/parser"
)

const (
	exitSuccess    = 0
	exitUsageError = 1
	exitIOError    = 2
	exitParseError = 3
)

func main() {
	root := &cobra.Command{
		Use:           "oxparse",
		Short:         "Parser for the source language",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(parseCmd(), tokensCmd(), watchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsageError)
	}
}

func parseCmd() *cobra.Command {
	var format string
	var timing bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a file and dump its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "error reading file: %v\n", err)
				os.Exit(exitIOError)
			}

			var telemetry parser.Telemetry
			file, err := parser.ParseFile(string(content), parser.WithTelemetry(&telemetry))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(exitParseError)
			}

			if timing {
				slog.Info("parsed",
					"file", args[0],
					"tokens", telemetry.TokenCount,
					"items", telemetry.ItemCount,
					"lex", telemetry.LexTime,
					"parse", telemetry.ParseTime)
			}

			switch format {
			case "json":
				out, err := json.MarshalIndent(file, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
			case "cbor":
				out, err := cbor.Marshal(file)
				if err != nil {
					return err
				}
				if _, err := os.Stdout.Write(out); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (want json or cbor)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or cbor")
	cmd.Flags().BoolVar(&timing, "timing", false, "Log lex/parse timing")
	return cmd
}

func tokensCmd() *cobra.Command {
	var keepTrivia bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Tokenize a file and list the token stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "error reading file: %v\n", err)
				os.Exit(exitIOError)
			}
			input := string(content)

			tokens, err := lexer.Tokenize(input)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(exitParseError)
			}

			for _, tok := range tokens {
				if tok.IsTrivia() && !keepTrivia {
					continue
				}
				fmt.Printf("%-20s %s %q\n", tok.Type, tok.Extent, tok.Text(input))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepTrivia, "trivia", false, "Include whitespace and comment tokens")
	return cmd
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>...",
		Short: "Re-parse files whenever they change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()

			for _, path := range args {
				if err := watcher.Add(path); err != nil {
					return fmt.Errorf("watching %s: %w", path, err)
				}
				checkFile(path)
			}

			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
						checkFile(event.Name)
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					slog.Error("watch", "error", err)
				}
			}
		},
	}
}

// checkFile parses one file and prints a single OK or diagnostic line block.
func checkFile(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return
	}

	start := time.Now()
	_, perr := parser.ParseFile(string(content))
	elapsed := time.Since(start)

	if perr != nil {
		fmt.Printf("%s: FAIL (%s)\n%v\n", path, elapsed.Round(time.Microsecond), perr)
		return
	}
	fmt.Printf("%s: OK (%s)\n", path, elapsed.Round(time.Microsecond))
}
