package commands

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (load the roster once, run multiple commands)",
		Long: `Start an interactive session where you can run multiple commands against the
same loaded roster. The session keeps running until you type 'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "\n🚀 Starting interactive session...")
			fmt.Fprintf(out, "Loaded %d volunteers. Type 'help' for available commands, 'exit' or 'quit' to leave\n", app.Roster.Len())

			// Get all sibling commands (excluding interactive itself)
			commands := make(map[string]*cobra.Command)
			for _, subCmd := range cmd.Parent().Commands() {
				switch subCmd.Name() {
				case "interactive", "completion", "help":
					continue
				}
				commands[subCmd.Name()] = subCmd
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())

			for {
				fmt.Fprint(out, "> ")

				if !scanner.Scan() {
					break
				}

				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				// Parse command (respecting quotes)
				parts, err := parseCommandLine(line)
				if err != nil {
					fmt.Fprintf(out, "❌ Error parsing command: %v\n\n", err)
					continue
				}
				if len(parts) == 0 {
					continue
				}
				cmdName := parts[0]
				cmdArgs := parts[1:]

				if cmdName == "exit" || cmdName == "quit" {
					fmt.Fprintln(out, "👋 Goodbye!")
					return nil
				}

				if cmdName == "help" {
					printInteractiveHelp(out, commands)
					continue
				}

				targetCmd, exists := commands[cmdName]
				if !exists {
					fmt.Fprintf(out, "❌ Unknown command: %s (type 'help' for available commands)\n\n", cmdName)
					continue
				}

				if err := runInSession(targetCmd, cmdArgs); err != nil {
					fmt.Fprintf(out, "❌ Error: %v\n\n", err)
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}

			return nil
		},
	}

	return cmd
}

// runInSession executes a command's RunE directly, bypassing Execute so the
// root PersistentPreRunE does not reload the config and roster
func runInSession(targetCmd *cobra.Command, args []string) error {
	resetFlags(targetCmd.Flags())
	resetFlags(targetCmd.InheritedFlags())

	if err := targetCmd.ParseFlags(args); err != nil {
		return fmt.Errorf("error parsing flags: %w", err)
	}

	// Global flags were consumed by initApp and have no effect mid-session
	var global []string
	targetCmd.InheritedFlags().VisitAll(func(flag *pflag.Flag) {
		if flag.Changed {
			global = append(global, "--"+flag.Name)
		}
	})
	if len(global) > 0 {
		return fmt.Errorf("%s cannot be changed inside an interactive session (use toggleTheme to switch theme)",
			strings.Join(global, ", "))
	}

	// Get non-flag args after parsing flags
	args = targetCmd.Flags().Args()

	if targetCmd.Args != nil {
		if err := targetCmd.Args(targetCmd, args); err != nil {
			return err
		}
	}

	if targetCmd.RunE != nil {
		return targetCmd.RunE(targetCmd, args)
	}
	if targetCmd.Run != nil {
		targetCmd.Run(targetCmd, args)
	}
	return nil
}

// resetFlags restores every flag to its default between runs. Slice values
// are cleared with Replace since Set would append to them.
func resetFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		if sv, ok := flag.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
			return
		}
		_ = flag.Value.Set(flag.DefValue)
	})
}

func printInteractiveHelp(out io.Writer, commands map[string]*cobra.Command) {
	fmt.Fprintln(out, "\nAvailable commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		cmd := commands[name]
		fmt.Fprintf(out, "  %-36s %s\n", cmd.Use, cmd.Short)
	}

	fmt.Fprintln(out, "\n  help                                 Show this help message")
	fmt.Fprintln(out, "  exit, quit                           Exit the interactive session")
}

// parseCommandLine splits a command line into arguments, respecting quoted strings.
// Supports both single and double quotes
func parseCommandLine(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	var inQuote rune // 0 if not in quote, '"' or '\'' if in quote
	quoted := false  // the current argument had quotes, so keep it even if empty

	for _, r := range line {
		switch {
		case inQuote != 0:
			if r == inQuote {
				inQuote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			inQuote = r
			quoted = true
		case unicode.IsSpace(r):
			if current.Len() > 0 || quoted {
				args = append(args, current.String())
				current.Reset()
				quoted = false
			}
		default:
			current.WriteRune(r)
		}
	}

	if inQuote != 0 {
		return nil, fmt.Errorf("unclosed quote: %c", inQuote)
	}

	if current.Len() > 0 || quoted {
		args = append(args, current.String())
	}

	return args, nil
}
