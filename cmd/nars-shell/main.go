package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/narscore/pkg/narscore"
	"github.com/cognicore/narscore/pkg/narscore/config"
	"github.com/cognicore/narscore/pkg/narscore/narsese"
	"github.com/cognicore/narscore/pkg/narscore/store"
	"github.com/cognicore/narscore/pkg/narscore/store/sqlite"
)

// globalFlags are shared by every command
type globalFlags struct {
	configPath string
	seedPath   string
	dbPath     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	root := &cobra.Command{
		Use:           "nars-shell",
		Short:         "nars-shell - drive a NARS reasoning core",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "YAML config file (optional)")
	root.PersistentFlags().StringVar(&g.seedPath, "seed", "", "Narsese file loaded before the first cycle (optional)")
	root.PersistentFlags().StringVar(&g.dbPath, "db", "", "SQLite journal path (optional for shell and run)")

	root.AddCommand(newShellCmd(&g), newRunCmd(&g), newJournalCmd(&g))
	return root
}

func newShellCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive Narsese shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := buildReasoner(ctx, g.configPath, g.seedPath, g.dbPath)
			if err != nil {
				return err
			}
			defer r.Close()
			return repl(ctx, r, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func newRunCmd(g *globalFlags) *cobra.Command {
	var (
		cycles int
		ask    []string
		act    []string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the seed for a number of cycles and report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := buildReasoner(ctx, g.configPath, g.seedPath, g.dbPath)
			if err != nil {
				return err
			}
			defer r.Close()

			for i := 0; i < cycles; i++ {
				if err := r.AdvanceCycle(ctx); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run %s: %d cycles, %d pending\n", r.RunID(), r.Cycle(), r.Pending())
			for _, q := range ask {
				if err := printAnswer(out, r, q); err != nil {
					return err
				}
			}
			for _, op := range act {
				if err := printActivation(out, r, op); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&cycles, "cycles", "n", 100, "Cycles to run")
	cmd.Flags().StringArrayVar(&ask, "ask", nil, "Statement to report the best belief for (repeatable)")
	cmd.Flags().StringArrayVar(&act, "act", nil, "Operation to report the activation of (repeatable)")
	return cmd
}

func newJournalCmd(g *globalFlags) *cobra.Command {
	var (
		rule  string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "journal <run-id>",
		Short: "List the journal of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if g.dbPath == "" {
				return fmt.Errorf("--db required")
			}
			ctx := cmd.Context()
			st, err := sqlite.OpenSQLite(ctx, g.dbPath)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer st.Close()

			var records []store.Record
			if rule != "" {
				records, err = st.ByRule(ctx, args[0], rule)
			} else {
				records, err = st.ByRun(ctx, args[0], limit)
			}
			if err != nil {
				return err
			}
			printRecords(cmd.OutOrStdout(), records)
			return nil
		},
	}
	cmd.Flags().StringVar(&rule, "rule", "", "Only records derived by this rule")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum records (0 for all)")
	return cmd
}

func buildReasoner(ctx context.Context, configPath, seedPath, dbPath string) (*narscore.Reasoner, error) {
	loader := config.Loader{
		ConfigPath: configPath,
		SeedPath:   seedPath,
	}
	components, err := loader.Load()
	if err != nil {
		return nil, err
	}

	opts := narscore.Options{Config: components.Config}
	if dbPath != "" {
		journal, err := sqlite.OpenSQLite(ctx, dbPath)
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		opts.Journal = journal
	}

	r, err := narscore.New(opts)
	if err != nil {
		if opts.Journal != nil {
			opts.Journal.Close()
		}
		return nil, err
	}
	if err := r.LoadSentences(components.Seed); err != nil {
		r.Close()
		return nil, fmt.Errorf("load seed: %w", err)
	}
	return r, nil
}

const shellHelp = `Enter Narsese sentences, or:
  :c [n]        advance n cycles (default 1)
  :ask <term>   best belief about a statement
  :act <term>   activation of an operation
  :run          journal run id
  exit          quit`

// repl reads sentences and commands until EOF or exit.
func repl(ctx context.Context, r *narscore.Reasoner, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "nars-shell (type :help for commands)")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		if err := execute(ctx, r, line, out); err != nil {
			fmt.Fprintln(out, "Error:", err)
		}
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

func execute(ctx context.Context, r *narscore.Reasoner, line string, out io.Writer) error {
	if !strings.HasPrefix(line, ":") {
		return r.Inject(line)
	}

	cmd, arg, _ := strings.Cut(line[1:], " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "help":
		fmt.Fprintln(out, shellHelp)
	case "c":
		n := 1
		if arg != "" {
			v, err := strconv.Atoi(arg)
			if err != nil || v < 1 {
				return fmt.Errorf("bad cycle count %q", arg)
			}
			n = v
		}
		for i := 0; i < n; i++ {
			if err := r.AdvanceCycle(ctx); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "cycle %d, %d pending\n", r.Cycle(), r.Pending())
	case "ask":
		return printAnswer(out, r, arg)
	case "act":
		return printActivation(out, r, arg)
	case "run":
		fmt.Fprintln(out, r.RunID())
	default:
		return fmt.Errorf("unknown command :%s", cmd)
	}
	return nil
}

func printAnswer(out io.Writer, r *narscore.Reasoner, text string) error {
	term, err := narsese.ParseTerm(text)
	if err != nil {
		return err
	}
	if a := r.Answer(term); a != nil {
		fmt.Fprintf(out, "%s  [%s]\n", a, derivedBy(a.Stamp.DerivedBy))
	} else {
		fmt.Fprintf(out, "%s: no belief\n", term)
	}
	return nil
}

func printActivation(out io.Writer, r *narscore.Reasoner, text string) error {
	term, err := narsese.ParseTerm(text)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %.3f\n", term, r.GoalActivation(term))
	return nil
}

func printRecords(out io.Writer, records []store.Record) {
	if len(records) == 0 {
		fmt.Fprintln(out, "No records found.")
		return
	}
	for _, rec := range records {
		fmt.Fprintf(out, "%6d  #%-6d %-40s %-30s %v\n",
			rec.Cycle, rec.StampID, rec.Sentence, derivedBy(rec.DerivedBy), rec.Evidence)
	}
}

func derivedBy(rule string) string {
	if rule == "" {
		return "input"
	}
	return rule
}
