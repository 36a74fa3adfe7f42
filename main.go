package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"lending-tracker/config"
	"lending-tracker/library"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// app carries what every command needs: configuration and an open manager.
type app struct {
	v   *viper.Viper
	cfg *config.Config
	mgr *library.LibraryManager

	in  io.Reader
	out io.Writer

	// isTerminal decides whether delete commands may prompt.
	isTerminal func() bool
}

func main() {
	a := &app{
		v:          config.NewViper(),
		in:         os.Stdin,
		out:        os.Stdout,
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
	}
	err := a.rootCmd().Execute()
	a.closeManager()
	if err != nil {
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "lending",
		Short:        "Track books, authors, members and loans in a local SQLite file",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg = config.FromViper(a.v)
			mgr, err := library.NewLibraryManager(a.cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			a.mgr = mgr
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.closeManager()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)

	root.PersistentFlags().String("db", config.DefaultDatabasePath, "path to the SQLite database file")
	root.PersistentFlags().Int("loan-days", config.DefaultLoanDays, "default lending period in days")
	_ = a.v.BindPFlag("database_path", root.PersistentFlags().Lookup("db"))
	_ = a.v.BindPFlag("loan_days", root.PersistentFlags().Lookup("loan-days"))

	root.AddCommand(
		a.initCmd(),
		a.booksCmd(),
		a.authorsCmd(),
		a.membersCmd(),
		a.linkCmd(),
		a.unlinkCmd(),
		a.loansCmd(),
	)
	return root
}

func (a *app) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database tables if they do not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.mgr.EnsureSchema(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Schema ready in %s\n", a.cfg.Database.Path)
			return nil
		},
	}
}

// closeManager is safe to call more than once. Post-run hooks are skipped
// when a command fails, so main calls it as well.
func (a *app) closeManager() error {
	if a.mgr == nil {
		return nil
	}
	err := a.mgr.Close()
	a.mgr = nil
	return err
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func parseID(kind, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID: %s", kind, s)
	}
	return id, nil
}

// confirm asks before a destructive action. Without a terminal the caller
// must pass --yes instead.
func (a *app) confirm(yes bool, prompt string) (bool, error) {
	if yes {
		return true, nil
	}
	if !a.isTerminal() {
		return false, errors.New("not a terminal: pass --yes to confirm")
	}
	fmt.Fprintf(a.out, "%s [y/N]: ", prompt)
	sc := bufio.NewScanner(a.in)
	if !sc.Scan() {
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(sc.Text()))
	return answer == "y" || answer == "yes", nil
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return s[:maxLength]
	}
	return s[:maxLength-3] + "..."
}
