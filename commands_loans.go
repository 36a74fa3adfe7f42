package main

import (
	"fmt"
	"strings"
	"time"

	"lending-tracker/library"

	"github.com/spf13/cobra"
)

func (a *app) loansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loans",
		Short: "Lend, return and report on loans",
	}
	cmd.AddCommand(
		a.listLoansCmd(),
		a.searchLoansCmd(),
		a.activeLoansCmd(),
		a.overdueLoansCmd(),
		a.addLoanCmd(),
		a.returnLoanCmd(),
		a.deleteLoanCmd(),
	)
	return cmd
}

func (a *app) listLoansCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all loans, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loans, err := a.mgr.Reports.AllLoansWithDetails()
			if err != nil {
				return err
			}
			today := library.Today()
			if status != "" {
				st, ok := library.ParseLoanStatus(status)
				if !ok {
					return fmt.Errorf("unknown status %q (want on-loan, overdue or returned)", status)
				}
				loans = library.FilterByStatus(loans, st, today)
			}
			a.printLoans(loans, today)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "only show loans in this status: on-loan, overdue, returned")
	return cmd
}

func (a *app) searchLoansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Find loans by book title or member name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			loans, err := a.mgr.Reports.Search(term)
			if err != nil {
				return err
			}
			if len(loans) == 0 {
				fmt.Fprintf(a.out, "No loans found matching '%s'.\n", term)
				return nil
			}
			a.printLoans(loans, library.Today())
			return nil
		},
	}
}

func (a *app) activeLoansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "List loans not yet returned, soonest due first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loans, err := a.mgr.Reports.ActiveLoans()
			if err != nil {
				return err
			}
			a.printLoans(loans, library.Today())
			return nil
		},
	}
}

func (a *app) overdueLoansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List loans past their due date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today := library.Today()
			loans, err := a.mgr.Reports.OverdueLoans(today)
			if err != nil {
				return err
			}
			a.printLoans(loans, today)
			return nil
		},
	}
}

func (a *app) addLoanCmd() *cobra.Command {
	var loanDate, dueDate string
	cmd := &cobra.Command{
		Use:   "add <bookID> <memberID>",
		Short: "Lend a book to a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookID, err := parseID("book", args[0])
			if err != nil {
				return err
			}
			memberID, err := parseID("member", args[1])
			if err != nil {
				return err
			}

			start := library.Today()
			if loanDate != "" {
				if start, err = library.ParseDate(loanDate); err != nil {
					return err
				}
			}

			// Friendlier than the foreign-key failure the store would report.
			b, ok, err := a.mgr.Books.GetByID(bookID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("book with ID %d not found", bookID)
			}
			m, ok, err := a.mgr.Members.GetByID(memberID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("member with ID %d not found", memberID)
			}

			var loan library.Loan
			if dueDate == "" {
				loan, err = a.mgr.CheckoutBook(bookID, memberID, start, a.cfg.Loans.DefaultDays)
			} else {
				loan = library.Loan{BookID: bookID, MemberID: memberID, LoanDate: start}
				if loan.DueDate, err = library.ParseDate(dueDate); err != nil {
					return err
				}
				_, err = a.mgr.Loans.Insert(&loan)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Loan %d: '%s' lent to %s, due %s\n",
				loan.ID, b.Title, m.FullName(), library.FormatDate(loan.DueDate))
			return nil
		},
	}
	cmd.Flags().StringVar(&loanDate, "on", "", "loan date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&dueDate, "due", "", "due date YYYY-MM-DD (default loan date plus --loan-days)")
	return cmd
}

func (a *app) returnLoanCmd() *cobra.Command {
	var on string
	cmd := &cobra.Command{
		Use:   "return <loanID>",
		Short: "Record that a loaned book came back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("loan", args[0])
			if err != nil {
				return err
			}
			when := library.Today()
			if on != "" {
				if when, err = library.ParseDate(on); err != nil {
					return err
				}
			}
			if err := a.mgr.ReturnLoan(id, when); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Loan %d returned on %s\n", id, library.FormatDate(when))
			return nil
		},
	}
	cmd.Flags().StringVar(&on, "on", "", "return date YYYY-MM-DD (default today)")
	return cmd
}

func (a *app) deleteLoanCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <loanID>",
		Short: "Delete a loan record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("loan", args[0])
			if err != nil {
				return err
			}
			if _, ok, err := a.mgr.Loans.GetByID(id); err != nil {
				return err
			} else if !ok {
				return fmt.Errorf("loan with ID %d not found", id)
			}
			sure, err := a.confirm(yes, fmt.Sprintf("Delete loan %d?", id))
			if err != nil {
				return err
			}
			if !sure {
				fmt.Fprintln(a.out, "Cancelled.")
				return nil
			}
			if _, err := a.mgr.Loans.Delete(id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted loan %d\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (a *app) printLoans(loans []library.LoanWithDetails, today time.Time) {
	if len(loans) == 0 {
		fmt.Fprintln(a.out, "No loans.")
		return
	}
	fmt.Fprintf(a.out, "%-5s %-30s %-22s %-10s %-10s %-10s %-8s %s\n",
		"ID", "Book", "Member", "Loaned", "Due", "Returned", "Days", "Status")
	fmt.Fprintln(a.out, strings.Repeat("-", 110))
	for _, l := range loans {
		returned := "-"
		if l.ReturnDate != nil {
			returned = library.FormatDate(*l.ReturnDate)
		}
		fmt.Fprintf(a.out, "%-5d %-30s %-22s %-10s %-10s %-10s %-8d %s\n",
			l.ID,
			truncateString(l.BookTitle, 30),
			truncateString(l.MemberName(), 22),
			library.FormatDate(l.LoanDate),
			library.FormatDate(l.DueDate),
			returned,
			l.DaysUntilDue(today),
			l.Status(today))
	}
}
