package main

import (
	"fmt"
	"strings"

	"lending-tracker/library"

	"github.com/spf13/cobra"
)

func (a *app) authorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authors",
		Short: "Manage authors",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List authors by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			authors, err := a.mgr.Authors.GetAll()
			if err != nil {
				return err
			}
			if len(authors) == 0 {
				fmt.Fprintln(a.out, "No authors registered.")
				return nil
			}
			fmt.Fprintf(a.out, "%-5s %-30s %s\n", "ID", "Name", "Books")
			fmt.Fprintln(a.out, strings.Repeat("-", 80))
			for _, au := range authors {
				books, err := a.mgr.BookAuthors.BooksOf(au.ID)
				if err != nil {
					return err
				}
				titles := make([]string, 0, len(books))
				for _, b := range books {
					titles = append(titles, b.Title)
				}
				fmt.Fprintf(a.out, "%-5d %-30s %s\n", au.ID, truncateString(au.FullName(), 30), strings.Join(titles, ", "))
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <first name> <last name>",
		Short: "Add an author",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			au := library.Author{FirstName: args[0], LastName: args[1]}
			id, err := a.mgr.Authors.Insert(&au)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Added author '%s' with ID %d\n", au.FullName(), id)
			return nil
		},
	}

	var yes bool
	del := &cobra.Command{
		Use:   "delete <authorID>",
		Short: "Delete an author and their book links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("author", args[0])
			if err != nil {
				return err
			}
			au, ok, err := a.mgr.Authors.GetByID(id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("author with ID %d not found", id)
			}
			sure, err := a.confirm(yes, fmt.Sprintf("Delete author '%s'?", au.FullName()))
			if err != nil {
				return err
			}
			if !sure {
				fmt.Fprintln(a.out, "Cancelled.")
				return nil
			}
			if _, err := a.mgr.Authors.Delete(id); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted author '%s'\n", au.FullName())
			return nil
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(list, add, del)
	return cmd
}

func (a *app) membersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Manage members",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List members by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := a.mgr.Members.GetAll()
			if err != nil {
				return err
			}
			if len(members) == 0 {
				fmt.Fprintln(a.out, "No members registered.")
				return nil
			}
			fmt.Fprintf(a.out, "%-5s %-30s %-35s %s\n", "ID", "Name", "Email", "Category")
			fmt.Fprintln(a.out, strings.Repeat("-", 85))
			for _, m := range members {
				fmt.Fprintf(a.out, "%-5d %-30s %-35s %s\n",
					m.ID, truncateString(m.FullName(), 30), truncateString(m.Email, 35), m.Category)
			}
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <memberID>",
		Short: "Show a member and their loan history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("member", args[0])
			if err != nil {
				return err
			}
			m, ok, err := a.mgr.Members.GetByID(id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("member with ID %d not found", id)
			}
			loans, err := a.mgr.Loans.GetByMember(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "ID:       %d\nName:     %s\nEmail:    %s\nCategory: %s\n",
				m.ID, m.FullName(), m.Email, m.Category)
			if len(loans) == 0 {
				fmt.Fprintln(a.out, "No loans.")
				return nil
			}

			today := library.Today()
			fmt.Fprintf(a.out, "\n%-5s %-30s %-10s %-10s %s\n", "Loan", "Book", "Loaned", "Due", "Status")
			fmt.Fprintln(a.out, strings.Repeat("-", 70))
			for _, l := range loans {
				title := fmt.Sprintf("book %d", l.BookID)
				if b, ok, err := a.mgr.Books.GetByID(l.BookID); err != nil {
					return err
				} else if ok {
					title = b.Title
				}
				fmt.Fprintf(a.out, "%-5d %-30s %-10s %-10s %s\n",
					l.ID, truncateString(title, 30), library.FormatDate(l.LoanDate), library.FormatDate(l.DueDate), l.Status(today))
			}
			return nil
		},
	}

	var category string
	add := &cobra.Command{
		Use:   "add <first name> <last name> <email>",
		Short: "Register a member",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := library.ParseMemberCategory(category)
			if err != nil {
				return err
			}
			m := library.Member{FirstName: args[0], LastName: args[1], Email: args[2], Category: cat}
			id, err := a.mgr.Members.Insert(&m)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Added member '%s' with ID %d\n", m.FullName(), id)
			return nil
		},
	}
	add.Flags().StringVar(&category, "category", string(library.CategoryStudent), "Student, Teacher or Staff")

	var yes bool
	del := &cobra.Command{
		Use:   "delete <memberID>",
		Short: "Delete a member with no loans on record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("member", args[0])
			if err != nil {
				return err
			}
			m, ok, err := a.mgr.Members.GetByID(id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("member with ID %d not found", id)
			}
			sure, err := a.confirm(yes, fmt.Sprintf("Delete member '%s'?", m.FullName()))
			if err != nil {
				return err
			}
			if !sure {
				fmt.Fprintln(a.out, "Cancelled.")
				return nil
			}
			if _, err := a.mgr.Members.Delete(id); err != nil {
				return fmt.Errorf("could not delete '%s' (do they have loans?): %w", m.FullName(), err)
			}
			fmt.Fprintf(a.out, "Deleted member '%s'\n", m.FullName())
			return nil
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(list, show, add, del)
	return cmd
}
