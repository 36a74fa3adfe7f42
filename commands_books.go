package main

import (
	"fmt"
	"strings"

	"lending-tracker/library"

	"github.com/spf13/cobra"
)

func (a *app) booksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Manage books",
	}
	cmd.AddCommand(a.listBooksCmd(), a.showBookCmd(), a.addBookCmd(), a.updateBookCmd(), a.deleteBookCmd())
	return cmd
}

func (a *app) listBooksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List books by title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := a.mgr.Books.GetAll()
			if err != nil {
				return err
			}
			if len(books) == 0 {
				fmt.Fprintln(a.out, "No books in library.")
				return nil
			}
			fmt.Fprintf(a.out, "%-5s %-40s %-16s %-6s %s\n", "ID", "Title", "ISBN", "Year", "Authors")
			fmt.Fprintln(a.out, strings.Repeat("-", 100))
			for _, b := range books {
				names, err := a.authorNames(b.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "%-5d %-40s %-16s %-6d %s\n",
					b.ID, truncateString(b.Title, 40), b.ISBN, b.YearPublished, names)
			}
			return nil
		},
	}
}

func (a *app) authorNames(bookID int64) (string, error) {
	authors, err := a.mgr.BookAuthors.AuthorsOf(bookID)
	if err != nil {
		return "", err
	}
	if len(authors) == 0 {
		return "None", nil
	}
	names := make([]string, 0, len(authors))
	for _, au := range authors {
		names = append(names, au.FullName())
	}
	return strings.Join(names, ", "), nil
}

func (a *app) showBookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <bookID>",
		Short: "Show a book and its authors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("book", args[0])
			if err != nil {
				return err
			}
			b, ok, err := a.mgr.Books.GetByID(id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("book with ID %d not found", id)
			}
			names, err := a.authorNames(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "ID:      %d\nTitle:   %s\nISBN:    %s\nYear:    %d\nAuthors: %s\n",
				b.ID, b.Title, b.ISBN, b.YearPublished, names)
			return nil
		},
	}
}

func (a *app) addBookCmd() *cobra.Command {
	var (
		isbn      string
		year      int
		authorIDs []string
	)
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a book, optionally linking existing authors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(authorIDs))
			for _, s := range authorIDs {
				id, err := parseID("author", s)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			b := library.Book{Title: args[0], ISBN: isbn, YearPublished: year}
			id, err := a.mgr.AddBookWithAuthors(&b, ids...)
			if err != nil {
				if id > 0 {
					fmt.Fprintf(a.out, "Added book ID %d, but not all authors were linked.\n", id)
				}
				return err
			}
			fmt.Fprintf(a.out, "Added book ID %d\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&isbn, "isbn", "", "ISBN (optional)")
	cmd.Flags().IntVar(&year, "year", 0, "year published")
	cmd.Flags().StringSliceVar(&authorIDs, "author", nil, "author ID to link (repeatable)")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

func (a *app) updateBookCmd() *cobra.Command {
	var (
		title, isbn string
		year        int
	)
	cmd := &cobra.Command{
		Use:   "update <bookID>",
		Short: "Change a book's title, ISBN or year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("book", args[0])
			if err != nil {
				return err
			}
			b, ok, err := a.mgr.Books.GetByID(id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("book with ID %d not found", id)
			}
			if cmd.Flags().Changed("title") {
				b.Title = title
			}
			if cmd.Flags().Changed("isbn") {
				b.ISBN = isbn
			}
			if cmd.Flags().Changed("year") {
				b.YearPublished = year
			}
			if _, err := a.mgr.Books.Update(b); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Updated book '%s'\n", b.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&isbn, "isbn", "", "new ISBN (empty clears it)")
	cmd.Flags().IntVar(&year, "year", 0, "new year published")
	return cmd
}

func (a *app) deleteBookCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <bookID>",
		Short: "Delete a book and its author links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("book", args[0])
			if err != nil {
				return err
			}
			b, ok, err := a.mgr.Books.GetByID(id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("book with ID %d not found", id)
			}
			sure, err := a.confirm(yes, fmt.Sprintf("Delete book '%s'?", b.Title))
			if err != nil {
				return err
			}
			if !sure {
				fmt.Fprintln(a.out, "Cancelled.")
				return nil
			}
			if _, err := a.mgr.Books.Delete(id); err != nil {
				return fmt.Errorf("could not delete '%s' (is it still on loan?): %w", b.Title, err)
			}
			fmt.Fprintf(a.out, "Deleted book '%s'\n", b.Title)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (a *app) linkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link <bookID> <authorID>",
		Short: "Record that an author wrote a book",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookID, authorID, err := parsePair(args)
			if err != nil {
				return err
			}
			if err := a.mgr.BookAuthors.Link(bookID, authorID); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Linked book %d to author %d\n", bookID, authorID)
			return nil
		},
	}
}

func (a *app) unlinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <bookID> <authorID>",
		Short: "Remove an author from a book",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookID, authorID, err := parsePair(args)
			if err != nil {
				return err
			}
			ok, err := a.mgr.BookAuthors.Unlink(bookID, authorID)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(a.out, "Book %d was not linked to author %d\n", bookID, authorID)
				return nil
			}
			fmt.Fprintf(a.out, "Unlinked book %d from author %d\n", bookID, authorID)
			return nil
		},
	}
}

func parsePair(args []string) (bookID, authorID int64, err error) {
	if bookID, err = parseID("book", args[0]); err != nil {
		return 0, 0, err
	}
	if authorID, err = parseID("author", args[1]); err != nil {
		return 0, 0, err
	}
	return bookID, authorID, nil
}
