package library

import (
	"fmt"
	"log"
	"time"
)

// LibraryManager is a thin façade over the repositories, keeping CLI code simple.
type LibraryManager struct {
	db *Database

	Books       *BookRepository
	Authors     *AuthorRepository
	Members     *MemberRepository
	Loans       *LoanRepository
	BookAuthors *BookAuthorRepository
	Reports     *LoanReports
}

// NewLibraryManager opens (or creates) the SQLite database at dbPath.
func NewLibraryManager(dbPath string) (*LibraryManager, error) {
	db, err := NewDatabase(dbPath)
	if err != nil {
		return nil, err
	}
	return &LibraryManager{
		db:          db,
		Books:       NewBookRepository(db),
		Authors:     NewAuthorRepository(db),
		Members:     NewMemberRepository(db),
		Loans:       NewLoanRepository(db),
		BookAuthors: NewBookAuthorRepository(db),
		Reports:     NewLoanReports(db),
	}, nil
}

// Close closes the underlying database.
func (lm *LibraryManager) Close() error { return lm.db.Close() }

// SetLogger redirects engine diagnostics.
func (lm *LibraryManager) SetLogger(l *log.Logger) { lm.db.SetLogger(l) }

// EnsureSchema re-runs table creation; see Database.EnsureSchema.
func (lm *LibraryManager) EnsureSchema() error { return lm.db.EnsureSchema() }

// ------------------ Books ------------------

// AddBookWithAuthors inserts the book and links it to each author id. Links
// are written one by one, so a failure leaves the book and earlier links in
// place.
func (lm *LibraryManager) AddBookWithAuthors(b *Book, authorIDs ...int64) (int64, error) {
	id, err := lm.Books.Insert(b)
	if err != nil {
		return 0, err
	}
	for _, authorID := range authorIDs {
		if err := lm.BookAuthors.Link(id, authorID); err != nil {
			return id, fmt.Errorf("link author %d: %w", authorID, err)
		}
	}
	return id, nil
}

// ------------------ Circulation ------------------

// CheckoutBook lends a book to a member from loanDate for the given number of days.
func (lm *LibraryManager) CheckoutBook(bookID, memberID int64, loanDate time.Time, days int) (Loan, error) {
	loan := Loan{
		BookID:   bookID,
		MemberID: memberID,
		LoanDate: DateOf(loanDate),
		DueDate:  DateOf(loanDate).AddDate(0, 0, days),
	}
	if _, err := lm.Loans.Insert(&loan); err != nil {
		return Loan{}, err
	}
	return loan, nil
}

// ReturnLoan records the return of a loan on the given date.
func (lm *LibraryManager) ReturnLoan(loanID int64, on time.Time) error {
	ok, err := lm.Loans.MarkReturned(loanID, DateOf(on))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("loan %d is not out", loanID)
	}
	return nil
}
