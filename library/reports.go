package library

import (
	"strings"
	"time"
)

// LoanReports produces the loan/book/member projection used for listings.
type LoanReports struct {
	d *Database
}

// NewLoanReports binds the report queries to d.
func NewLoanReports(d *Database) *LoanReports { return &LoanReports{d: d} }

const loanDetailsSelect = `
        SELECT l.id, l.book_id, l.member_id, l.loan_date, l.due_date, l.return_date,
               b.title, COALESCE(b.isbn,''),
               m.first_name, m.last_name, m.email, m.category
        FROM loans l
        JOIN books b ON b.id = l.book_id
        JOIN members m ON m.id = l.member_id`

// AllLoansWithDetails returns every loan, newest loan date first.
func (r *LoanReports) AllLoansWithDetails() ([]LoanWithDetails, error) {
	return r.query("list loan details", loanDetailsSelect+`
        ORDER BY l.loan_date DESC, l.id DESC`)
}

// Search matches term anywhere in the book title or the member's first or
// last name. Case is ignored for any script, so "émile" finds "Émile". A
// blank term returns everything.
func (r *LoanReports) Search(term string) ([]LoanWithDetails, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return r.AllLoansWithDetails()
	}
	pattern := "%" + escapeLike(foldCase(term)) + "%"
	return r.query("search loans", loanDetailsSelect+`
        WHERE fold(b.title) LIKE ? ESCAPE '\'
           OR fold(m.first_name) LIKE ? ESCAPE '\'
           OR fold(m.last_name) LIKE ? ESCAPE '\'
        ORDER BY l.loan_date DESC, l.id DESC`, pattern, pattern, pattern)
}

// ActiveLoans returns the loans not yet returned, soonest due first.
func (r *LoanReports) ActiveLoans() ([]LoanWithDetails, error) {
	return r.query("list active loans", loanDetailsSelect+`
        WHERE l.return_date IS NULL
        ORDER BY l.due_date ASC, l.id ASC`)
}

// OverdueLoans returns the active loans whose due date is before today.
func (r *LoanReports) OverdueLoans(today time.Time) ([]LoanWithDetails, error) {
	active, err := r.ActiveLoans()
	if err != nil {
		return nil, err
	}
	return FilterByStatus(active, StatusOverdue, today), nil
}

// FilterByStatus keeps the loans whose status as of today equals status.
// It works on an already loaded list and never touches the database.
func FilterByStatus(loans []LoanWithDetails, status LoanStatus, today time.Time) []LoanWithDetails {
	out := make([]LoanWithDetails, 0, len(loans))
	for _, l := range loans {
		if l.Status(today) == status {
			out = append(out, l)
		}
	}
	return out
}

func (r *LoanReports) query(op, q string, args ...any) ([]LoanWithDetails, error) {
	rows, err := r.d.db.Query(q, args...)
	if err != nil {
		return nil, r.d.fail(op, err)
	}
	defer rows.Close()

	out := []LoanWithDetails{}
	for rows.Next() {
		var (
			lr  loanRow
			det LoanWithDetails
		)
		if err := rows.Scan(&lr.id, &lr.bookID, &lr.memberID, &lr.loanDate, &lr.dueDate, &lr.returnDate,
			&det.BookTitle, &det.BookISBN,
			&det.MemberFirstName, &det.MemberLastName, &det.MemberEmail, &det.MemberCategory); err != nil {
			return nil, r.d.fail(op, err)
		}
		if det.Loan, err = lr.loan(); err != nil {
			return nil, r.d.fail(op, err)
		}
		out = append(out, det)
	}
	if err := rows.Err(); err != nil {
		return nil, r.d.fail(op, err)
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

// foldCase backs the fold() SQL function registered on every connection.
func foldCase(s string) string { return strings.ToLower(s) }
