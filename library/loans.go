package library

import (
	"database/sql"
	"errors"
	"time"
)

// LoanRepository runs the loan CRUD statements and the return action.
type LoanRepository struct {
	d *Database
}

// NewLoanRepository binds a repository to d.
func NewLoanRepository(d *Database) *LoanRepository { return &LoanRepository{d: d} }

const loanColumns = `id, book_id, member_id, loan_date, due_date, return_date`

// loanRow is the raw shape of a loans row before the date columns are parsed.
type loanRow struct {
	id, bookID, memberID int64
	loanDate, dueDate    string
	returnDate           sql.NullString
}

func (lr loanRow) loan() (Loan, error) {
	loanDate, err := ParseDate(lr.loanDate)
	if err != nil {
		return Loan{}, err
	}
	dueDate, err := ParseDate(lr.dueDate)
	if err != nil {
		return Loan{}, err
	}
	returnDate, err := scanOptionalDate(lr.returnDate)
	if err != nil {
		return Loan{}, err
	}
	return Loan{
		ID:         lr.id,
		BookID:     lr.bookID,
		MemberID:   lr.memberID,
		LoanDate:   loanDate,
		DueDate:    dueDate,
		ReturnDate: returnDate,
	}, nil
}

func scanLoan(s rowScanner) (Loan, error) {
	var lr loanRow
	if err := s.Scan(&lr.id, &lr.bookID, &lr.memberID, &lr.loanDate, &lr.dueDate, &lr.returnDate); err != nil {
		return Loan{}, err
	}
	return lr.loan()
}

// GetAll returns every loan, newest loan date first.
func (r *LoanRepository) GetAll() ([]Loan, error) {
	return r.query("list loans", `SELECT `+loanColumns+` FROM loans ORDER BY loan_date DESC, id DESC`)
}

// GetByMember returns the loans of one member, newest first.
func (r *LoanRepository) GetByMember(memberID int64) ([]Loan, error) {
	return r.query("list member loans",
		`SELECT `+loanColumns+` FROM loans WHERE member_id=? ORDER BY loan_date DESC, id DESC`, memberID)
}

// GetByID looks a single loan up. ok is false when no row matches.
func (r *LoanRepository) GetByID(id int64) (l Loan, ok bool, err error) {
	l, err = scanLoan(r.d.db.QueryRow(`SELECT `+loanColumns+` FROM loans WHERE id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Loan{}, false, nil
	}
	if err != nil {
		return Loan{}, false, r.d.fail("get loan", err)
	}
	return l, true, nil
}

// Insert validates l, stores it and writes the new id back into l. Unknown
// book or member ids are rejected by the foreign keys.
func (r *LoanRepository) Insert(l *Loan) (int64, error) {
	if err := l.Validate(); err != nil {
		return 0, err
	}
	res, err := r.d.db.Exec(`INSERT INTO loans(book_id, member_id, loan_date, due_date, return_date) VALUES(?,?,?,?,?)`,
		l.BookID, l.MemberID, FormatDate(l.LoanDate), FormatDate(l.DueDate), nullableDate(l.ReturnDate))
	id, err := r.d.inserted("insert loan", res, err)
	if err != nil {
		return 0, err
	}
	l.ID = id
	return id, nil
}

// Update overwrites every column of the row with l.ID.
func (r *LoanRepository) Update(l Loan) (bool, error) {
	if err := l.Validate(); err != nil {
		return false, err
	}
	res, err := r.d.db.Exec(`UPDATE loans SET book_id=?, member_id=?, loan_date=?, due_date=?, return_date=? WHERE id=?`,
		l.BookID, l.MemberID, FormatDate(l.LoanDate), FormatDate(l.DueDate), nullableDate(l.ReturnDate), l.ID)
	return r.d.affected("update loan", res, err)
}

// Delete removes the loan row outright.
func (r *LoanRepository) Delete(id int64) (bool, error) {
	res, err := r.d.db.Exec(`DELETE FROM loans WHERE id=?`, id)
	return r.d.affected("delete loan", res, err)
}

// MarkReturned records the return of an outstanding loan. It reports false
// when the loan does not exist or was already returned; a return date before
// the loan date is a validation error.
func (r *LoanRepository) MarkReturned(id int64, on time.Time) (bool, error) {
	l, ok, err := r.GetByID(id)
	if err != nil || !ok || l.IsReturned() {
		return false, err
	}
	l.ReturnDate = &on
	if err := l.Validate(); err != nil {
		return false, err
	}
	res, err := r.d.db.Exec(`UPDATE loans SET return_date=? WHERE id=? AND return_date IS NULL`, FormatDate(on), id)
	return r.d.affected("return loan", res, err)
}

func (r *LoanRepository) query(op, q string, args ...any) ([]Loan, error) {
	rows, err := r.d.db.Query(q, args...)
	if err != nil {
		return nil, r.d.fail(op, err)
	}
	defer rows.Close()

	loans := []Loan{}
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, r.d.fail(op, err)
		}
		loans = append(loans, l)
	}
	if err := rows.Err(); err != nil {
		return nil, r.d.fail(op, err)
	}
	return loans, nil
}
