package library

import (
	"fmt"
	"strings"
	"time"
)

// Book is a title held by the library. Authors are attached through the
// book_authors junction table rather than stored on the row.
type Book struct {
	ID            int64  `json:"id"`
	Title         string `json:"title" validate:"notblank"`
	ISBN          string `json:"isbn"`
	YearPublished int    `json:"year_published" validate:"pubyear"`
}

// Author can be linked to any number of books.
type Author struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name" validate:"notblank"`
	LastName  string `json:"last_name" validate:"notblank"`
}

// FullName returns "First Last".
func (a Author) FullName() string { return a.FirstName + " " + a.LastName }

// MemberCategory is the kind of borrower a member is.
type MemberCategory string

const (
	CategoryStudent MemberCategory = "Student"
	CategoryTeacher MemberCategory = "Teacher"
	CategoryStaff   MemberCategory = "Staff"
)

// MemberCategories lists every accepted category in display order.
var MemberCategories = []MemberCategory{CategoryStudent, CategoryTeacher, CategoryStaff}

// ParseMemberCategory matches s case-insensitively against the known categories.
func ParseMemberCategory(s string) (MemberCategory, error) {
	for _, c := range MemberCategories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown member category %q", s)
}

// Member represents a registered borrower.
type Member struct {
	ID        int64          `json:"id"`
	FirstName string         `json:"first_name" validate:"notblank"`
	LastName  string         `json:"last_name" validate:"notblank"`
	Email     string         `json:"email" validate:"emailshape"`
	Category  MemberCategory `json:"category" validate:"oneof=Student Teacher Staff"`
}

// FullName returns "First Last".
func (m Member) FullName() string { return m.FirstName + " " + m.LastName }

// Loan records a book lent to a member. ReturnDate is nil while the book is
// still out.
type Loan struct {
	ID         int64      `json:"id"`
	BookID     int64      `json:"book_id" validate:"gt=0"`
	MemberID   int64      `json:"member_id" validate:"gt=0"`
	LoanDate   time.Time  `json:"loan_date" validate:"required,caldate"`
	DueDate    time.Time  `json:"due_date" validate:"required,caldate"`
	ReturnDate *time.Time `json:"return_date,omitempty" validate:"omitempty,caldate"`
}

// IsReturned reports whether a return date has been recorded.
func (l Loan) IsReturned() bool { return l.ReturnDate != nil }

// Status classifies the loan as of today.
func (l Loan) Status(today time.Time) LoanStatus {
	return LoanStatusOf(l.DueDate, l.ReturnDate, today)
}

// IsOverdue reports whether the loan is unreturned and past its due date.
func (l Loan) IsOverdue(today time.Time) bool { return l.Status(today) == StatusOverdue }

// DaysUntilDue is negative once the due date has passed and 0 after return.
func (l Loan) DaysUntilDue(today time.Time) int {
	return DaysUntilDue(l.DueDate, l.ReturnDate, today)
}

// LoanWithDetails is the read-only projection of a loan joined with its book
// and member. It is never written back.
type LoanWithDetails struct {
	Loan
	BookTitle       string         `json:"book_title"`
	BookISBN        string         `json:"book_isbn"`
	MemberFirstName string         `json:"member_first_name"`
	MemberLastName  string         `json:"member_last_name"`
	MemberEmail     string         `json:"member_email"`
	MemberCategory  MemberCategory `json:"member_category"`
}

// MemberName returns the borrower's full name.
func (d LoanWithDetails) MemberName() string {
	return d.MemberFirstName + " " + d.MemberLastName
}
