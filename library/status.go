package library

import "time"

// LoanStatus is derived from a loan's dates every time it is read.
type LoanStatus string

const (
	StatusOnLoan   LoanStatus = "On Loan"
	StatusOverdue  LoanStatus = "Overdue"
	StatusReturned LoanStatus = "Returned"
)

// LoanStatusOf classifies a loan. A recorded return wins over everything,
// then a due date strictly before today makes it overdue.
func LoanStatusOf(dueDate time.Time, returnDate *time.Time, today time.Time) LoanStatus {
	switch {
	case returnDate != nil:
		return StatusReturned
	case DateOf(dueDate).Before(DateOf(today)):
		return StatusOverdue
	default:
		return StatusOnLoan
	}
}

// DaysUntilDue counts calendar days from today to the due date. Returned
// loans always report 0.
func DaysUntilDue(dueDate time.Time, returnDate *time.Time, today time.Time) int {
	if returnDate != nil {
		return 0
	}
	return daysBetween(today, dueDate)
}

// ParseLoanStatus accepts the display names plus a few loose spellings used
// on the command line.
func ParseLoanStatus(s string) (LoanStatus, bool) {
	switch s {
	case "On Loan", "on-loan", "onloan", "on_loan":
		return StatusOnLoan, true
	case "Overdue", "overdue":
		return StatusOverdue, true
	case "Returned", "returned":
		return StatusReturned, true
	}
	return "", false
}
