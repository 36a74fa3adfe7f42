package library

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoanStatusPrecedence(t *testing.T) {
	today := NewDate(2025, time.June, 15)
	past := today.AddDate(0, 0, -5)
	future := today.AddDate(0, 0, 5)
	returned := today.AddDate(0, 0, -1)

	tests := []struct {
		name     string
		due      time.Time
		returned *time.Time
		want     LoanStatus
	}{
		{"out, due later", future, nil, StatusOnLoan},
		{"out, due today", today, nil, StatusOnLoan},
		{"out, due passed", past, nil, StatusOverdue},
		{"returned before due", future, &returned, StatusReturned},
		{"returned after due passed", past, &returned, StatusReturned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LoanStatusOf(tt.due, tt.returned, today))
		})
	}
}

func TestLoanDerivedFields(t *testing.T) {
	today := NewDate(2025, time.June, 15)
	loan := Loan{
		BookID:   1,
		MemberID: 1,
		LoanDate: today.AddDate(0, 0, -20),
		DueDate:  today.AddDate(0, 0, -5),
	}

	assert.False(t, loan.IsReturned())
	assert.True(t, loan.IsOverdue(today))
	assert.Equal(t, -5, loan.DaysUntilDue(today))
	assert.Equal(t, StatusOverdue, loan.Status(today))

	// Same loan a week earlier was still on loan.
	earlier := today.AddDate(0, 0, -7)
	assert.Equal(t, StatusOnLoan, loan.Status(earlier))
	assert.Equal(t, 2, loan.DaysUntilDue(earlier))

	ret := today.AddDate(0, 0, -1)
	loan.ReturnDate = &ret
	assert.True(t, loan.IsReturned())
	assert.False(t, loan.IsOverdue(today))
	assert.Equal(t, 0, loan.DaysUntilDue(today))
	assert.Equal(t, StatusReturned, loan.Status(today))
}

func TestStatusIgnoresTimeOfDay(t *testing.T) {
	due := NewDate(2025, time.June, 15)
	lateEvening := time.Date(2025, time.June, 15, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, StatusOnLoan, LoanStatusOf(due, nil, lateEvening))
	assert.Equal(t, 0, DaysUntilDue(due, nil, lateEvening))
}

func TestDaysUntilDueAcrossCenturies(t *testing.T) {
	today := NewDate(2026, time.October, 16)
	due := NewDate(2500, time.October, 16)

	assert.Equal(t, 173125, DaysUntilDue(due, nil, today))
	assert.Equal(t, -173125, DaysUntilDue(today, nil, due))
	assert.Equal(t, 3652058, DaysUntilDue(NewDate(9999, time.December, 31), nil, NewDate(1, time.January, 1)))
}

func TestParseLoanStatus(t *testing.T) {
	for in, want := range map[string]LoanStatus{
		"overdue":  StatusOverdue,
		"Returned": StatusReturned,
		"on-loan":  StatusOnLoan,
		"On Loan":  StatusOnLoan,
	} {
		got, ok := ParseLoanStatus(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseLoanStatus("lost")
	assert.False(t, ok)
}
