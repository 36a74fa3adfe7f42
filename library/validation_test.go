package library

import (
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookYearBoundaries(t *testing.T) {
	current := time.Now().Year()
	tests := []struct {
		year  int
		valid bool
	}{
		{999, false},
		{1000, true},
		{1937, true},
		{current + 1, true},
		{current + 2, false},
	}
	for _, tt := range tests {
		err := Book{Title: "Any", YearPublished: tt.year}.Validate()
		if tt.valid {
			assert.NoError(t, err, "year %d", tt.year)
		} else {
			assert.Error(t, err, "year %d", tt.year)
			assert.True(t, IsValidationError(err))
		}
	}
}

func TestBookRequiresTitle(t *testing.T) {
	err := Book{Title: "   ", YearPublished: 2000}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title is required")
}

func TestAuthorRequiresBothNames(t *testing.T) {
	err := Author{}.Validate()
	require.Error(t, err)
	assert.Equal(t, "first name is required; last name is required", err.Error())
	assert.NoError(t, Author{FirstName: "Neil", LastName: "Gaiman"}.Validate())
}

func TestMemberEmailShape(t *testing.T) {
	base := Member{FirstName: "Alice", LastName: "Smith", Category: CategoryStudent}
	tests := []struct {
		email string
		valid bool
	}{
		{"a@b.co", true},
		{"alice.smith@school.example.org", true},
		{"alice", false},
		{"alice@school", false},
		{"alice.school.org", false},
		{"@b.co", false},
		{"a b@c.de", false},
		{"", false},
	}
	for _, tt := range tests {
		m := base
		m.Email = tt.email
		assert.Equal(t, tt.valid, m.IsValid(), "email %q", tt.email)
	}
}

func TestMemberCategory(t *testing.T) {
	m := Member{FirstName: "A", LastName: "B", Email: "a@b.co", Category: "Governor"}
	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category must be one of")

	for _, c := range MemberCategories {
		m.Category = c
		assert.True(t, m.IsValid(), "category %s", c)
	}

	c, err := ParseMemberCategory(" teacher ")
	require.NoError(t, err)
	assert.Equal(t, CategoryTeacher, c)
	_, err = ParseMemberCategory("parent")
	assert.Error(t, err)
}

func TestLoanDateOrdering(t *testing.T) {
	day := NewDate(2024, time.March, 10)
	next := day.AddDate(0, 0, 1)
	before := day.AddDate(0, 0, -1)
	farFuture := NewDate(10000, time.January, 1)

	tests := []struct {
		name    string
		loan    Loan
		wantErr string
	}{
		{"due after loan", Loan{BookID: 1, MemberID: 1, LoanDate: day, DueDate: next}, ""},
		{"due same day", Loan{BookID: 1, MemberID: 1, LoanDate: day, DueDate: day}, "due date must be after loan date"},
		{"due before loan", Loan{BookID: 1, MemberID: 1, LoanDate: day, DueDate: before}, "due date must be after loan date"},
		{"returned same day", Loan{BookID: 1, MemberID: 1, LoanDate: day, DueDate: next, ReturnDate: &day}, ""},
		{"returned before loan", Loan{BookID: 1, MemberID: 1, LoanDate: day, DueDate: next, ReturnDate: &before}, "return date cannot be before loan date"},
		{"no book or member", Loan{LoanDate: day, DueDate: next}, "book must be selected; member must be selected"},
		{"no dates", Loan{BookID: 1, MemberID: 1}, "loan date is required; due date is required"},
		{"due after year 9999", Loan{BookID: 1, MemberID: 1, LoanDate: day, DueDate: farFuture}, "due date must be between years 1 and 9999"},
		{"returned after year 9999", Loan{BookID: 1, MemberID: 1, LoanDate: day, DueDate: next, ReturnDate: &farFuture}, "return date must be between years 1 and 9999"},
		{"loaned in year 0", Loan{BookID: 1, MemberID: 1, LoanDate: NewDate(0, time.June, 1), DueDate: next}, "loan date must be between years 1 and 9999"},
		{"last storable day", Loan{BookID: 1, MemberID: 1, LoanDate: day, DueDate: NewDate(9999, time.December, 31)}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.loan.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), "got %q", err.Error())
		})
	}
}

func TestValidatorRegistration(t *testing.T) {
	assert.NotPanics(t, func() { newValidator() })
	assert.Panics(t, func() {
		mustRegister(validator.New(), "", func(validator.FieldLevel) bool { return true })
	})
}
