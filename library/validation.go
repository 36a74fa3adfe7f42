package library

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrStorage marks every failure that came from the database engine. The
// engine's own message is logged, not returned.
var ErrStorage = errors.New("storage failure")

// ValidationError lists every business rule a record broke.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string { return strings.Join(e.Problems, "; ") }

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

const minPublicationYear = 1000

var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Calendar dates must fit the four-digit YYYY-MM-DD column format.
const (
	minCalendarYear = 1
	maxCalendarYear = 9999
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	register := func(tag string, fn validator.Func) { mustRegister(v, tag, fn) }
	register("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	register("emailshape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	register("pubyear", func(fl validator.FieldLevel) bool {
		y := int(fl.Field().Int())
		return y >= minPublicationYear && y <= time.Now().Year()+1
	})
	register("caldate", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && inCalendarRange(t)
	})
	return v
}

// mustRegister panics on a rejected tag; it only runs during package init.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("library: register %q validator: %v", tag, err))
	}
}

func inCalendarRange(t time.Time) bool {
	y := t.Year()
	return y >= minCalendarYear && y <= maxCalendarYear
}

// problems runs the struct tags on s and renders each failure as a sentence.
func problems(s any) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, describe(fe))
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank", "required":
		return fmt.Sprintf("%s is required", fieldLabels[fe.Field()])
	case "emailshape":
		return "email must look like name@domain.tld"
	case "pubyear":
		return fmt.Sprintf("year published must be between %d and %d", minPublicationYear, time.Now().Year()+1)
	case "caldate":
		return fmt.Sprintf("%s must be between years %d and %d", fieldLabels[fe.Field()], minCalendarYear, maxCalendarYear)
	case "oneof":
		return "category must be one of Student, Teacher, Staff"
	case "gt":
		return fmt.Sprintf("%s must be selected", fieldLabels[fe.Field()])
	}
	return fmt.Sprintf("%s is invalid", fieldLabels[fe.Field()])
}

var fieldLabels = map[string]string{
	"Title":         "title",
	"YearPublished": "year published",
	"FirstName":     "first name",
	"LastName":      "last name",
	"Email":         "email",
	"Category":      "category",
	"BookID":        "book",
	"MemberID":      "member",
	"LoanDate":      "loan date",
	"DueDate":       "due date",
	"ReturnDate":    "return date",
}

func invalid(list []string) error {
	if len(list) == 0 {
		return nil
	}
	return &ValidationError{Problems: list}
}

// Validate checks the book's own rules.
func (b Book) Validate() error { return invalid(problems(b)) }

// Validate checks the author's own rules.
func (a Author) Validate() error { return invalid(problems(a)) }

// Validate checks the member's own rules.
func (m Member) Validate() error { return invalid(problems(m)) }

// IsValid is Validate() == nil.
func (m Member) IsValid() bool { return m.Validate() == nil }

// Validate checks required fields and that the dates are in order: due
// strictly after loan, return (if any) on or after loan.
func (l Loan) Validate() error {
	list := problems(l)
	if !l.LoanDate.IsZero() && !l.DueDate.IsZero() && !DateOf(l.DueDate).After(DateOf(l.LoanDate)) {
		list = append(list, "due date must be after loan date")
	}
	if l.ReturnDate != nil && !l.LoanDate.IsZero() && DateOf(*l.ReturnDate).Before(DateOf(l.LoanDate)) {
		list = append(list, "return date cannot be before loan date")
	}
	return invalid(list)
}
