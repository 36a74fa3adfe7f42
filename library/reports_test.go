package library

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportFixture struct {
	reports    *LoanReports
	loans      *LoanRepository
	today      time.Time
	book1984   int64
	bookHobbit int64
	alice      int64
	bob        int64
}

func newReportFixture(t *testing.T) reportFixture {
	t.Helper()
	db := tempDB(t)
	books := NewBookRepository(db)
	members := NewMemberRepository(db)

	b1 := Book{Title: "1984", ISBN: "978-0451524935", YearPublished: 1949}
	b2 := Book{Title: "The Hobbit", ISBN: "978-0547928227", YearPublished: 1937}
	for _, b := range []*Book{&b1, &b2} {
		_, err := books.Insert(b)
		require.NoError(t, err)
	}
	alice := Member{FirstName: "Alice", LastName: "Smith", Email: "alice@school.org", Category: CategoryStudent}
	bob := Member{FirstName: "Bob", LastName: "Jones", Email: "bob@school.org", Category: CategoryTeacher}
	for _, m := range []*Member{&alice, &bob} {
		_, err := members.Insert(m)
		require.NoError(t, err)
	}

	return reportFixture{
		reports:    NewLoanReports(db),
		loans:      NewLoanRepository(db),
		today:      Today(),
		book1984:   b1.ID,
		bookHobbit: b2.ID,
		alice:      alice.ID,
		bob:        bob.ID,
	}
}

func (f reportFixture) lend(t *testing.T, book, member int64, loanOffset, dueOffset int, returnOffset *int) int64 {
	t.Helper()
	l := Loan{
		BookID:   book,
		MemberID: member,
		LoanDate: f.today.AddDate(0, 0, loanOffset),
		DueDate:  f.today.AddDate(0, 0, dueOffset),
	}
	if returnOffset != nil {
		r := f.today.AddDate(0, 0, *returnOffset)
		l.ReturnDate = &r
	}
	id, err := f.loans.Insert(&l)
	require.NoError(t, err)
	return id
}

func offset(n int) *int { return &n }

func TestOverdueLoanShowsInActiveLoans(t *testing.T) {
	f := newReportFixture(t)
	id := f.lend(t, f.bookHobbit, f.bob, -20, -5, nil)

	active, err := f.reports.ActiveLoans()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, id, active[0].ID)
	assert.Equal(t, StatusOverdue, active[0].Status(f.today))
	assert.True(t, active[0].IsOverdue(f.today))
	assert.Equal(t, -5, active[0].DaysUntilDue(f.today))

	overdue, err := f.reports.OverdueLoans(f.today)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, id, overdue[0].ID)
}

func TestActiveLoansExcludeReturnedAndSortByDueDate(t *testing.T) {
	f := newReportFixture(t)
	later := f.lend(t, f.book1984, f.alice, -1, 13, nil)
	sooner := f.lend(t, f.bookHobbit, f.bob, -10, 4, nil)
	f.lend(t, f.book1984, f.bob, -30, -16, offset(-17))

	active, err := f.reports.ActiveLoans()
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, sooner, active[0].ID)
	assert.Equal(t, later, active[1].ID)
	for _, l := range active {
		assert.Equal(t, StatusOnLoan, l.Status(f.today))
	}
}

func TestReturnedDominatesOverdueInProjection(t *testing.T) {
	f := newReportFixture(t)
	f.lend(t, f.book1984, f.alice, -30, -16, offset(-2))

	all, err := f.reports.AllLoansWithDetails()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, StatusReturned, all[0].Status(f.today))
	assert.Zero(t, all[0].DaysUntilDue(f.today))
}

func TestAllLoansWithDetailsDenormalises(t *testing.T) {
	f := newReportFixture(t)
	old := f.lend(t, f.bookHobbit, f.bob, -40, -26, offset(-30))
	recent := f.lend(t, f.book1984, f.alice, -2, 12, nil)

	all, err := f.reports.AllLoansWithDetails()
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.Equal(t, recent, all[0].ID)
	assert.Equal(t, "1984", all[0].BookTitle)
	assert.Equal(t, "978-0451524935", all[0].BookISBN)
	assert.Equal(t, "Alice Smith", all[0].MemberName())
	assert.Equal(t, "alice@school.org", all[0].MemberEmail)
	assert.Equal(t, CategoryStudent, all[0].MemberCategory)

	assert.Equal(t, old, all[1].ID)
	assert.Equal(t, "The Hobbit", all[1].BookTitle)
	assert.Equal(t, CategoryTeacher, all[1].MemberCategory)
}

func TestSearchMatchesTitleOrMemberName(t *testing.T) {
	f := newReportFixture(t)
	target := f.lend(t, f.book1984, f.alice, -3, 11, nil)
	f.lend(t, f.bookHobbit, f.bob, -3, 11, nil)

	for _, term := range []string{"1984", "alice", "ALICE", "smi", " 198 "} {
		res, err := f.reports.Search(term)
		require.NoError(t, err, term)
		require.Len(t, res, 1, term)
		assert.Equal(t, target, res[0].ID, term)
	}

	res, err := f.reports.Search("o")
	require.NoError(t, err)
	assert.Len(t, res, 1, "only Bob Jones / The Hobbit contain an o")

	res, err = f.reports.Search("nobody")
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestSearchFoldsNonASCIICase(t *testing.T) {
	f := newReportFixture(t)
	emile := Member{FirstName: "Émile", LastName: "Zola", Email: "emile@school.org", Category: CategoryTeacher}
	_, err := NewMemberRepository(f.loans.d).Insert(&emile)
	require.NoError(t, err)
	target := f.lend(t, f.bookHobbit, emile.ID, -3, 11, nil)
	f.lend(t, f.book1984, f.alice, -3, 11, nil)

	for _, term := range []string{"émile", "ÉMILE", "Émile", "mile"} {
		res, err := f.reports.Search(term)
		require.NoError(t, err, term)
		require.Len(t, res, 1, term)
		assert.Equal(t, target, res[0].ID, term)
	}
}

func TestSearchBlankTermReturnsEverything(t *testing.T) {
	f := newReportFixture(t)
	f.lend(t, f.book1984, f.alice, -3, 11, nil)
	f.lend(t, f.bookHobbit, f.bob, -5, 9, nil)

	all, err := f.reports.AllLoansWithDetails()
	require.NoError(t, err)
	for _, term := range []string{"", "   ", "\t"} {
		res, err := f.reports.Search(term)
		require.NoError(t, err)
		assert.Equal(t, all, res)
	}
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	f := newReportFixture(t)
	f.lend(t, f.book1984, f.alice, -3, 11, nil)

	for _, term := range []string{"%", "_", `\`} {
		res, err := f.reports.Search(term)
		require.NoError(t, err)
		assert.Empty(t, res, "term %q", term)
	}
}

func TestFilterByStatus(t *testing.T) {
	f := newReportFixture(t)
	onLoan := f.lend(t, f.book1984, f.alice, -3, 11, nil)
	overdue := f.lend(t, f.bookHobbit, f.bob, -20, -5, nil)
	returned := f.lend(t, f.book1984, f.bob, -30, -16, offset(-20))

	all, err := f.reports.AllLoansWithDetails()
	require.NoError(t, err)

	ids := func(loans []LoanWithDetails) []int64 {
		var out []int64
		for _, l := range loans {
			out = append(out, l.ID)
		}
		return out
	}
	assert.Equal(t, []int64{onLoan}, ids(FilterByStatus(all, StatusOnLoan, f.today)))
	assert.Equal(t, []int64{overdue}, ids(FilterByStatus(all, StatusOverdue, f.today)))
	assert.Equal(t, []int64{returned}, ids(FilterByStatus(all, StatusReturned, f.today)))

	// Status is recomputed per call: earlier on, the overdue loan was not yet due.
	earlier := f.today.AddDate(0, 0, -19)
	assert.Contains(t, ids(FilterByStatus(all, StatusOnLoan, earlier)), overdue)
}
