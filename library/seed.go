package library

import (
	"fmt"
	"time"
)

// SeedReport counts the rows a Seed call managed to write.
type SeedReport struct {
	Books   int
	Authors int
	Members int
	Links   int
	Loans   int
}

func (s SeedReport) String() string {
	return fmt.Sprintf("%d books, %d authors, %d links, %d members, %d loans",
		s.Books, s.Authors, s.Links, s.Members, s.Loans)
}

type seedBook struct {
	book    Book
	authors []string // "First Last", must appear in seedAuthors
}

var seedAuthors = []Author{
	{FirstName: "Terry", LastName: "Pratchett"},
	{FirstName: "Neil", LastName: "Gaiman"},
	{FirstName: "J.R.R.", LastName: "Tolkien"},
	{FirstName: "George", LastName: "Orwell"},
	{FirstName: "Jane", LastName: "Austen"},
	{FirstName: "Mary", LastName: "Shelley"},
}

var seedBooks = []seedBook{
	{Book{Title: "Good Omens", ISBN: "978-0060853983", YearPublished: 1990}, []string{"Terry Pratchett", "Neil Gaiman"}},
	{Book{Title: "The Hobbit", ISBN: "978-0547928227", YearPublished: 1937}, []string{"J.R.R. Tolkien"}},
	{Book{Title: "1984", ISBN: "978-0451524935", YearPublished: 1949}, []string{"George Orwell"}},
	{Book{Title: "Animal Farm", ISBN: "978-0451526342", YearPublished: 1945}, []string{"George Orwell"}},
	{Book{Title: "Pride and Prejudice", ISBN: "978-0141439518", YearPublished: 1813}, []string{"Jane Austen"}},
	{Book{Title: "Frankenstein", YearPublished: 1818}, []string{"Mary Shelley"}},
	{Book{Title: "Mort", ISBN: "978-0062225719", YearPublished: 1987}, []string{"Terry Pratchett"}},
}

var seedMembers = []Member{
	{FirstName: "Alice", LastName: "Smith", Email: "alice.smith@school.example.org", Category: CategoryStudent},
	{FirstName: "Ben", LastName: "Okafor", Email: "b.okafor@school.example.org", Category: CategoryStudent},
	{FirstName: "Chloe", LastName: "Nguyen", Email: "c.nguyen@school.example.org", Category: CategoryTeacher},
	{FirstName: "David", LastName: "Price", Email: "d.price@school.example.org", Category: CategoryStaff},
}

// seedLoan offsets are days relative to the seeding date.
type seedLoan struct {
	title        string
	member       string
	loanOffset   int
	dueOffset    int
	returnOffset int
	returned     bool
}

var seedLoans = []seedLoan{
	{title: "1984", member: "Alice Smith", loanOffset: -10, dueOffset: 4},
	{title: "The Hobbit", member: "Ben Okafor", loanOffset: -20, dueOffset: -5},
	{title: "Good Omens", member: "Chloe Nguyen", loanOffset: -30, dueOffset: -16, returnOffset: -18, returned: true},
	{title: "Pride and Prejudice", member: "David Price", loanOffset: -3, dueOffset: 11},
	{title: "Animal Farm", member: "Alice Smith", loanOffset: -40, dueOffset: -26, returnOffset: -20, returned: true},
}

// Seed fills an empty store with sample books, authors, members and loans
// dated relative to today. Rows are written one statement at a time with no
// enclosing transaction: if a step fails, the rows written before it stay
// and the report says how far it got.
func (lm *LibraryManager) Seed(today time.Time) (SeedReport, error) {
	var rep SeedReport
	today = DateOf(today)

	authorIDs := make(map[string]int64, len(seedAuthors))
	for _, a := range seedAuthors {
		id, err := lm.Authors.Insert(&a)
		if err != nil {
			return rep, fmt.Errorf("seed author %s: %w", a.FullName(), err)
		}
		authorIDs[a.FullName()] = id
		rep.Authors++
	}

	bookIDs := make(map[string]int64, len(seedBooks))
	for _, sb := range seedBooks {
		b := sb.book
		id, err := lm.Books.Insert(&b)
		if err != nil {
			return rep, fmt.Errorf("seed book %q: %w", b.Title, err)
		}
		bookIDs[b.Title] = id
		rep.Books++
		for _, name := range sb.authors {
			if err := lm.BookAuthors.Link(id, authorIDs[name]); err != nil {
				return rep, fmt.Errorf("seed link %q/%s: %w", b.Title, name, err)
			}
			rep.Links++
		}
	}

	memberIDs := make(map[string]int64, len(seedMembers))
	for _, m := range seedMembers {
		id, err := lm.Members.Insert(&m)
		if err != nil {
			return rep, fmt.Errorf("seed member %s: %w", m.FullName(), err)
		}
		memberIDs[m.FullName()] = id
		rep.Members++
	}

	for _, sl := range seedLoans {
		loan := Loan{
			BookID:   bookIDs[sl.title],
			MemberID: memberIDs[sl.member],
			LoanDate: today.AddDate(0, 0, sl.loanOffset),
			DueDate:  today.AddDate(0, 0, sl.dueOffset),
		}
		if sl.returned {
			r := today.AddDate(0, 0, sl.returnOffset)
			loan.ReturnDate = &r
		}
		if _, err := lm.Loans.Insert(&loan); err != nil {
			return rep, fmt.Errorf("seed loan %q to %s: %w", sl.title, sl.member, err)
		}
		rep.Loans++
	}
	return rep, nil
}
