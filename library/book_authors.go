package library

// BookAuthorRepository maintains the book_authors junction table.
type BookAuthorRepository struct {
	d *Database
}

// NewBookAuthorRepository binds a repository to d.
func NewBookAuthorRepository(d *Database) *BookAuthorRepository {
	return &BookAuthorRepository{d: d}
}

// Link associates a book with an author. Linking an existing pair again
// succeeds without adding a second row.
func (r *BookAuthorRepository) Link(bookID, authorID int64) error {
	if _, err := r.d.db.Exec(`INSERT OR IGNORE INTO book_authors(book_id, author_id) VALUES(?,?)`, bookID, authorID); err != nil {
		return r.d.fail("link book author", err)
	}
	return nil
}

// Unlink removes the pair and reports whether it existed.
func (r *BookAuthorRepository) Unlink(bookID, authorID int64) (bool, error) {
	res, err := r.d.db.Exec(`DELETE FROM book_authors WHERE book_id=? AND author_id=?`, bookID, authorID)
	return r.d.affected("unlink book author", res, err)
}

// AuthorsOf lists the authors of a book by last then first name.
func (r *BookAuthorRepository) AuthorsOf(bookID int64) ([]Author, error) {
	return queryAuthors(r.d, "list book authors", `
        SELECT a.id, a.first_name, a.last_name
        FROM authors a
        JOIN book_authors ba ON ba.author_id = a.id
        WHERE ba.book_id = ?
        ORDER BY a.last_name COLLATE NOCASE, a.first_name COLLATE NOCASE, a.id`, bookID)
}

// BooksOf lists the books of an author by title.
func (r *BookAuthorRepository) BooksOf(authorID int64) ([]Book, error) {
	return queryBooks(r.d, "list author books", `
        SELECT b.id, b.title, COALESCE(b.isbn,''), b.year_published
        FROM books b
        JOIN book_authors ba ON ba.book_id = b.id
        WHERE ba.author_id = ?
        ORDER BY b.title COLLATE NOCASE, b.id`, authorID)
}
