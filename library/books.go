package library

import (
	"database/sql"
	"errors"
)

// BookRepository runs the book CRUD statements.
type BookRepository struct {
	d *Database
}

// NewBookRepository binds a repository to d.
func NewBookRepository(d *Database) *BookRepository { return &BookRepository{d: d} }

const bookColumns = `id, title, COALESCE(isbn,''), year_published`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(s rowScanner) (Book, error) {
	var b Book
	err := s.Scan(&b.ID, &b.Title, &b.ISBN, &b.YearPublished)
	return b, err
}

// GetAll returns every book ordered by title.
func (r *BookRepository) GetAll() ([]Book, error) {
	return queryBooks(r.d, "list books", `SELECT `+bookColumns+` FROM books ORDER BY title COLLATE NOCASE, id`)
}

// GetByID looks a single book up. ok is false when no row matches.
func (r *BookRepository) GetByID(id int64) (b Book, ok bool, err error) {
	b, err = scanBook(r.d.db.QueryRow(`SELECT `+bookColumns+` FROM books WHERE id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Book{}, false, nil
	}
	if err != nil {
		return Book{}, false, r.d.fail("get book", err)
	}
	return b, true, nil
}

// Insert validates b, stores it and writes the new id back into b.
func (r *BookRepository) Insert(b *Book) (int64, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	res, err := r.d.db.Exec(`INSERT INTO books(title, isbn, year_published) VALUES(?,?,?)`,
		b.Title, nullableText(b.ISBN), b.YearPublished)
	id, err := r.d.inserted("insert book", res, err)
	if err != nil {
		return 0, err
	}
	b.ID = id
	return id, nil
}

// Update overwrites every column of the row with b.ID.
func (r *BookRepository) Update(b Book) (bool, error) {
	if err := b.Validate(); err != nil {
		return false, err
	}
	res, err := r.d.db.Exec(`UPDATE books SET title=?, isbn=?, year_published=? WHERE id=?`,
		b.Title, nullableText(b.ISBN), b.YearPublished, b.ID)
	return r.d.affected("update book", res, err)
}

// Delete removes the book; its author links go with it. Books that still
// have loans are refused by the loans foreign key.
func (r *BookRepository) Delete(id int64) (bool, error) {
	res, err := r.d.db.Exec(`DELETE FROM books WHERE id=?`, id)
	return r.d.affected("delete book", res, err)
}

func queryBooks(d *Database, op, q string, args ...any) ([]Book, error) {
	rows, err := d.db.Query(q, args...)
	if err != nil {
		return nil, d.fail(op, err)
	}
	defer rows.Close()

	books := []Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, d.fail(op, err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, d.fail(op, err)
	}
	return books, nil
}

// nullableText stores empty optional text as NULL.
func nullableText(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
