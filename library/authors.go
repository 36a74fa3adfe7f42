package library

import (
	"database/sql"
	"errors"
)

// AuthorRepository runs the author CRUD statements.
type AuthorRepository struct {
	d *Database
}

// NewAuthorRepository binds a repository to d.
func NewAuthorRepository(d *Database) *AuthorRepository { return &AuthorRepository{d: d} }

const authorColumns = `id, first_name, last_name`

func scanAuthor(s rowScanner) (Author, error) {
	var a Author
	err := s.Scan(&a.ID, &a.FirstName, &a.LastName)
	return a, err
}

// GetAll returns every author ordered by last then first name.
func (r *AuthorRepository) GetAll() ([]Author, error) {
	return queryAuthors(r.d, "list authors",
		`SELECT `+authorColumns+` FROM authors ORDER BY last_name COLLATE NOCASE, first_name COLLATE NOCASE, id`)
}

// GetByID looks a single author up. ok is false when no row matches.
func (r *AuthorRepository) GetByID(id int64) (a Author, ok bool, err error) {
	a, err = scanAuthor(r.d.db.QueryRow(`SELECT `+authorColumns+` FROM authors WHERE id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Author{}, false, nil
	}
	if err != nil {
		return Author{}, false, r.d.fail("get author", err)
	}
	return a, true, nil
}

// Insert validates a, stores it and writes the new id back into a.
func (r *AuthorRepository) Insert(a *Author) (int64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	res, err := r.d.db.Exec(`INSERT INTO authors(first_name, last_name) VALUES(?,?)`, a.FirstName, a.LastName)
	id, err := r.d.inserted("insert author", res, err)
	if err != nil {
		return 0, err
	}
	a.ID = id
	return id, nil
}

// Update overwrites the names of the row with a.ID.
func (r *AuthorRepository) Update(a Author) (bool, error) {
	if err := a.Validate(); err != nil {
		return false, err
	}
	res, err := r.d.db.Exec(`UPDATE authors SET first_name=?, last_name=? WHERE id=?`, a.FirstName, a.LastName, a.ID)
	return r.d.affected("update author", res, err)
}

// Delete removes the author and, through the cascade, its book links.
func (r *AuthorRepository) Delete(id int64) (bool, error) {
	res, err := r.d.db.Exec(`DELETE FROM authors WHERE id=?`, id)
	return r.d.affected("delete author", res, err)
}

func queryAuthors(d *Database, op, q string, args ...any) ([]Author, error) {
	rows, err := d.db.Query(q, args...)
	if err != nil {
		return nil, d.fail(op, err)
	}
	defer rows.Close()

	authors := []Author{}
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, d.fail(op, err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, d.fail(op, err)
	}
	return authors, nil
}
