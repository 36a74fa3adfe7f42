package library

import (
	"database/sql"
	"errors"
)

// MemberRepository runs the member CRUD statements.
type MemberRepository struct {
	d *Database
}

// NewMemberRepository binds a repository to d.
func NewMemberRepository(d *Database) *MemberRepository { return &MemberRepository{d: d} }

const memberColumns = `id, first_name, last_name, email, category`

func scanMember(s rowScanner) (Member, error) {
	var m Member
	err := s.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.Category)
	return m, err
}

// GetAll returns every member ordered by last then first name.
func (r *MemberRepository) GetAll() ([]Member, error) {
	rows, err := r.d.db.Query(`SELECT ` + memberColumns + ` FROM members ORDER BY last_name COLLATE NOCASE, first_name COLLATE NOCASE, id`)
	if err != nil {
		return nil, r.d.fail("list members", err)
	}
	defer rows.Close()

	members := []Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, r.d.fail("list members", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, r.d.fail("list members", err)
	}
	return members, nil
}

// GetByID looks a single member up. ok is false when no row matches.
func (r *MemberRepository) GetByID(id int64) (m Member, ok bool, err error) {
	m, err = scanMember(r.d.db.QueryRow(`SELECT `+memberColumns+` FROM members WHERE id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Member{}, false, nil
	}
	if err != nil {
		return Member{}, false, r.d.fail("get member", err)
	}
	return m, true, nil
}

// Insert validates m, stores it and writes the new id back into m.
func (r *MemberRepository) Insert(m *Member) (int64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	res, err := r.d.db.Exec(`INSERT INTO members(first_name, last_name, email, category) VALUES(?,?,?,?)`,
		m.FirstName, m.LastName, m.Email, string(m.Category))
	id, err := r.d.inserted("insert member", res, err)
	if err != nil {
		return 0, err
	}
	m.ID = id
	return id, nil
}

// Update overwrites every column of the row with m.ID.
func (r *MemberRepository) Update(m Member) (bool, error) {
	if err := m.Validate(); err != nil {
		return false, err
	}
	res, err := r.d.db.Exec(`UPDATE members SET first_name=?, last_name=?, email=?, category=? WHERE id=?`,
		m.FirstName, m.LastName, m.Email, string(m.Category), m.ID)
	return r.d.affected("update member", res, err)
}

// Delete removes the member. Members with loans on record are refused by the
// loans foreign key.
func (r *MemberRepository) Delete(id int64) (bool, error) {
	res, err := r.d.db.Exec(`DELETE FROM members WHERE id=?`, id)
	return r.d.affected("delete member", res, err)
}
