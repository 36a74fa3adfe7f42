package library

import (
	"errors"
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempDB(t *testing.T) *Database {
	t.Helper()
	dir := t.TempDir()
	db, err := NewDatabase(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("new db: %v", err)
	}
	db.SetLogger(log.New(io.Discard, "", 0))
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEnsureSchemaCreatesFiveTables(t *testing.T) {
	db := tempDB(t)

	tables, err := db.Tables()
	require.NoError(t, err)
	assert.ElementsMatch(t, schemaTables, tables)
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	db := tempDB(t)
	books := NewBookRepository(db)
	_, err := books.Insert(&Book{Title: "Kept", YearPublished: 2001})
	require.NoError(t, err)

	require.NoError(t, db.EnsureSchema())
	require.NoError(t, db.EnsureSchema())

	tables, err := db.Tables()
	require.NoError(t, err)
	assert.ElementsMatch(t, schemaTables, tables)

	all, err := books.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 1, "existing rows survive a second EnsureSchema")
}

func TestReopenExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lib.db")
	db, err := NewDatabase(path)
	require.NoError(t, err)
	db.SetLogger(log.New(io.Discard, "", 0))
	_, err = NewAuthorRepository(db).Insert(&Author{FirstName: "Ada", LastName: "Lovelace"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = NewDatabase(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	authors, err := NewAuthorRepository(db).GetAll()
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, "Lovelace", authors[0].LastName)
}

// Values travel as bound parameters, so SQL in user input is just text.
func TestUserInputIsNeverInterpolated(t *testing.T) {
	db := tempDB(t)
	books := NewBookRepository(db)
	hostile := `Robert'); DROP TABLE books;--`

	id, err := books.Insert(&Book{Title: hostile, ISBN: `' OR '1'='1`, YearPublished: 1999})
	require.NoError(t, err)

	got, ok, err := books.GetByID(id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, hostile, got.Title)
	assert.Equal(t, `' OR '1'='1`, got.ISBN)

	tables, err := db.Tables()
	require.NoError(t, err)
	assert.Contains(t, tables, "books")

	res, err := NewLoanReports(db).Search(`' OR 1=1 --`)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestEngineFailuresSurfaceAsStorageErrors(t *testing.T) {
	db := tempDB(t)
	require.NoError(t, db.Close())

	_, err := NewBookRepository(db).GetAll()
	assert.True(t, errors.Is(err, ErrStorage))

	_, err = NewMemberRepository(db).Insert(&Member{FirstName: "A", LastName: "B", Email: "a@b.co", Category: CategoryStaff})
	assert.ErrorIs(t, err, ErrStorage)

	assert.ErrorIs(t, db.EnsureSchema(), ErrStorage)
}
