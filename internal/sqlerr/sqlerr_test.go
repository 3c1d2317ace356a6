package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/deppfellow/tacomemo/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE tags (id INTEGER PRIMARY KEY, name TEXT NOT NULL UNIQUE)`)
	require.NoError(t, err)

	return db
}

func TestHandleError_UniqueViolation(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO tags (name) VALUES ('tacos')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO tags (name) VALUES ('tacos')`)
	require.Error(t, err)

	assert.Equal(t, UniqueViolation, ErrCode(err))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, HandleError(err), &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "TAG_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Tag with this Name already exists", httpErr.Message)
}

func TestHandleError_NotNullViolation(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO tags (name) VALUES (NULL)`)
	require.Error(t, err)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, HandleError(err), &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "TAG_REQUIRED", httpErr.Code)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "name", httpErr.Errors[0].Field)
}

func TestHandleError_NoRows(t *testing.T) {
	err := HandleError(fmt.Errorf("get image: %w", sql.ErrNoRows))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestHandleError_PassesHTTPErrorsThrough(t *testing.T) {
	original := errs.NewNotFoundError("No image found with that ID.", true, nil)

	assert.Same(t, original, HandleError(original))
}

func TestHandleError_Unknown(t *testing.T) {
	var httpErr *errs.HTTPError
	require.ErrorAs(t, HandleError(errors.New("disk on fire")), &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, Other, ErrCode(errors.New("disk on fire")))
}
