package handlers

import (
	"bytes"
	"database/sql"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/username/propledger/backend/src/database"
	"github.com/username/propledger/backend/src/model"
	"github.com/username/propledger/backend/src/security"
)

func int64Ptr(v int64) *int64 { return &v }

func adminOf(companyID int64) *model.User {
	return &model.User{ID: 1, Username: "gestora", Role: security.RoleAdministrador, CompanyID: int64Ptr(companyID)}
}

func superAdmin() *model.User {
	return &model.User{ID: 2, Username: "root", Role: security.RoleSuperAdmin}
}

// asUser attaches user to r the way AuthMiddleware does.
func asUser(r *http.Request, user *model.User) *http.Request {
	return r.WithContext(WithUser(r.Context(), user))
}

func uploadRequest(t *testing.T, target, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// useTestDB points the package-level handle at a fresh migrated database.
func useTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "handlers.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	previous := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = previous
		db.Close()
	})
	return db
}
