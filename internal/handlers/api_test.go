package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"weight-tracker-backend/internal/blob"
	"weight-tracker-backend/internal/config"
	"weight-tracker-backend/internal/handlers"
	"weight-tracker-backend/internal/models"
	"weight-tracker-backend/internal/repository"
	"weight-tracker-backend/internal/services"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	db, err := repository.Open(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(dir, "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	blobs, err := blob.NewDiskStore(filepath.Join(dir, "photos"))
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	weightRepo := repository.NewWeightRepository(db)
	photoRepo := repository.NewPhotoRepository(db)

	router := handlers.NewRouter(
		handlers.NewUserHandler(services.NewUserService(userRepo, blobs)),
		handlers.NewWeightHandler(services.NewWeightService(userRepo, weightRepo)),
		handlers.NewPhotoHandler(services.NewPhotoService(userRepo, photoRepo, blobs)),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func createUser(t *testing.T, srv *httptest.Server, name string) models.User {
	t.Helper()
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/users", map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[models.User](t, resp)
}

func TestUserEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, decodeBody[[]models.User](t, resp))

	user := createUser(t, srv, "alice")
	require.Equal(t, "alice", user.Name)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/users", map[string]string{"name": "alice"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := decodeBody[handlers.ErrorResponse](t, resp)
	require.NotEmpty(t, errBody.Error)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/users", map[string]string{"name": ""})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decodeBody[[]models.User](t, resp), 1)

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/users/%d", srv.URL, user.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/users/%d", srv.URL, user.ID), nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestWeightEndpoints(t *testing.T) {
	srv := newTestServer(t)
	user := createUser(t, srv, "alice")
	weightURL := fmt.Sprintf("%s/api/users/%d/weight", srv.URL, user.ID)

	resp := doJSON(t, http.MethodPost, weightURL, map[string]any{"weight": 72.5, "date": "2024-01-15T08:30:00Z"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	record := decodeBody[models.WeightRecord](t, resp)
	require.Equal(t, 72.5, record.Weight)

	// Duplicate exact date
	resp = doJSON(t, http.MethodPost, weightURL, map[string]any{"weight": 70.0, "date": "2024-01-15T08:30:00Z"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Validation failures
	for _, payload := range []map[string]any{
		{"date": "2024-01-16"},
		{"weight": -1.0, "date": "2024-01-16"},
		{"weight": 70.0},
		{"weight": 70.0, "date": "garbage"},
	} {
		resp = doJSON(t, http.MethodPost, weightURL, payload)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, "payload %v", payload)
		resp.Body.Close()
	}

	// Unknown user
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/users/999/weight", map[string]any{"weight": 70.0, "date": "2024-01-16"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Partial update: weight only, date unchanged
	recordURL := fmt.Sprintf("%s/%d", weightURL, record.ID)
	resp = doJSON(t, http.MethodPut, recordURL, map[string]any{"weight": 71.0})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[models.WeightRecord](t, resp)
	require.Equal(t, 71.0, updated.Weight)
	require.Equal(t, record.Date.UnixNano(), updated.Date.UnixNano())

	resp = doJSON(t, http.MethodGet, weightURL+"?time_range=all", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	records := decodeBody[[]models.WeightRecord](t, resp)
	require.Len(t, records, 1)

	resp = doJSON(t, http.MethodDelete, recordURL, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodDelete, recordURL, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func uploadPhoto(t *testing.T, srv *httptest.Server, userID int64, filename, date string, data []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	if date != "" {
		require.NoError(t, mw.WriteField("date", date))
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/api/users/%d/photos", srv.URL, userID), &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestPhotoEndpoints(t *testing.T) {
	srv := newTestServer(t)
	user := createUser(t, srv, "alice")
	data := []byte("fake jpeg bytes")

	// Upload without a file part
	resp := uploadPhoto(t, srv, user.ID, "", "2024-01-15", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Upload without a date
	resp = uploadPhoto(t, srv, user.ID, "a.jpg", "", data)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Valid upload
	resp = uploadPhoto(t, srv, user.ID, "progress.jpg", "2024-01-15", data)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	photo := decodeBody[models.Photo](t, resp)
	require.NotZero(t, photo.ID)

	// Listing returns it with a derived URL
	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/users/%d/photos", srv.URL, user.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	photos := decodeBody[[]models.Photo](t, resp)
	require.Len(t, photos, 1)
	require.Equal(t, fmt.Sprintf("/api/photos/%d", photo.ID), photos[0].ImageURL)

	// The derived URL serves the identical bytes inline
	resp = doJSON(t, http.MethodGet, srv.URL+photos[0].ImageURL, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "image/jpeg")
	served, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, data, served)

	// And as a download attachment
	resp = doJSON(t, http.MethodGet, srv.URL+photos[0].ImageURL+"/download", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, strings.HasPrefix(resp.Header.Get("Content-Disposition"), "attachment"))
	served, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, data, served)

	// Delete, then delete again
	photoURL := fmt.Sprintf("%s/api/photos/%d", srv.URL, photo.ID)
	resp = doJSON(t, http.MethodDelete, photoURL, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodDelete, photoURL, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+photos[0].ImageURL, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/users", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
