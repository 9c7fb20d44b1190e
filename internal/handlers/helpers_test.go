package handlers_test

import (
	"CurtainSamples/internal/config"
	"CurtainSamples/internal/handlers"
	"CurtainSamples/internal/repo"
	"CurtainSamples/internal/service"
	"CurtainSamples/internal/storage"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	router    http.Handler
	cfg       *config.Config
	catalog   *service.CatalogService
	uploadDir string
}

// newTestEnv поднимает роутер на SQLite-файле и локальном каталоге загрузок во временной директории.
func newTestEnv(t *testing.T, rateLimit int) *testEnv {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		AuthSecret:     "test-secret",
		UploadDir:      filepath.Join(dir, "uploads"),
		UploadBackend:  config.UploadBackendLocal,
		AdminLogin:     "admin",
		AdminPassword:  "admin123",
		CORSOrigins:    []string{"*"},
		LoginRateLimit: rateLimit,
	}
	logger := zap.NewNop().Sugar()

	db, err := repo.InitDB(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	st, err := storage.New(context.Background(), cfg)
	require.NoError(t, err)

	userSvc := service.NewUserService(repo.NewUserRepository(db))
	_, err = userSvc.EnsureAdmin(context.Background(), cfg.AdminLogin, cfg.AdminPassword)
	require.NoError(t, err)
	catalog := service.NewCatalogService(repo.NewCategoryRepository(db), repo.NewCurtainRepository(db), logger)
	images := service.NewImageService(st, logger)

	h := handlers.NewHandler(userSvc, catalog, images, logger, cfg)
	return &testEnv{router: h.Router, cfg: cfg, catalog: catalog, uploadDir: cfg.UploadDir}
}

func (e *testEnv) do(t *testing.T, method, path string, body io.Reader, contentType, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) doJSON(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	return e.do(t, method, path, r, "application/json", token)
}

// login входит под администратором и возвращает токен.
func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	rr := e.doJSON(t, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"admin123"}`, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// createCategory создаёт категорию через API и возвращает её id.
func (e *testEnv) createCategory(t *testing.T, token, name string) int64 {
	t.Helper()
	rr := e.doJSON(t, http.MethodPost, "/api/categories", `{"name":"`+name+`"}`, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var c struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &c))
	return c.ID
}

func decodeMap(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m), rr.Body.String())
	return m
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var l []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &l), rr.Body.String())
	return l
}

// multipartBody собирает multipart-форму; file == nil означает форму без поля image.
func multipartBody(t *testing.T, fields map[string]string, filename string, file []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		fw, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}
