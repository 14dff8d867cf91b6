package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/inkwell-backend/internal/common"
	"github.com/inkwell/inkwell-backend/internal/domain"
)

type mockVersionService struct {
	mock.Mock
}

func (m *mockVersionService) CreateVersion(blogID, userID string, changeNote *string) (*domain.BlogVersion, error) {
	args := m.Called(blogID, userID, changeNote)
	if v := args.Get(0); v != nil {
		return v.(*domain.BlogVersion), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVersionService) GetVersions(blogID string) ([]*domain.BlogVersion, error) {
	args := m.Called(blogID)
	if v := args.Get(0); v != nil {
		return v.([]*domain.BlogVersion), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVersionService) GetVersion(versionID string) (*domain.BlogVersion, error) {
	args := m.Called(versionID)
	if v := args.Get(0); v != nil {
		return v.(*domain.BlogVersion), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockVersionService) RestoreVersion(blogID, versionID, userID string) error {
	args := m.Called(blogID, versionID, userID)
	return args.Error(0)
}

func (m *mockVersionService) CompareVersions(versionID1, versionID2 string) (*domain.VersionComparison, error) {
	args := m.Called(versionID1, versionID2)
	if v := args.Get(0); v != nil {
		return v.(*domain.VersionComparison), args.Error(1)
	}
	return nil, args.Error(1)
}

func setupVersionRouter(svc *mockVersionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewVersionHandler(svc)

	r := gin.New()
	r.GET("/api/v1/blogs/:id/versions", h.List)
	r.POST("/api/v1/blogs/:id/versions", h.Create)
	r.GET("/api/v1/blogs/:id/versions/:version_id", h.Get)
	r.GET("/api/v1/blogs/:id/versions/:version_id/diff/:other_id", h.Diff)
	r.POST("/api/v1/blogs/:id/versions/:version_id/restore", h.Restore)
	return r
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) common.APIResponse {
	t.Helper()
	var resp common.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestVersionHandlerList(t *testing.T) {
	svc := new(mockVersionService)
	svc.On("GetVersions", "blog-1").Return([]*domain.BlogVersion{
		{ID: "v-2", BlogID: "blog-1", Version: 2},
		{ID: "v-1", BlogID: "blog-1", Version: 1},
	}, nil)

	router := setupVersionRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/blogs/blog-1/versions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Nil(t, resp.Error)
	assert.NotNil(t, resp.Data)
	svc.AssertExpectations(t)
}

func TestVersionHandlerCreate(t *testing.T) {
	svc := new(mockVersionService)
	svc.On("CreateVersion", "blog-1", "", (*string)(nil)).
		Return(&domain.BlogVersion{ID: "v-1", BlogID: "blog-1", Version: 1}, nil)

	router := setupVersionRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/blogs/blog-1/versions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestVersionHandlerCreateBlogNotFound(t *testing.T) {
	svc := new(mockVersionService)
	svc.On("CreateVersion", "missing", "", (*string)(nil)).
		Return(nil, common.ErrBlogNotFound)

	router := setupVersionRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/blogs/missing/versions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestVersionHandlerGetWrongBlog(t *testing.T) {
	svc := new(mockVersionService)
	svc.On("GetVersion", "v-1").
		Return(&domain.BlogVersion{ID: "v-1", BlogID: "other-blog", Version: 1}, nil)

	router := setupVersionRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/blogs/blog-1/versions/v-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVersionHandlerDiff(t *testing.T) {
	svc := new(mockVersionService)
	svc.On("CompareVersions", "v-1", "v-2").Return(&domain.VersionComparison{
		Version1: &domain.BlogVersion{ID: "v-1"},
		Version2: &domain.BlogVersion{ID: "v-2"},
		Diff:     &domain.DiffResult{},
		Summary:  "No changes",
	}, nil)

	router := setupVersionRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/blogs/blog-1/versions/v-1/diff/v-2", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Nil(t, resp.Error)
	svc.AssertExpectations(t)
}

func TestVersionHandlerDiffMismatch(t *testing.T) {
	svc := new(mockVersionService)
	svc.On("CompareVersions", "v-1", "v-other").Return(nil, common.ErrVersionMismatch)

	router := setupVersionRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/blogs/blog-1/versions/v-1/diff/v-other", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
}

func TestVersionHandlerRestore(t *testing.T) {
	svc := new(mockVersionService)
	svc.On("RestoreVersion", "blog-1", "v-1", "").Return(nil)

	router := setupVersionRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/blogs/blog-1/versions/v-1/restore", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestVersionHandlerRestoreErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"version not found", common.ErrVersionNotFound, http.StatusNotFound},
		{"blog not found", common.ErrBlogNotFound, http.StatusNotFound},
		{"wrong blog", common.ErrVersionMismatch, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockVersionService)
			svc.On("RestoreVersion", "blog-1", "v-1", "").Return(tc.err)

			router := setupVersionRouter(svc)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/blogs/blog-1/versions/v-1/restore", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}
