package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/releasewatch/mailparser/dto"
	"github.com/releasewatch/mailparser/internal/logger"
	"github.com/releasewatch/mailparser/internal/models"
	"github.com/releasewatch/mailparser/internal/repository"
)

const testAPIKey = "secret"

type MockReleaseRepository struct {
	mock.Mock
}

func (m *MockReleaseRepository) Upsert(ctx context.Context, record *models.ReleaseRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockReleaseRepository) ListByRecipient(ctx context.Context, recipient string) ([]*models.ReleaseRecord, error) {
	args := m.Called(ctx, recipient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ReleaseRecord), args.Error(1)
}

func setupRouter(repo *MockReleaseRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, &repository.Repositories{ReleaseRepository: repo}, testAPIKey,
		logger.NewAppLogger(&logger.Config{LogLevel: "error"}))
	return r
}

func perform(r *gin.Engine, target, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if apiKey != "" {
		req.Header.Set(APIKeyHeader, apiKey)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestHealth(t *testing.T) {
	w := perform(setupRouter(new(MockReleaseRepository)), "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAPIKey(t *testing.T) {
	r := setupRouter(new(MockReleaseRepository))

	w := perform(r, "/v1/releases?to=fan@example.com", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Missing API key", errorMessage(t, w))

	w = perform(r, "/v1/releases?to=fan@example.com", "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid API key", errorMessage(t, w))
}

func TestListReleases(t *testing.T) {
	artist := "Some Artist"
	repo := new(MockReleaseRepository)
	repo.On("ListByRecipient", mock.Anything, "fan@example.com").Return([]*models.ReleaseRecord{
		{Recipient: "fan@example.com", Date: "2023-01-01T00:00:00Z", Label: "L", Title: "New", Artist: &artist, Link: "https://x/new", CoverLink: "https://x/new.jpg"},
		{Recipient: "fan@example.com", Date: "2022-01-01T00:00:00Z", Label: "L", Title: "Old", Link: "https://x/old", CoverLink: "https://x/old.jpg"},
	}, nil)

	w := perform(setupRouter(repo), "/v1/releases?to=fan@example.com", testAPIKey)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.ReleaseListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Releases, 2)
	assert.Equal(t, "New", response.Releases[0].Title)
	assert.Equal(t, "Some Artist", *response.Releases[0].Artist)
	assert.Equal(t, "https://x/new.jpg", response.Releases[0].CoverLink)
	assert.Nil(t, response.Releases[1].Artist)
	assert.Contains(t, w.Body.String(), `"artist":null`)
}

func TestListReleases_Errors(t *testing.T) {
	repo := new(MockReleaseRepository)
	repo.On("ListByRecipient", mock.Anything, "fan@example.com").Return(nil, errors.New("boom"))
	r := setupRouter(repo)

	w := perform(r, "/v1/releases", testAPIKey)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing recipient", errorMessage(t, w))

	w = perform(r, "/v1/releases?to=fan@example.com", testAPIKey)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to list releases", errorMessage(t, w))
}

func TestListReleases_Empty(t *testing.T) {
	repo := new(MockReleaseRepository)
	repo.On("ListByRecipient", mock.Anything, "nobody@example.com").Return([]*models.ReleaseRecord{}, nil)

	w := perform(setupRouter(repo), "/v1/releases?to=nobody@example.com", testAPIKey)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"releases":[]}`, w.Body.String())
}
