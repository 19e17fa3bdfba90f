package resource

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/suparena/resthub/datastore/mock"
	"github.com/suparena/resthub/errors"
	"github.com/suparena/resthub/model"
	"github.com/suparena/resthub/storagemodels"
)

type book struct {
	model.Resource
	Title string `json:"title"`
}

func setupRouter(store *mock.DataStore[book], opts ...Option) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler[book](store, opts...).Register(router.Group("/books"))
	return router
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandlerLifecycle(t *testing.T) {
	store := mock.New[book]()
	router := setupRouter(store)

	w := serve(router, http.MethodPost, "/books", `{"title":"Dune"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Dune", created.Title)

	w = serve(router, http.MethodGet, "/books/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var fetched book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created, fetched)

	w = serve(router, http.MethodPut, "/books/"+created.ID, `{"title":"Dune Messiah"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Dune Messiah", store.GetData()[created.ID].Title)

	w = serve(router, http.MethodDelete, "/books/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(router, http.MethodGet, "/books/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerList(t *testing.T) {
	store := mock.New[book]()
	data := make(map[string]book)
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("b%d", i)
		data[id] = book{Resource: model.Resource{ID: id}, Title: "Title " + id}
	}
	store.SetData(data)
	router := setupRouter(store)

	w := serve(router, http.MethodGet, "/books?offset=1&limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)

	var page storagemodels.Page[book]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 5, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "b1", page.Items[0].ID)
	assert.Equal(t, "b2", page.Items[1].ID)

	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/books?limit=-1", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(router, http.MethodGet, "/books?limit=many", "").Code)
}

func TestHandlerErrors(t *testing.T) {
	tests := []struct {
		name       string
		store      *mock.DataStore[book]
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{
			name:       "malformed body",
			store:      mock.New[book](),
			method:     http.MethodPost,
			path:       "/books",
			body:       `{"title":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "duplicate create",
			store:      mock.New[book]().WithCreateError(errors.NewAlreadyExistsError("book", "b1")),
			method:     http.MethodPost,
			path:       "/books",
			body:       `{"id":"b1","title":"Dune"}`,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "mismatched put",
			store:      mock.New[book](),
			method:     http.MethodPut,
			path:       "/books/b1",
			body:       `{"id":"b2","title":"Dune"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "delete missing",
			store:      mock.New[book](),
			method:     http.MethodDelete,
			path:       "/books/missing",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "store failure",
			store:      mock.New[book]().WithFindError(fmt.Errorf("connection reset")),
			method:     http.MethodGet,
			path:       "/books/b1",
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(setupRouter(tt.store), tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestHandlerLogsUnexpectedErrors(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	store := mock.New[book]().WithFindError(fmt.Errorf("connection reset"))
	router := setupRouter(store, WithLogger(zap.New(core)))

	serve(router, http.MethodGet, "/books/b1", "")
	serve(router, http.MethodGet, "/books/b1", "")

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Store operation failed", entry.Message)
	assert.Equal(t, "/books/:id", entry.ContextMap()["path"])

	notFound := mock.New[book]()
	core, logs = observer.New(zap.ErrorLevel)
	serve(setupRouter(notFound, WithLogger(zap.New(core))), http.MethodGet, "/books/b1", "")
	assert.Equal(t, 0, logs.Len())
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(errors.NewNotFoundError("book", "1")))
	assert.Equal(t, http.StatusConflict, StatusOf(errors.NewAlreadyExistsError("book", "1")))
	assert.Equal(t, http.StatusBadRequest, StatusOf(errors.NewValidationError("id", "is required")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(fmt.Errorf("boom")))
	assert.Equal(t, http.StatusNotFound, StatusOf(fmt.Errorf("wrapped: %w", errors.ErrNotFound)))
}
