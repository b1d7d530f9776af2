//go:build !integration

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/lru-webserver/internal/cache"
	"github.com/guttosm/lru-webserver/internal/domain/dto"
	"github.com/guttosm/lru-webserver/internal/domain/model"
	"github.com/guttosm/lru-webserver/internal/middleware"
	"github.com/guttosm/lru-webserver/internal/mocks"
	"github.com/guttosm/lru-webserver/internal/repository"
	"github.com/guttosm/lru-webserver/internal/service"
	"github.com/guttosm/lru-webserver/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var site = map[string]string{
	"index.html":   "<h1>home</h1>",
	"style.css":    "body{}",
	"img/logo.png": "\x89PNG\r\n\x1a\n",
	"docs/a.txt":   "alpha",
}

type serverFixture struct {
	router *gin.Engine
	root   string
	sink   *recordingSink
}

func newServer(t *testing.T, files, system map[string]string, opts ...HandlerOption) *serverFixture {
	t.Helper()
	rootDir := testutil.WriteTree(t, files)
	root, err := repository.NewDiskStore(rootDir)
	require.NoError(t, err)
	sys, err := repository.NewDiskStore(testutil.WriteTree(t, system))
	require.NoError(t, err)
	lru, err := cache.New(4, 0)
	require.NoError(t, err)
	t.Cleanup(lru.Destroy)

	sink := &recordingSink{}
	opts = append([]HandlerOption{WithAuditSink(sink)}, opts...)
	handler := NewHandler(service.NewFileService(root, sys, lru), opts...)
	router := NewRouter(handler, NewHealthHandler(), DefaultRouterConfig())
	return &serverFixture{router: router, root: rootDir, sink: sink}
}

func (f *serverFixture) do(method, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestHandler_ServeFile(t *testing.T) {
	f := newServer(t, site, map[string]string{"404.html": "<p>gone</p>"})

	tests := []struct {
		name        string
		method      string
		path        string
		wantStatus  int
		wantType    string
		wantBody    string
		wantXCache  string
		wantJSONErr string
	}{
		{name: "first read misses", method: http.MethodGet, path: "/style.css", wantStatus: http.StatusOK, wantType: "text/css", wantBody: "body{}", wantXCache: "MISS"},
		{name: "second read hits", method: http.MethodGet, path: "/style.css", wantStatus: http.StatusOK, wantType: "text/css", wantBody: "body{}", wantXCache: "HIT"},
		{name: "root serves index", method: http.MethodGet, path: "/", wantStatus: http.StatusOK, wantType: "text/html", wantBody: "<h1>home</h1>", wantXCache: "MISS"},
		{name: "index shares root entry", method: http.MethodGet, path: "/index.html", wantStatus: http.StatusOK, wantType: "text/html", wantXCache: "HIT"},
		{name: "nested png", method: http.MethodGet, path: "/img/logo.png", wantStatus: http.StatusOK, wantType: "image/png", wantXCache: "MISS"},
		{name: "head request", method: http.MethodHead, path: "/docs/a.txt", wantStatus: http.StatusOK, wantType: "text/plain", wantXCache: "MISS"},
		{name: "missing file gets 404 page", method: http.MethodGet, path: "/nope.html", wantStatus: http.StatusNotFound, wantType: "text/html", wantBody: "<p>gone</p>"},
		{name: "directory is not found", method: http.MethodGet, path: "/img", wantStatus: http.StatusNotFound, wantBody: "<p>gone</p>"},
		{name: "escaping the root", method: http.MethodGet, path: "/../etc/passwd", wantStatus: http.StatusBadRequest, wantJSONErr: dto.ErrCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(tt.method, tt.path, "")

			require.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantXCache, w.Header().Get(CacheHeader))
			if tt.wantType != "" {
				assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), tt.wantType), w.Header().Get("Content-Type"))
			}
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
			if tt.wantJSONErr != "" {
				var resp dto.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantJSONErr, resp.Error)
			}
		})
	}
}

func TestHandler_ServeFile_BuiltinNotFound(t *testing.T) {
	f := newServer(t, site, nil)

	w := f.do(http.MethodGet, "/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "404 Page Not Found\n", w.Body.String())
}

func TestHandler_ServeFile_ServiceError(t *testing.T) {
	files := new(mocks.MockFileService)
	files.On("Get", mock.Anything, "/broken.html").Return(nil, errors.New("disk on fire"))

	router := gin.New()
	router.NoRoute(NewHandler(files).Dispatch)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/broken.html", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeInternal, resp.Error)
	files.AssertExpectations(t)
}

func TestHandler_ServeFile_Deadline(t *testing.T) {
	files := new(mocks.MockFileService)
	files.On("Get", mock.Anything, "/slow.html").
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded)

	router := gin.New()
	router.Use(middleware.Timeout(10 * time.Millisecond))
	router.NoRoute(NewHandler(files).Dispatch)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow.html", nil))

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Contains(t, w.Body.String(), dto.ErrCodeTimeout)
}

func TestHandler_SaveFile(t *testing.T) {
	f := newServer(t, site, nil, WithMaxUploadBytes(16))

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantErr    string
	}{
		{name: "saves body", path: "/notes", body: "hello", wantStatus: http.StatusOK},
		{name: "empty body", path: "/notes", wantStatus: http.StatusBadRequest, wantErr: dto.ErrCodeInvalidRequest},
		{name: "too large", path: "/notes", body: strings.Repeat("x", 17), wantStatus: http.StatusRequestEntityTooLarge, wantErr: dto.ErrCodePayloadTooLarge},
		{name: "escaping the root", path: "/../outside", body: "x", wantStatus: http.StatusBadRequest, wantErr: dto.ErrCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(http.MethodPost, tt.path, tt.body)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantErr != "" {
				var resp dto.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantErr, resp.Error)
				return
			}
			assert.JSONEq(t, `{"status":"OK"}`, w.Body.String())
		})
	}

	assert.Equal(t, "hello", testutil.ReadFile(t, f.root, "notes/data"))
}

func TestHandler_SaveThenGet(t *testing.T) {
	f := newServer(t, map[string]string{"page/data": "v1"}, nil)

	w := f.do(http.MethodGet, "/page/data", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "v1", w.Body.String())
	assert.Equal(t, "MISS", w.Header().Get(CacheHeader))

	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/page", "v2").Code)

	w = f.do(http.MethodGet, "/page/data", "")
	assert.Equal(t, "v2", w.Body.String())
	assert.Equal(t, "HIT", w.Header().Get(CacheHeader))

	entries := f.sink.all()
	require.NotEmpty(t, entries)
	var audit *model.LogEntry
	for _, e := range entries {
		if e.ActionType != "" {
			audit = e
		}
	}
	require.NotNil(t, audit)
	assert.Equal(t, "file_save", audit.ActionType)
	assert.Equal(t, 2, audit.Fields["bytes"])
}

func TestHandler_SaveFile_Failure(t *testing.T) {
	files := new(mocks.MockFileService)
	files.On("Save", mock.Anything, "/notes", []byte("x")).Return(errors.New("read-only file system"))
	sink := &recordingSink{}

	router := gin.New()
	router.NoRoute(NewHandler(files, WithAuditSink(sink)).Dispatch)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader("x")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	entries := sink.all()
	require.Len(t, entries, 1)
	assert.Equal(t, "error", entries[0].Level)
	assert.Equal(t, "read-only file system", entries[0].Error)
}

func TestHandler_NotImplemented(t *testing.T) {
	f := newServer(t, site, nil)

	for _, method := range []string{http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			w := f.do(method, "/index.html", "")
			assert.Equal(t, http.StatusNotImplemented, w.Code)

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, dto.ErrCodeNotImplemented, resp.Error)
		})
	}
}

func TestHandler_Roll(t *testing.T) {
	f := newServer(t, site, nil)
	pattern := regexp.MustCompile(`^you get a random number: (\d+)$`)

	for i := 0; i < 50; i++ {
		w := f.do(http.MethodGet, "/d20", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))

		m := pattern.FindStringSubmatch(w.Body.String())
		require.Len(t, m, 2, w.Body.String())
		n, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, service.DiceSides)
	}
}

func TestHandler_CacheStats(t *testing.T) {
	f := newServer(t, site, nil)
	f.do(http.MethodGet, "/style.css", "")
	f.do(http.MethodGet, "/style.css", "")
	f.do(http.MethodGet, "/style.css", "")

	w := f.do(http.MethodGet, "/cache/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data dto.CacheStatsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Data.Hits)
	assert.Equal(t, int64(1), resp.Data.Misses)
	assert.Equal(t, 1, resp.Data.Size)
	assert.Equal(t, 4, resp.Data.Capacity)
	assert.InDelta(t, 2.0/3.0, resp.Data.HitRatio, 1e-9)
}
