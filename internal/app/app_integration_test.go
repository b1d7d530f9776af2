//go:build integration

package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/guttosm/lru-webserver/config"
	"github.com/guttosm/lru-webserver/internal/domain/dto"
	"github.com/guttosm/lru-webserver/internal/domain/model"
	"github.com/guttosm/lru-webserver/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeApp_WithMongoDB(t *testing.T) {
	cfg := config.Config{
		Server: config.ServerConfig{RequestTimeout: 5 * time.Second},
		Files: config.FilesConfig{
			Root:   testutil.WriteTree(t, map[string]string{"index.html": "<h1>hi</h1>"}),
			System: t.TempDir(),
		},
		Cache: config.CacheConfig{Capacity: 4},
		Log:   config.LogConfig{Level: "error"},
		Database: config.DatabaseConfig{
			URI:                            testutil.SharedMongoURI(t),
			DatabaseName:                   testutil.DBName(t),
			LogsTTL:                        24 * time.Hour,
			Enabled:                        true,
			CircuitBreakerFailureThreshold: 5,
			CircuitBreakerSuccessThreshold: 2,
			CircuitBreakerTimeout:          30 * time.Second,
		},
	}

	application, err := InitializeApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, application.db)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		application.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/index.html", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	application.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"mongodb":"ok"`)

	var resp struct {
		Data dto.LogsResponse `json:"data"`
	}
	require.Eventually(t, func() bool {
		w := httptest.NewRecorder()
		application.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logs?path=/index.html&cache_status=HIT", nil))
		if w.Code != http.StatusOK || json.Unmarshal(w.Body.Bytes(), &resp) != nil {
			return false
		}
		return resp.Data.Total == 2
	}, 10*time.Second, 200*time.Millisecond)

	for _, entry := range resp.Data.Logs {
		assert.Equal(t, model.CacheHit, entry.CacheStatus)
		assert.Equal(t, http.StatusOK, entry.StatusCode)
	}

	assert.NoError(t, application.Close(context.Background()))
}

func TestInitializeDatabase_Unreachable(t *testing.T) {
	db := InitializeDatabase(config.DatabaseConfig{
		Enabled:      true,
		URI:          "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200",
		DatabaseName: "unreachable",
	})
	assert.Nil(t, db)
}
