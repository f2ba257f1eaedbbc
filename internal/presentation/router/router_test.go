package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"gitviz-backend/internal/config"
	"gitviz-backend/internal/github"
	"gitviz-backend/internal/presentation/router"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const validToken = "valid-token"

// newUpstream fakes the GitHub API: requests with a wrong token get 401
func newUpstream(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/octocat", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"login":"octocat","id":583231}`))
	})
	mux.HandleFunc("GET /users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"hello-world"}]`))
	})
	mux.HandleFunc("GET /users/octocat/starred", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"linguist"}]`))
	})
	mux.HandleFunc("GET /repos/octocat/hello-world", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"default_branch":"master"}`))
	})
	mux.HandleFunc("GET /repos/octocat/hello-world/git/trees/{ref}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"sha":"` + r.PathValue("ref") + `","tree":[]}`))
	})
	mux.HandleFunc("GET /repos/octocat/hello-world/languages", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Go":1024,"Shell":12}`))
	})
	mux.HandleFunc("GET /repos/octocat/busy/languages", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("Authorization") != "Bearer "+validToken {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newGateway(t *testing.T, token string) (*gin.Engine, *atomic.Int32) {
	t.Helper()

	calls := &atomic.Int32{}
	upstream := newUpstream(t, calls)
	client := github.NewClient(config.GitHubConfig{Token: token, BaseURL: upstream.URL, Timeout: 5})
	return router.New(client), calls
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestRoutes_RelayPayloads(t *testing.T) {
	gateway, _ := newGateway(t, validToken)

	tests := []struct {
		path string
		want string
	}{
		{"/api/user/octocat", `{"login":"octocat","id":583231}`},
		{"/api/user/octocat/repos", `[{"name":"hello-world"}]`},
		{"/api/user/octocat/starred", `[{"name":"linguist"}]`},
		{"/api/repos/octocat/hello-world/tree", `{"sha":"master","tree":[]}`},
		{"/api/repos/octocat/hello-world/tree?branch=dev", `{"sha":"dev","tree":[]}`},
		{"/api/repos/octocat/hello-world/languages", `{"Go":1024,"Shell":12}`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(gateway, tt.path)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		})
	}
}

func TestRoutes_InvalidCredential(t *testing.T) {
	gateway, _ := newGateway(t, "revoked")

	w := get(gateway, "/api/user/octocat")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"unauthorized: invalid or missing credential"}`, w.Body.String())
}

func TestRoutes_NotFound(t *testing.T) {
	gateway, _ := newGateway(t, validToken)

	w := get(gateway, "/api/user/ghost")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"resource not found"}`, w.Body.String())
}

func TestRoutes_OtherStatusPassesThrough(t *testing.T) {
	gateway, _ := newGateway(t, validToken)

	w := get(gateway, "/api/repos/octocat/busy/languages")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"message":"upstream request failed with status 503"}`, w.Body.String())
}

func TestRoutes_HealthIgnoresCredential(t *testing.T) {
	gateway, calls := newGateway(t, "revoked")

	w := get(gateway, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","message":"GitViz backend is running"}`, w.Body.String())
	assert.Zero(t, calls.Load())
}

func TestRoutes_TreeCallCount(t *testing.T) {
	gateway, calls := newGateway(t, validToken)

	get(gateway, "/api/repos/octocat/hello-world/tree")
	assert.Equal(t, int32(2), calls.Load())

	calls.Store(0)
	get(gateway, "/api/repos/octocat/hello-world/tree?branch=main")
	assert.Equal(t, int32(1), calls.Load())
}

func TestRoutes_UnknownPathDoesNotMatch(t *testing.T) {
	gateway, calls := newGateway(t, validToken)

	w := get(gateway, "/api/repos/octocat/tree")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Zero(t, calls.Load())
}

func TestRoutes_TransportFailureDefaultsTo500(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	baseURL := upstream.URL
	upstream.Close()

	client := github.NewClient(config.GitHubConfig{Token: validToken, BaseURL: baseURL, Timeout: 1})
	w := get(router.New(client), "/api/user/octocat")

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["message"], "upstream request failed")
}

func TestRoutes_CORSHeaders(t *testing.T) {
	gateway, _ := newGateway(t, validToken)

	req := httptest.NewRequest(http.MethodGet, "/api/user/octocat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	gateway.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRoutes_SwaggerDoc(t *testing.T) {
	gateway, _ := newGateway(t, validToken)

	w := get(gateway, "/swagger/doc.json")

	require.Equal(t, http.StatusOK, w.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Contains(t, doc["paths"], "/api/user/{username}")
}

func TestRoutes_TreeBranchCannotEscapeRepository(t *testing.T) {
	var seen []string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.RequestURI())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	}))
	t.Cleanup(upstream.Close)

	client := github.NewClient(config.GitHubConfig{Token: validToken, BaseURL: upstream.URL, Timeout: 5})
	w := get(router.New(client), "/api/repos/o/r/tree?branch=../../../../user/emails")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, []string{"/repos/o/r/git/trees/%2E%2E/%2E%2E/%2E%2E/%2E%2E/user/emails?recursive=1"}, seen)
}
