package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blinko-space/blinko-server/internal/config"
	dbpkg "github.com/blinko-space/blinko-server/internal/db"
	"github.com/blinko-space/blinko-server/internal/oauth"
	"github.com/blinko-space/blinko-server/internal/security"
	"github.com/blinko-space/blinko-server/internal/settings"
	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) (*gin.Engine, config.JWTConfig) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	conn, errOpen := dbpkg.Open(":memory:")
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := dbpkg.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	svc := settings.NewService(conn)
	oauthMgr := oauth.NewManager(svc)
	svc.Subscribe(oauthMgr)

	jwtCfg := config.JWTConfig{Secret: "test-secret", ExpiryHours: 1}
	engine := gin.New()
	RegisterRoutes(engine, conn, jwtCfg, svc, oauthMgr)
	return engine, jwtCfg
}

func doJSON(t *testing.T, engine *gin.Engine, method, target, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if payload != nil {
		body, errMarshal := json.Marshal(payload)
		if errMarshal != nil {
			t.Fatalf("marshal body: %v", errMarshal)
		}
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestConfigListWorksWithoutToken(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doJSON(t, engine, http.MethodGet, "/v1/config/list", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected a request id header")
	}
}

func TestConfigListRejectsMalformedToken(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doJSON(t, engine, http.MethodGet, "/v1/config/list", "not-a-jwt", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestConfigUpdateRequiresAuth(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/v1/config/update", "", gin.H{"key": "theme", "value": "dark"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestAIAdminRequiresSuperAdmin(t *testing.T) {
	engine, jwtCfg := newTestRouter(t)
	userToken, errToken := security.GenerateToken(jwtCfg.Secret, 2, "bob", "user", time.Hour)
	if errToken != nil {
		t.Fatalf("generate token: %v", errToken)
	}

	w := doJSON(t, engine, http.MethodPost, "/v1/ai/providers", userToken, gin.H{
		"title": "OpenAI", "provider": "openai",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestEndToEndConfigAndAIModelFlow(t *testing.T) {
	engine, jwtCfg := newTestRouter(t)
	adminToken, errToken := security.GenerateToken(jwtCfg.Secret, 1, "alice", "superadmin", time.Hour)
	if errToken != nil {
		t.Fatalf("generate token: %v", errToken)
	}

	w := doJSON(t, engine, http.MethodPost, "/v1/ai/providers", adminToken, gin.H{
		"title": "OpenAI", "provider": "openai", "baseURL": "https://api.openai.com/v1", "apiKey": "sk-test",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create provider: %d body=%s", w.Code, w.Body.String())
	}
	var provider struct {
		ID uint64 `json:"id"`
	}
	if errDecode := json.Unmarshal(w.Body.Bytes(), &provider); errDecode != nil {
		t.Fatalf("decode provider: %v", errDecode)
	}

	w = doJSON(t, engine, http.MethodPost, "/v1/ai/models", adminToken, gin.H{
		"title": "GPT-4o", "modelKey": "gpt-4o", "providerId": provider.ID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create model: %d body=%s", w.Code, w.Body.String())
	}
	var model struct {
		ID uint64 `json:"id"`
	}
	if errDecode := json.Unmarshal(w.Body.Bytes(), &model); errDecode != nil {
		t.Fatalf("decode model: %v", errDecode)
	}

	w = doJSON(t, engine, http.MethodPost, "/v1/config/update", adminToken, gin.H{
		"key": "mainModelId", "value": model.ID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update config: %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, engine, http.MethodGet, "/v1/config/ai?type=mainModel", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("resolve model: %d body=%s", w.Code, w.Body.String())
	}
	var descriptor struct {
		Title    string `json:"title"`
		ModelKey string `json:"modelKey"`
		Provider struct {
			Provider string `json:"provider"`
		} `json:"provider"`
	}
	if errDecode := json.Unmarshal(w.Body.Bytes(), &descriptor); errDecode != nil {
		t.Fatalf("decode descriptor: %v", errDecode)
	}
	if descriptor.Title != "GPT-4o" || descriptor.Provider.Provider != "openai" {
		t.Fatalf("unexpected descriptor %+v", descriptor)
	}
}
