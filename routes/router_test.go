package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"smsbridge/internal/config"
	"smsbridge/internal/handlers/webhook"
	"smsbridge/internal/models"
	"smsbridge/internal/utils"
	"smsbridge/pkg/logger"

	"github.com/gin-gonic/gin"
)

type fakeBridge struct {
	calls  []*models.InboundMessage
	result *models.Result
	panic  bool
}

func (f *fakeBridge) Handle(_ context.Context, msg *models.InboundMessage) *models.Result {
	if f.panic {
		panic("bridge crashed")
	}
	f.calls = append(f.calls, msg)
	return f.result
}

func newTestRouter(bridge *fakeBridge, secret string) *gin.Engine {
	return newTestRouterWithHealth(bridge, secret, nil)
}

func newTestRouterWithHealth(bridge *fakeBridge, secret string, health HealthChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		App:      &config.AppConfig{Version: "test"},
		Telegram: &config.TelegramConfig{WebhookSecret: secret},
	}
	log := logger.Nop()
	return NewRouter(cfg, webhook.NewTelegramHandler(bridge, log), health, log)
}

func serve(router *gin.Engine, method, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/v1/webhooks/telegram", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const updateJSON = `{"update_id":100,"message":{"message_id":1,"chat":{"id":42,"type":"private"},"text":"saxeli: Shop\nnomeri: 555123456\ntexti: Hi"}}`

func TestWebhookDeliversUpdate(t *testing.T) {
	bridge := &fakeBridge{result: &models.Result{Kind: models.ResultDelivered}}
	w := serve(newTestRouter(bridge, ""), http.MethodPost, updateJSON, nil)

	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
	if len(bridge.calls) != 1 {
		t.Fatalf("expected 1 bridge call, got %d", len(bridge.calls))
	}
	msg := bridge.calls[0]
	if msg.UpdateID != 100 || msg.ChatID != 42 || msg.SenderIdentity != "42" || !strings.HasPrefix(msg.RawText, "saxeli") {
		t.Fatalf("unexpected inbound message: %+v", msg)
	}
	if w.Header().Get(utils.HeaderRequestID) == "" {
		t.Fatal("request id header missing")
	}
}

func TestWebhookAcknowledgesEveryResult(t *testing.T) {
	tests := []struct {
		kind models.ResultKind
		want string
	}{
		{models.ResultRejected, "ok"},
		{models.ResultUnauthorized, "unauthorized"},
		{models.ResultUnparseable, "bad format"},
		{models.ResultDuplicate, "duplicate"},
		{models.ResultInternalError, "error"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			bridge := &fakeBridge{result: &models.Result{Kind: tt.kind}}
			w := serve(newTestRouter(bridge, ""), http.MethodPost, updateJSON, nil)
			if w.Code != http.StatusOK || w.Body.String() != tt.want {
				t.Fatalf("got %d %q, want 200 %q", w.Code, w.Body.String(), tt.want)
			}
		})
	}
}

func TestWebhookMalformedBody(t *testing.T) {
	bridge := &fakeBridge{}
	w := serve(newTestRouter(bridge, ""), http.MethodPost, `{not json`, nil)

	if w.Code != http.StatusOK || w.Body.String() != "bad request" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
	if len(bridge.calls) != 0 {
		t.Fatal("bridge called for malformed body")
	}
}

func TestWebhookUpdateWithoutChat(t *testing.T) {
	bridge := &fakeBridge{}
	w := serve(newTestRouter(bridge, ""), http.MethodPost, `{"update_id":5,"edited_message":{}}`, nil)

	if w.Code != http.StatusOK || w.Body.String() != "no chat" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
	if len(bridge.calls) != 0 {
		t.Fatal("bridge called for update without chat")
	}
}

func TestWebhookAliveProbe(t *testing.T) {
	router := newTestRouter(&fakeBridge{}, "s3cret")

	w := serve(router, http.MethodGet, "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Alive") {
		t.Fatalf("GET: got %d %q", w.Code, w.Body.String())
	}

	for _, method := range []string{http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodOptions} {
		w := serve(router, method, "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: got %d", method, w.Code)
		}
	}
}

func TestWebhookSecret(t *testing.T) {
	bridge := &fakeBridge{result: &models.Result{Kind: models.ResultDelivered}}
	router := newTestRouter(bridge, "s3cret")

	w := serve(router, http.MethodPost, updateJSON, map[string]string{utils.HeaderTelegramSecret: "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong secret: got %d", w.Code)
	}

	w = serve(router, http.MethodPost, updateJSON, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing secret: got %d", w.Code)
	}

	w = serve(router, http.MethodPost, updateJSON, map[string]string{utils.HeaderTelegramSecret: "s3cret"})
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("right secret: got %d %q", w.Code, w.Body.String())
	}
	if len(bridge.calls) != 1 {
		t.Fatalf("expected 1 bridge call, got %d", len(bridge.calls))
	}
}

func TestWebhookRecoversHandlerPanic(t *testing.T) {
	w := serve(newTestRouter(&fakeBridge{panic: true}, ""), http.MethodPost, updateJSON, nil)

	if w.Code != http.StatusOK || w.Body.String() != "error" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&fakeBridge{}, "")
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"healthy"`) {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
}

type fakeHealth struct {
	err error
}

func (f fakeHealth) Ping(context.Context) error { return f.err }

func TestHealthPingsRedis(t *testing.T) {
	tests := []struct {
		name   string
		health HealthChecker
		code   int
		want   string
	}{
		{"disabled", nil, http.StatusOK, `"redis":"disabled"`},
		{"reachable", fakeHealth{}, http.StatusOK, `"redis":"ok"`},
		{"unreachable", fakeHealth{err: errors.New("dial tcp: refused")}, http.StatusServiceUnavailable, "REDIS_UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouterWithHealth(&fakeBridge{}, "", tt.health)
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.code || !strings.Contains(w.Body.String(), tt.want) {
				t.Fatalf("got %d %q", w.Code, w.Body.String())
			}
		})
	}
}
