package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/weijenchou/dogdietlinebot/internal/adapters/auth/jwt"
	"github.com/weijenchou/dogdietlinebot/internal/middleware"
	"github.com/weijenchou/dogdietlinebot/internal/router"
)

func newServer(t *testing.T, opts router.Options) *httptest.Server {
	t.Helper()
	h, err := router.NewRouter(opts)
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_ChatAndREST(t *testing.T) {
	ts := newServer(t, router.Options{})
	ownerID := "owner-1"

	// 1) Alta por chat
	for _, msg := range []string{"Add pet", "name: Rex\nbirthday: 2022-01-01\nweight: 10 kg", "Y"} {
		st, body := turn(t, ts.URL, ownerID, msg, "")
		if st != http.StatusOK {
			t.Fatalf("expected 200 turn %q, got %d body=%s", msg, st, string(body))
		}
	}

	// 2) El perfil se ve por REST (mismo store)
	{
		st, body := doReq(t, ts.URL, "GET", "/pets", ownerID, nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"name":"Rex"`) {
			t.Fatalf("expected Rex in list, got %d body=%s", st, string(body))
		}
	}

	// 3) Registros del mismo día se suman
	for _, cal := range []int{100, 50} {
		st, body := doReq(t, ts.URL, "POST", "/pets/Rex/intake", ownerID, map[string]any{"calories": cal, "water_ml": 200})
		if st != http.StatusOK {
			t.Fatalf("expected 200 intake, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/Rex/intake/today", ownerID, nil)
		var rec struct {
			Calories int `json:"calories"`
			WaterML  int `json:"water_ml"`
		}
		_ = json.Unmarshal(body, &rec)
		if st != http.StatusOK || rec.Calories != 150 || rec.WaterML != 400 {
			t.Fatalf("expected 150 kcal / 400 ml, got %d body=%s", st, string(body))
		}
	}

	// 4) Metas por chat (solo lectura); el estado se guarda por REST
	turn(t, ts.URL, ownerID, "Targets", "")
	if _, body := turn(t, ts.URL, ownerID, "name: Rex\nstatus: 3", ""); !strings.Contains(string(body), "393.64 kcal") {
		t.Fatalf("expected RER in reply, got %s", string(body))
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/Rex", ownerID, nil)
		if st != http.StatusOK || strings.Contains(string(body), `"rer_kcal"`) {
			t.Fatalf("expected detail without target after chat query, got %d body=%s", st, string(body))
		}
	}
	if st, body := doReq(t, ts.URL, "PATCH", "/pets/Rex", ownerID, map[string]any{"status": 3}); st != http.StatusOK {
		t.Fatalf("expected 200 status patch, got %d body=%s", st, string(body))
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/Rex", ownerID, nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"rer_kcal"`) {
			t.Fatalf("expected detail with target, got %d body=%s", st, string(body))
		}
	}

	// 5) Renombrar arrastra el registro de hoy
	{
		st, body := doReq(t, ts.URL, "PATCH", "/pets/Rex", ownerID, map[string]any{"name": "Max"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 rename, got %d body=%s", st, string(body))
		}
	}
	if st, _ := doReq(t, ts.URL, "GET", "/pets/Rex", ownerID, nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 for old name, got %d", st)
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/Max/intake/today", ownerID, nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"calories":150`) {
			t.Fatalf("expected record moved to Max, got %d body=%s", st, string(body))
		}
	}

	// 6) Otro owner no ve nada
	if st, _ := doReq(t, ts.URL, "GET", "/pets/Max", "owner-2", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 for other owner, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/pets", "", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without owner, got %d", st)
	}

	// 7) Borrar en cascada
	if st, _ := doReq(t, ts.URL, "DELETE", "/pets/Max", ownerID, nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 delete, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/pets/Max/intake/today", ownerID, nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", st)
	}
}

func TestHTTP_CreateConflictAndValidation(t *testing.T) {
	ts := newServer(t, router.Options{})
	pet := map[string]any{"name": "Milo", "birth_date": "2021-05-01", "weight_kg": 8.5}

	if st, body := doReq(t, ts.URL, "POST", "/pets", "o1", pet); st != http.StatusCreated {
		t.Fatalf("expected 201 create, got %d body=%s", st, string(body))
	}
	if st, _ := doReq(t, ts.URL, "POST", "/pets", "o1", pet); st != http.StatusConflict {
		t.Fatalf("expected 409 duplicate, got %d", st)
	}
	pet["weight_kg"] = 0
	pet["name"] = "Zero"
	if st, _ := doReq(t, ts.URL, "POST", "/pets", "o1", pet); st != http.StatusBadRequest {
		t.Fatalf("expected 400 for weight 0, got %d", st)
	}
}

func TestHTTP_PutCreatesThenReplaces(t *testing.T) {
	ts := newServer(t, router.Options{})
	pet := map[string]any{"birth_date": "2021-05-01", "weight_kg": 8.5}

	st, body := doReq(t, ts.URL, "PUT", "/pets/Milo", "o1", pet)
	if st != http.StatusOK || !strings.Contains(string(body), `"weight_kg":8.5`) {
		t.Fatalf("expected 200 on first put, got %d body=%s", st, string(body))
	}

	pet["weight_kg"] = 9.2
	pet["status"] = 3
	if st, body := doReq(t, ts.URL, "PUT", "/pets/Milo", "o1", pet); st != http.StatusOK {
		t.Fatalf("expected 200 on replace, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/pets/Milo", "o1", nil)
	if st != http.StatusOK || !strings.Contains(string(body), `"weight_kg":9.2`) || !strings.Contains(string(body), `"rer_kcal"`) {
		t.Fatalf("expected replaced profile, got %d body=%s", st, string(body))
	}
	st, body = doReq(t, ts.URL, "GET", "/pets", "o1", nil)
	if st != http.StatusOK || strings.Count(string(body), `"name":"Milo"`) != 1 {
		t.Fatalf("expected a single Milo after replace, got %d body=%s", st, string(body))
	}

	pet["name"] = "Other"
	if st, _ := doReq(t, ts.URL, "PUT", "/pets/Milo", "o1", pet); st != http.StatusBadRequest {
		t.Fatalf("expected 400 for name mismatch, got %d", st)
	}
	pet["name"] = "Milo"
	pet["weight_kg"] = 0
	if st, _ := doReq(t, ts.URL, "PUT", "/pets/Milo", "o1", pet); st != http.StatusBadRequest {
		t.Fatalf("expected 400 for weight 0, got %d", st)
	}
}

func TestHTTP_WebhookSignature(t *testing.T) {
	ts := newServer(t, router.Options{WebhookSecret: "s3cret"})

	if st, _ := turn(t, ts.URL, "o1", "hello", ""); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 unsigned, got %d", st)
	}
	if st, body := turn(t, ts.URL, "o1", "hello", "s3cret"); st != http.StatusOK || !strings.Contains(string(body), "dog diet assistant") {
		t.Fatalf("expected 200 signed, got %d body=%s", st, string(body))
	}
}

func TestHTTP_TurnsRequireTokenWithoutWebhookSecret(t *testing.T) {
	v, err := jwt.NewVerifier(jwt.Config{Secret: "jwt-secret"})
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	ts := newServer(t, router.Options{AuthVerifier: v})

	victimTok, _ := v.Issue("victim", time.Hour, time.Now())
	if st, body := bearerReq(t, ts.URL, "POST", "/pets", victimTok, map[string]any{"name": "Rex", "birth_date": "2022-01-01", "weight_kg": 10}); st != http.StatusCreated {
		t.Fatalf("expected 201 create, got %d body=%s", st, string(body))
	}

	if st, _ := bearerReq(t, ts.URL, "POST", "/turns/text", "", map[string]any{"owner_id": "victim", "text": "My pets"}); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", st)
	}

	attackerTok, _ := v.Issue("attacker", time.Hour, time.Now())
	if st, _ := bearerReq(t, ts.URL, "POST", "/turns/text", attackerTok, map[string]any{"owner_id": "victim", "text": "My pets"}); st != http.StatusForbidden {
		t.Fatalf("expected 403 for mismatched owner, got %d", st)
	}

	st, body := bearerReq(t, ts.URL, "POST", "/turns/text", victimTok, map[string]any{"text": "My pets"})
	if st != http.StatusOK || !strings.Contains(string(body), "Rex") {
		t.Fatalf("expected own pets, got %d body=%s", st, string(body))
	}
}

func TestHTTP_HealthAndSwagger(t *testing.T) {
	ts := newServer(t, router.Options{})

	if st, body := doReq(t, ts.URL, "GET", "/health", "", nil); st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected health ok, got %d body=%s", st, string(body))
	}
	if st, body := doReq(t, ts.URL, "GET", "/swagger/doc.json", "", nil); st != http.StatusOK || !strings.Contains(string(body), "/turns/text") {
		t.Fatalf("expected swagger doc, got %d", st)
	}
}

func turn(t *testing.T, baseURL, ownerID, text, secret string) (int, []byte) {
	t.Helper()

	b, err := json.Marshal(map[string]any{"owner_id": ownerID, "text": text})
	if err != nil {
		t.Fatalf("json marshal: %v", err)
	}
	req, err := http.NewRequest("POST", baseURL+"/turns/text", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set(middleware.SignatureHeader, middleware.Sign(secret, b))
	}
	return do(t, req)
}

func doReq(t *testing.T, baseURL, method, path, debugOwnerID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+(&url.URL{Path: path}).EscapedPath(), rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugOwnerID != "" {
		req.Header.Set(middleware.DebugOwnerHeader, debugOwnerID)
	}
	return do(t, req)
}

func bearerReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("json marshal: %v", err)
	}
	req, err := http.NewRequest(method, baseURL+path, bytes.NewReader(b))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return do(t, req)
}

func do(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
