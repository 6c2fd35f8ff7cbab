package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/weijenchou/dogdietlinebot/internal/platform/logger"
	"github.com/weijenchou/dogdietlinebot/internal/ports/auth"
)

type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if token == "good" {
		return auth.Claims{OwnerID: "o1"}, nil
	}
	return auth.Claims{}, auth.ErrInvalidToken
}

func ownerEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := GetClaims(r.Context())
		if !ok {
			_, _ = w.Write([]byte("-"))
			return
		}
		_, _ = w.Write([]byte(c.OwnerID))
	})
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthContext_DevHeader(t *testing.T) {
	h := AuthContext(nil)(ownerEcho())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(DebugOwnerHeader, " o9 ")
	assert.Equal(t, "o9", serve(h, req).Body.String())

	assert.Equal(t, "-", serve(h, httptest.NewRequest(http.MethodGet, "/", nil)).Body.String())
}

func TestAuthContext_Bearer(t *testing.T) {
	h := AuthContext(stubVerifier{})(ownerEcho())

	for header, want := range map[string]string{
		"Bearer good": "o1",
		"bearer good": "o1",
		"Bearer bad":  "-",
		"Basic good":  "-",
		"":            "-",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		// el header dev se ignora con verifier
		req.Header.Set(DebugOwnerHeader, "intruder")
		assert.Equal(t, want, serve(h, req).Body.String(), "header=%q", header)
	}
}

func TestRequireClaims(t *testing.T) {
	h := AuthContext(stubVerifier{})(RequireClaims(ownerEcho()))

	req := httptest.NewRequest(http.MethodPost, "/turns/text", nil)
	assert.Equal(t, http.StatusUnauthorized, serve(h, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/turns/text", nil)
	req.Header.Set("Authorization", "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, serve(h, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/turns/text", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := serve(h, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "o1", rec.Body.String())
}

func TestVerifySignature(t *testing.T) {
	var got string
	h := VerifySignature("s3cret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got = string(b)
	}))

	body := `{"owner_id":"o1","text":"hi"}`
	req := httptest.NewRequest(http.MethodPost, "/turns/text", strings.NewReader(body))
	req.Header.Set(SignatureHeader, Sign("s3cret", []byte(body)))
	require.Equal(t, http.StatusOK, serve(h, req).Code)
	assert.Equal(t, body, got, "el body llega intacto al handler")

	for _, sig := range []string{"", "not-base64!", Sign("other", []byte(body))} {
		req := httptest.NewRequest(http.MethodPost, "/turns/text", strings.NewReader(body))
		req.Header.Set(SignatureHeader, sig)
		assert.Equal(t, http.StatusUnauthorized, serve(h, req).Code, "sig=%q", sig)
	}
}

func TestVerifySignature_EmptySecretDisables(t *testing.T) {
	h := VerifySignature("")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("x"))
	assert.Equal(t, http.StatusOK, serve(h, req).Code)
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := AccessLog(logger.NewWithCore(core))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusTeapot)
	}))
	serve(h, httptest.NewRequest(http.MethodGet, "/x", nil))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, "/x", fields["path"])
}
