package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"
	"strings"
)

// SignatureHeader lleva base64(HMAC-SHA256(secret, body)).
const SignatureHeader = "X-Signature"

const maxSignedBody = 12 << 20

// Sign calcula la firma de un body (clientes y tests).
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature rechaza con 401 los requests sin firma válida.
// secret vacío desactiva la verificación.
func VerifySignature(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(io.LimitReader(r.Body, maxSignedBody))
			if err != nil {
				http.Error(w, "invalid body", http.StatusBadRequest)
				return
			}
			_ = r.Body.Close()

			got, err := base64.StdEncoding.DecodeString(strings.TrimSpace(r.Header.Get(SignatureHeader)))
			if err != nil || len(got) == 0 {
				http.Error(w, "invalid signature", http.StatusUnauthorized)
				return
			}
			want, _ := base64.StdEncoding.DecodeString(Sign(secret, body))
			if !hmac.Equal(got, want) {
				http.Error(w, "invalid signature", http.StatusUnauthorized)
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			r.ContentLength = int64(len(body))
			next.ServeHTTP(w, r)
		})
	}
}
