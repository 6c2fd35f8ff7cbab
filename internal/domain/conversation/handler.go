package conversation

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/weijenchou/dogdietlinebot/internal/middleware"
)

// DefaultMaxImageBytes limita el tamaño de una imagen subida por /turns/image.
const DefaultMaxImageBytes = 10 << 20

// RegisterRoutes monta la entrada de turnos de un canal de chat externo.
// La verificación de firma va como middleware en el router.
func RegisterRoutes(r chi.Router, m *Machine, maxImageBytes int64) {
	if maxImageBytes <= 0 {
		maxImageBytes = DefaultMaxImageBytes
	}
	r.Route("/turns", func(tr chi.Router) {
		tr.Post("/text", textTurnHandler(m))
		tr.Post("/image", imageTurnHandler(m, maxImageBytes))
	})
}

type textTurnRequest struct {
	OwnerID  string    `json:"owner_id"`
	Text     string    `json:"text"`
	Location *Location `json:"location,omitempty"`
}

// textTurnHandler godoc
// @Summary Turno de texto
// @Description Procesa un mensaje de texto del owner y devuelve la respuesta del asistente. Si WEBHOOK_SECRET está configurado se exige `X-Signature` = base64(HMAC-SHA256(body)).
// @Tags turns
// @Accept json
// @Produce json
// @Param X-Signature header string false "Firma HMAC-SHA256 del body, base64"
// @Param Authorization header string false "Bearer token; owner_id debe coincidir"
// @Param payload body textTurnRequest true "Turno"
// @Success 200 {object} Reply
// @Failure 400 {string} string "invalid json / owner_id required"
// @Failure 401 {string} string "invalid signature / unauthorized"
// @Failure 403 {string} string "owner_id does not match credentials"
// @Router /turns/text [post]
func textTurnHandler(m *Machine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req textTurnRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		owner, ok := turnOwner(w, r, req.OwnerID)
		if !ok {
			return
		}

		t := TextTurn(owner, req.Text)
		t.Location = req.Location
		writeJSON(w, http.StatusOK, m.Handle(r.Context(), t))
	}
}

// imageTurnHandler godoc
// @Summary Turno de imagen
// @Description Procesa una foto (paquete o comida fresca) enviada como multipart.
// @Tags turns
// @Accept mpfd
// @Produce json
// @Param X-Signature header string false "Firma HMAC-SHA256 del body, base64"
// @Param owner_id formData string true "Owner"
// @Param image formData file true "Foto"
// @Success 200 {object} Reply
// @Failure 400 {string} string "invalid multipart / owner_id required / image required"
// @Failure 401 {string} string "invalid signature / unauthorized"
// @Failure 403 {string} string "owner_id does not match credentials"
// @Failure 413 {string} string "image too large"
// @Router /turns/image [post]
func imageTurnHandler(m *Machine, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+(1<<20))
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "image too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "invalid multipart", http.StatusBadRequest)
			return
		}

		owner, ok := turnOwner(w, r, r.FormValue("owner_id"))
		if !ok {
			return
		}

		f, _, err := r.FormFile("image")
		if err != nil {
			http.Error(w, "image required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		img, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
		if err != nil {
			http.Error(w, "invalid multipart", http.StatusBadRequest)
			return
		}
		if int64(len(img)) > maxBytes {
			http.Error(w, "image too large", http.StatusRequestEntityTooLarge)
			return
		}
		if len(img) == 0 {
			http.Error(w, "image required", http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusOK, m.Handle(r.Context(), ImageTurn(owner, img)))
	}
}

// turnOwner: con credenciales el owner es el del token y owner_id, si viene,
// debe coincidir. Sin credenciales (canal firmado) owner_id es obligatorio.
func turnOwner(w http.ResponseWriter, r *http.Request, raw string) (string, bool) {
	owner := strings.TrimSpace(raw)
	if c, ok := middleware.GetClaims(r.Context()); ok && strings.TrimSpace(c.OwnerID) != "" {
		authed := strings.TrimSpace(c.OwnerID)
		if owner != "" && owner != authed {
			http.Error(w, "owner_id does not match credentials", http.StatusForbidden)
			return "", false
		}
		return authed, true
	}
	if owner == "" {
		http.Error(w, "owner_id required", http.StatusBadRequest)
		return "", false
	}
	return owner, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
