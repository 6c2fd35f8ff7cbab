package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/weijenchou/dogdietlinebot/internal/domain/nutrition"
	"github.com/weijenchou/dogdietlinebot/internal/middleware"
	"github.com/weijenchou/dogdietlinebot/internal/platform/ownerlock"
)

// RegisterRoutes monta el CRUD de perfiles. Las mutaciones toman el lock del owner,
// el mismo que usa la máquina de conversación para un turno completo.
func RegisterRoutes(r chi.Router, svc *Service, locks *ownerlock.Locker) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc, locks))
		pr.Get("/", listPetsHandler(svc))

		pr.Get("/{name}", getPetHandler(svc))
		pr.Put("/{name}", replacePetHandler(svc, locks))
		pr.Patch("/{name}", updatePetHandler(svc, locks))
		pr.Delete("/{name}", deletePetHandler(svc, locks))

		pr.Post("/{name}/intake", recordIntakeHandler(svc, locks))
		pr.Get("/{name}/intake/today", todayIntakeHandler(svc))
	})
}

// createPetRequest es el cuerpo para registrar un perro.
type createPetRequest struct {
	Name      string  `json:"name"`
	BirthDate string  `json:"birth_date"` // YYYY-MM-DD
	WeightKg  float64 `json:"weight_kg"`
	Breed     string  `json:"breed"`  // opcional
	Status    int     `json:"status"` // 1-13, opcional
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name      *string  `json:"name"`
	BirthDate *string  `json:"birth_date"`
	WeightKg  *float64 `json:"weight_kg"`
	Breed     *string  `json:"breed"`
	Status    *int     `json:"status"`
}

type intakeRequest struct {
	Calories *int `json:"calories"`
	WaterML  *int `json:"water_ml"`
}

type petResponse struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	Name        string    `json:"name"`
	BirthDate   string    `json:"birth_date"`
	AgeYears    int       `json:"age_years"`
	WeightKg    float64   `json:"weight_kg"`
	Breed       string    `json:"breed,omitempty"`
	Status      int       `json:"status,omitempty"`
	StatusLabel string    `json:"status_label,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type rangeResponse struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type targetResponse struct {
	RER     float64       `json:"rer_kcal"`
	DER     rangeResponse `json:"der_kcal"`
	WaterML rangeResponse `json:"water_ml"`
}

type recordResponse struct {
	PetName  string `json:"pet_name"`
	Date     string `json:"date"`
	Calories int    `json:"calories"`
	WaterML  int    `json:"water_ml"`
}

// profileResponse es la vista de detalle con metas y progreso del día.
type profileResponse struct {
	Pet              petResponse     `json:"pet"`
	Target           *targetResponse `json:"target,omitempty"`
	Today            recordResponse  `json:"today"`
	CaloriesProgress float64         `json:"calories_progress_pct"`
	WaterProgress    float64         `json:"water_progress_pct"`
}

// createPetHandler godoc
// @Summary Registrar perro
// @Description Crea el perfil de un perro para el owner autenticado. El nombre es único por owner. Autenticación: `X-Debug-Owner-ID` (dev) o `Authorization: Bearer <token>`.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-Owner-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token"
// @Param payload body createPetRequest true "Perfil; birth_date en formato YYYY-MM-DD"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {string} string "a pet with that name already exists"
// @Router /pets [post]
func createPetHandler(svc *Service, locks *ownerlock.Locker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerFrom(w, r)
		if !ok {
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		bd, err := time.Parse(DateLayout, strings.TrimSpace(req.BirthDate))
		if err != nil {
			http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		unlock := locks.Lock(owner)
		defer unlock()

		p, err := svc.Create(r.Context(), owner, CreateInput{
			Name:      req.Name,
			BirthDate: bd,
			WeightKg:  req.WeightKg,
			Breed:     req.Breed,
			Status:    nutrition.Status(req.Status),
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p, svc.Now()))
	}
}

// listPetsHandler godoc
// @Summary Listar perros
// @Tags pets
// @Produce json
// @Param X-Debug-Owner-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token"
// @Success 200 {array} petResponse
// @Failure 401 {string} string "unauthorized"
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerFrom(w, r)
		if !ok {
			return
		}

		items, err := svc.List(r.Context(), owner)
		if err != nil {
			writeError(w, err)
			return
		}

		now := svc.Now()
		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p, now))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Detalle de perro
// @Description Perfil, metas diarias (si tiene estado), ingesta de hoy y progreso en % sobre los máximos.
// @Tags pets
// @Produce json
// @Param X-Debug-Owner-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token"
// @Param name path string true "Nombre del perro"
// @Success 200 {object} profileResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{name} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerFrom(w, r)
		if !ok {
			return
		}
		name, ok := nameParam(w, r)
		if !ok {
			return
		}

		prof, err := svc.Detail(r.Context(), owner, name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(prof, svc.Now()))
	}
}

// replacePetHandler godoc
// @Summary Crear o reemplazar perro
// @Description Guarda el perfil completo con el nombre de la ruta. Si ya existe, lo reemplaza (los registros diarios se conservan).
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-Owner-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token"
// @Param name path string true "Nombre del perro"
// @Param payload body createPetRequest true "Perfil completo; name opcional, debe coincidir con la ruta"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Router /pets/{name} [put]
func replacePetHandler(svc *Service, locks *ownerlock.Locker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerFrom(w, r)
		if !ok {
			return
		}
		name, ok := nameParam(w, r)
		if !ok {
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if body := strings.TrimSpace(req.Name); body != "" && !strings.EqualFold(body, strings.TrimSpace(name)) {
			http.Error(w, "name in body does not match path", http.StatusBadRequest)
			return
		}
		bd, err := time.Parse(DateLayout, strings.TrimSpace(req.BirthDate))
		if err != nil {
			http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		unlock := locks.Lock(owner)
		defer unlock()

		p, err := svc.Save(r.Context(), owner, CreateInput{
			Name:      name,
			BirthDate: bd,
			WeightKg:  req.WeightKg,
			Breed:     req.Breed,
			Status:    nutrition.Status(req.Status),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p, svc.Now()))
	}
}

// updatePetHandler godoc
// @Summary Editar perro
// @Description Cambios parciales. Renombrar arrastra los registros diarios.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-Owner-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token"
// @Param name path string true "Nombre actual"
// @Param payload body updatePetRequest true "Campos a cambiar"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Failure 409 {string} string "a pet with that name already exists"
// @Router /pets/{name} [patch]
func updatePetHandler(svc *Service, locks *ownerlock.Locker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerFrom(w, r)
		if !ok {
			return
		}
		name, ok := nameParam(w, r)
		if !ok {
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		var req updatePetRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Name:     req.Name,
			WeightKg: req.WeightKg,
			Breed:    req.Breed,
		}
		if req.BirthDate != nil {
			bd, err := time.Parse(DateLayout, strings.TrimSpace(*req.BirthDate))
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.BirthDate = &bd
		}
		if req.Status != nil {
			st := nutrition.Status(*req.Status)
			in.Status = &st
		}

		unlock := locks.Lock(owner)
		defer unlock()

		updated, err := svc.Update(r.Context(), owner, name, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(updated, svc.Now()))
	}
}

// deletePetHandler godoc
// @Summary Borrar perro
// @Description Borra el perfil y todos sus registros diarios.
// @Tags pets
// @Param X-Debug-Owner-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token"
// @Param name path string true "Nombre del perro"
// @Success 204
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{name} [delete]
func deletePetHandler(svc *Service, locks *ownerlock.Locker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerFrom(w, r)
		if !ok {
			return
		}
		name, ok := nameParam(w, r)
		if !ok {
			return
		}

		unlock := locks.Lock(owner)
		defer unlock()

		if err := svc.Delete(r.Context(), owner, name); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// recordIntakeHandler godoc
// @Summary Registrar ingesta de hoy
// @Description Suma calorías y/o agua al registro del día (no reemplaza).
// @Tags intake
// @Accept json
// @Produce json
// @Param X-Debug-Owner-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token"
// @Param name path string true "Nombre del perro"
// @Param payload body intakeRequest true "Al menos uno de calories/water_ml"
// @Success 200 {object} recordResponse
// @Failure 400 {string} string "invalid json / valores negativos"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{name}/intake [post]
func recordIntakeHandler(svc *Service, locks *ownerlock.Locker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerFrom(w, r)
		if !ok {
			return
		}
		name, ok := nameParam(w, r)
		if !ok {
			return
		}

		var req intakeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Calories == nil && req.WaterML == nil {
			http.Error(w, "calories or water_ml required", http.StatusBadRequest)
			return
		}
		var calories, water int
		if req.Calories != nil {
			calories = *req.Calories
		}
		if req.WaterML != nil {
			water = *req.WaterML
		}

		unlock := locks.Lock(owner)
		defer unlock()

		rec, err := svc.RecordIntake(r.Context(), owner, name, calories, water)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

// todayIntakeHandler godoc
// @Summary Ingesta de hoy
// @Tags intake
// @Produce json
// @Param X-Debug-Owner-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token"
// @Param name path string true "Nombre del perro"
// @Success 200 {object} recordResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found / no intake recorded for that day"
// @Router /pets/{name}/intake/today [get]
func todayIntakeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, ok := ownerFrom(w, r)
		if !ok {
			return
		}
		name, ok := nameParam(w, r)
		if !ok {
			return
		}

		rec, err := svc.TodayRecord(r.Context(), owner, name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func ownerFrom(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.OwnerID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return claims.OwnerID, true
}

// nameParam decodifica el nombre (puede venir con espacios o caracteres no ASCII).
func nameParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || strings.TrimSpace(name) == "" {
		http.Error(w, "invalid pet name", http.StatusBadRequest)
		return "", false
	}
	return name, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoRecord):
		http.Error(w, ErrNoRecord.Error(), http.StatusNotFound)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPetResponse(p Pet, now time.Time) petResponse {
	return petResponse{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		BirthDate:   p.BirthDate.Format(DateLayout),
		AgeYears:    p.AgeYears(now),
		WeightKg:    p.WeightKg,
		Breed:       p.Breed,
		Status:      int(p.Status),
		StatusLabel: p.Status.Label(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toRecordResponse(rec DailyRecord) recordResponse {
	return recordResponse{
		PetName:  rec.PetName,
		Date:     rec.Date,
		Calories: rec.Calories,
		WaterML:  rec.WaterML,
	}
}

func toProfileResponse(prof Profile, now time.Time) profileResponse {
	out := profileResponse{
		Pet:              toPetResponse(prof.Pet, now),
		Today:            toRecordResponse(prof.Today),
		CaloriesProgress: prof.CaloriesProgress,
		WaterProgress:    prof.WaterProgress,
	}
	if prof.Target != nil {
		out.Target = &targetResponse{
			RER:     prof.Target.RER,
			DER:     rangeResponse{Min: prof.Target.DER.Min, Max: prof.Target.DER.Max},
			WaterML: rangeResponse{Min: prof.Target.Water.Min, Max: prof.Target.Water.Max},
		}
	}
	return out
}

// writeJSON está duplicado en los handlers de cada módulo (pets/conversation).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
