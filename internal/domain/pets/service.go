package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/weijenchou/dogdietlinebot/internal/domain/nutrition"
	"github.com/weijenchou/dogdietlinebot/internal/ports/breeds"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
	ErrConflict     = errors.New("a pet with that name already exists")

	ErrFutureBirthDate = fmt.Errorf("%w: birthday cannot be in the future", ErrInvalidInput)
	ErrUnknownBreed    = fmt.Errorf("%w: breed not found", ErrInvalidInput)
	ErrNegativeIntake  = fmt.Errorf("%w: calories and water cannot be negative", ErrInvalidInput)
	ErrNoRecord        = fmt.Errorf("%w: no intake recorded for that day", ErrNotFound)
)

type Service struct {
	repo   Repository
	breeds breeds.Lookup // opcional
	now    func() time.Time
}

func NewService(repo Repository, breedLookup breeds.Lookup) *Service {
	return &Service{
		repo:   repo,
		breeds: breedLookup,
		now:    time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Today es la fecha de calendario actual según el reloj del servicio.
func (s *Service) Today() string {
	return s.now().Format(DateLayout)
}

func (s *Service) Now() time.Time {
	return s.now()
}

type CreateInput struct {
	Name      string
	BirthDate time.Time
	WeightKg  float64
	Breed     string
	Status    nutrition.Status // 0 = sin estado
}

// Validate comprueba las invariantes del perfil sin tocar el repositorio.
func (s *Service) Validate(ctx context.Context, in CreateInput) (CreateInput, error) {
	name, err := petKey(in.Name)
	if err != nil {
		return CreateInput{}, err
	}
	in.Name = name

	if _, err := nutrition.RestingEnergyRequirement(in.WeightKg); err != nil {
		return CreateInput{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if in.BirthDate.IsZero() {
		return CreateInput{}, fmt.Errorf("%w: birthday required", ErrInvalidInput)
	}
	in.BirthDate = dateOnly(in.BirthDate)
	if in.BirthDate.After(dateOnly(s.now())) {
		return CreateInput{}, ErrFutureBirthDate
	}
	if in.Status != 0 && !in.Status.Valid() {
		return CreateInput{}, fmt.Errorf("%w: %w", ErrInvalidInput, nutrition.ErrUnknownStatus)
	}

	breed, err := s.resolveBreed(ctx, in.Breed)
	if err != nil {
		return CreateInput{}, err
	}
	in.Breed = breed
	return in, nil
}

// Create falla con ErrConflict si el nombre ya existe para el owner.
func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	p, err := s.newPet(ctx, ownerUserID, in)
	if err != nil {
		return Pet{}, err
	}
	if err := s.repo.CreatePet(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Save crea o reemplaza el perfil con ese nombre.
func (s *Service) Save(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	p, err := s.newPet(ctx, ownerUserID, in)
	if err != nil {
		return Pet{}, err
	}
	if err := s.repo.SavePet(ctx, p); err != nil {
		return Pet{}, err
	}
	return s.repo.GetPet(ctx, p.OwnerUserID, p.Name)
}

func (s *Service) newPet(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	owner, err := ownerKey(ownerUserID)
	if err != nil {
		return Pet{}, err
	}
	in, err = s.Validate(ctx, in)
	if err != nil {
		return Pet{}, err
	}

	now := s.now()
	return Pet{
		ID:          uuid.NewString(),
		OwnerUserID: owner,
		Name:        in.Name,
		BirthDate:   in.BirthDate,
		WeightKg:    in.WeightKg,
		Breed:       in.Breed,
		Status:      in.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (s *Service) Get(ctx context.Context, ownerUserID, name string) (Pet, error) {
	owner, err := ownerKey(ownerUserID)
	if err != nil {
		return Pet{}, err
	}
	n, err := petKey(name)
	if err != nil {
		return Pet{}, err
	}
	return s.repo.GetPet(ctx, owner, n)
}

func (s *Service) List(ctx context.Context, ownerUserID string) ([]Pet, error) {
	owner, err := ownerKey(ownerUserID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListPets(ctx, owner)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name      *string
	BirthDate *time.Time
	WeightKg  *float64
	Breed     *string
	Status    *nutrition.Status
}

// Update aplica cambios parciales. Renombrar arrastra los registros diarios.
func (s *Service) Update(ctx context.Context, ownerUserID, name string, in UpdateInput) (Pet, error) {
	current, err := s.Get(ctx, ownerUserID, name)
	if err != nil {
		return Pet{}, err
	}

	next := CreateInput{
		Name:      current.Name,
		BirthDate: current.BirthDate,
		WeightKg:  current.WeightKg,
		Breed:     current.Breed,
		Status:    current.Status,
	}
	if in.Name != nil {
		next.Name = *in.Name
	}
	if in.BirthDate != nil {
		next.BirthDate = *in.BirthDate
	}
	if in.WeightKg != nil {
		next.WeightKg = *in.WeightKg
	}
	if in.Breed != nil {
		next.Breed = *in.Breed
	}
	if in.Status != nil {
		next.Status = *in.Status
	}

	next, err = s.Validate(ctx, next)
	if err != nil {
		return Pet{}, err
	}

	updated := current
	updated.Name = next.Name
	updated.BirthDate = next.BirthDate
	updated.WeightKg = next.WeightKg
	updated.Breed = next.Breed
	updated.Status = next.Status
	updated.UpdatedAt = s.now()

	if err := s.repo.UpdatePet(ctx, current.OwnerUserID, current.Name, updated); err != nil {
		return Pet{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, ownerUserID, name string) error {
	owner, err := ownerKey(ownerUserID)
	if err != nil {
		return err
	}
	n, err := petKey(name)
	if err != nil {
		return err
	}
	return s.repo.DeletePet(ctx, owner, n)
}

// RecordIntake suma al registro de hoy. El perro debe existir.
func (s *Service) RecordIntake(ctx context.Context, ownerUserID, name string, calories, waterML int) (DailyRecord, error) {
	if calories < 0 || waterML < 0 {
		return DailyRecord{}, ErrNegativeIntake
	}
	p, err := s.Get(ctx, ownerUserID, name)
	if err != nil {
		return DailyRecord{}, err
	}
	return s.repo.AddDailyIntake(ctx, p.OwnerUserID, p.Name, s.Today(), calories, waterML, s.now())
}

// TodayRecord devuelve ErrNotFound si no hay perro y ErrNoRecord si no hay registro hoy.
func (s *Service) TodayRecord(ctx context.Context, ownerUserID, name string) (DailyRecord, error) {
	p, err := s.Get(ctx, ownerUserID, name)
	if err != nil {
		return DailyRecord{}, err
	}
	rec, err := s.repo.GetDailyRecord(ctx, p.OwnerUserID, p.Name, s.Today())
	if errors.Is(err, ErrNotFound) {
		return DailyRecord{}, ErrNoRecord
	}
	return rec, err
}

func (s *Service) Detail(ctx context.Context, ownerUserID, name string) (Profile, error) {
	p, err := s.Get(ctx, ownerUserID, name)
	if err != nil {
		return Profile{}, err
	}

	out := Profile{
		Pet:   p,
		Today: DailyRecord{OwnerUserID: p.OwnerUserID, PetName: p.Name, Date: s.Today()},
	}
	rec, err := s.repo.GetDailyRecord(ctx, p.OwnerUserID, p.Name, out.Today.Date)
	switch {
	case err == nil:
		out.Today = rec
	case !errors.Is(err, ErrNotFound):
		return Profile{}, err
	}

	if p.Status.Valid() {
		t, err := nutrition.ComputeTarget(p.WeightKg, p.Status)
		if err != nil {
			return Profile{}, err
		}
		out.Target = &t
		out.CaloriesProgress = nutrition.Progress(float64(out.Today.Calories), t.DER.Max)
		out.WaterProgress = nutrition.Progress(float64(out.Today.WaterML), t.Water.Max)
	}
	return out, nil
}

func (s *Service) resolveBreed(ctx context.Context, breed string) (string, error) {
	breed = strings.TrimSpace(breed)
	if breed == "" || s.breeds == nil {
		return breed, nil
	}
	info, err := s.breeds.GetBreedInfo(ctx, breed)
	if err != nil {
		if errors.Is(err, breeds.ErrNotFound) {
			return "", ErrUnknownBreed
		}
		return "", err
	}
	return info.Name, nil
}
