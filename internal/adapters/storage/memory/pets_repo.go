package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/weijenchou/dogdietlinebot/internal/domain/pets"
)

type recordKey struct {
	owner string
	pet   string
	date  string
}

// petRepo guarda perros por owner/nombre y registros diarios por (owner, perro, fecha).
// Un único mutex cubre ambos mapas: las cascadas (renombrar/borrar) y la suma
// de ingesta son atómicas.
type petRepo struct {
	mu      sync.RWMutex
	pets    map[string]map[string]pets.Pet
	records map[recordKey]pets.DailyRecord
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		pets:    make(map[string]map[string]pets.Pet),
		records: make(map[recordKey]pets.DailyRecord),
	}
}

func (r *petRepo) CreatePet(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.pets[p.OwnerUserID][p.Name]; exists {
		return pets.ErrConflict
	}
	r.put(p)
	return nil
}

func (r *petRepo) SavePet(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, exists := r.pets[p.OwnerUserID][p.Name]; exists {
		p.ID = cur.ID
		p.CreatedAt = cur.CreatedAt
	}
	r.put(p)
	return nil
}

func (r *petRepo) GetPet(ctx context.Context, ownerUserID, name string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.pets[ownerUserID][name]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) ListPets(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0, len(r.pets[ownerUserID]))
	for _, p := range r.pets[ownerUserID] {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *petRepo) UpdatePet(ctx context.Context, ownerUserID, currentName string, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.pets[ownerUserID][currentName]; !exists {
		return pets.ErrNotFound
	}
	p.OwnerUserID = ownerUserID

	if p.Name != currentName {
		if _, taken := r.pets[ownerUserID][p.Name]; taken {
			return pets.ErrConflict
		}
		delete(r.pets[ownerUserID], currentName)
		for k, rec := range r.records {
			if k.owner != ownerUserID || k.pet != currentName {
				continue
			}
			delete(r.records, k)
			rec.PetName = p.Name
			r.records[recordKey{owner: ownerUserID, pet: p.Name, date: k.date}] = rec
		}
	}
	r.put(p)
	return nil
}

func (r *petRepo) DeletePet(ctx context.Context, ownerUserID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.pets[ownerUserID][name]; !exists {
		return pets.ErrNotFound
	}
	delete(r.pets[ownerUserID], name)
	for k := range r.records {
		if k.owner == ownerUserID && k.pet == name {
			delete(r.records, k)
		}
	}
	return nil
}

func (r *petRepo) AddDailyIntake(ctx context.Context, ownerUserID, petName, date string, calories, waterML int, at time.Time) (pets.DailyRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.pets[ownerUserID][petName]; !exists {
		return pets.DailyRecord{}, pets.ErrNotFound
	}

	k := recordKey{owner: ownerUserID, pet: petName, date: date}
	rec, ok := r.records[k]
	if !ok {
		rec = pets.DailyRecord{OwnerUserID: ownerUserID, PetName: petName, Date: date}
	}
	rec.Calories += calories
	rec.WaterML += waterML
	rec.UpdatedAt = at
	r.records[k] = rec
	return rec, nil
}

func (r *petRepo) GetDailyRecord(ctx context.Context, ownerUserID, petName, date string) (pets.DailyRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[recordKey{owner: ownerUserID, pet: petName, date: date}]
	if !ok {
		return pets.DailyRecord{}, pets.ErrNotFound
	}
	return rec, nil
}

// put asume r.mu tomado.
func (r *petRepo) put(p pets.Pet) {
	byName, ok := r.pets[p.OwnerUserID]
	if !ok {
		byName = make(map[string]pets.Pet)
		r.pets[p.OwnerUserID] = byName
	}
	byName[p.Name] = p
}
