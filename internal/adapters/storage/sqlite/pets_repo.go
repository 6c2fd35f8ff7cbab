package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/weijenchou/dogdietlinebot/internal/domain/nutrition"
	"github.com/weijenchou/dogdietlinebot/internal/domain/pets"
)

const timeLayout = time.RFC3339Nano

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) CreatePet(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (id, owner_id, name, birth_date, weight_kg, breed, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID, p.OwnerUserID, p.Name,
		p.BirthDate.Format(pets.DateLayout), p.WeightKg, p.Breed, int(p.Status),
		p.CreatedAt.UTC().Format(timeLayout), p.UpdatedAt.UTC().Format(timeLayout),
	)
	if isUniqueViolation(err) {
		return pets.ErrConflict
	}
	return err
}

func (r *PetsRepo) SavePet(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (id, owner_id, name, birth_date, weight_kg, breed, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (owner_id, name) DO UPDATE SET
			birth_date = excluded.birth_date,
			weight_kg  = excluded.weight_kg,
			breed      = excluded.breed,
			status     = excluded.status,
			updated_at = excluded.updated_at
	`,
		p.ID, p.OwnerUserID, p.Name,
		p.BirthDate.Format(pets.DateLayout), p.WeightKg, p.Breed, int(p.Status),
		p.CreatedAt.UTC().Format(timeLayout), p.UpdatedAt.UTC().Format(timeLayout),
	)
	return err
}

func (r *PetsRepo) GetPet(ctx context.Context, ownerUserID, name string) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, birth_date, weight_kg, breed, status, created_at, updated_at
		FROM pets
		WHERE owner_id = ? AND name = ?
	`, ownerUserID, name)

	p, err := scanPet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, err
}

func (r *PetsRepo) ListPets(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, name, birth_date, weight_kg, breed, status, created_at, updated_at
		FROM pets
		WHERE owner_id = ?
		ORDER BY name ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdatePet: el renombre se propaga a daily_records por ON UPDATE CASCADE.
func (r *PetsRepo) UpdatePet(ctx context.Context, ownerUserID, currentName string, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET name = ?, birth_date = ?, weight_kg = ?, breed = ?, status = ?, updated_at = ?
		WHERE owner_id = ? AND name = ?
	`,
		p.Name, p.BirthDate.Format(pets.DateLayout), p.WeightKg, p.Breed, int(p.Status),
		p.UpdatedAt.UTC().Format(timeLayout),
		ownerUserID, currentName,
	)
	if isUniqueViolation(err) {
		return pets.ErrConflict
	}
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

// DeletePet: daily_records se borran por ON DELETE CASCADE.
func (r *PetsRepo) DeletePet(ctx context.Context, ownerUserID, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE owner_id = ? AND name = ?`, ownerUserID, name)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) AddDailyIntake(ctx context.Context, ownerUserID, petName, date string, calories, waterML int, at time.Time) (pets.DailyRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return pets.DailyRecord{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM pets WHERE owner_id = ? AND name = ?`, ownerUserID, petName).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.DailyRecord{}, pets.ErrNotFound
	}
	if err != nil {
		return pets.DailyRecord{}, err
	}

	rec := pets.DailyRecord{OwnerUserID: ownerUserID, PetName: petName, Date: date, UpdatedAt: at}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO daily_records (owner_id, pet_name, date, calories, water_ml, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (owner_id, pet_name, date) DO UPDATE SET
			calories   = calories + excluded.calories,
			water_ml   = water_ml + excluded.water_ml,
			updated_at = excluded.updated_at
		RETURNING calories, water_ml
	`, ownerUserID, petName, date, calories, waterML, at.UTC().Format(timeLayout)).Scan(&rec.Calories, &rec.WaterML)
	if err != nil {
		return pets.DailyRecord{}, fmt.Errorf("upsert daily record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return pets.DailyRecord{}, err
	}
	return rec, nil
}

func (r *PetsRepo) GetDailyRecord(ctx context.Context, ownerUserID, petName, date string) (pets.DailyRecord, error) {
	rec := pets.DailyRecord{OwnerUserID: ownerUserID, PetName: petName, Date: date}
	var updated string
	err := r.db.QueryRowContext(ctx, `
		SELECT calories, water_ml, updated_at
		FROM daily_records
		WHERE owner_id = ? AND pet_name = ? AND date = ?
	`, ownerUserID, petName, date).Scan(&rec.Calories, &rec.WaterML, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.DailyRecord{}, pets.ErrNotFound
	}
	if err != nil {
		return pets.DailyRecord{}, err
	}
	rec.UpdatedAt, _ = time.Parse(timeLayout, updated)
	return rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(s scanner) (pets.Pet, error) {
	var (
		p                       pets.Pet
		birth, created, updated string
		status                  int
	)
	if err := s.Scan(&p.ID, &p.OwnerUserID, &p.Name, &birth, &p.WeightKg, &p.Breed, &status, &created, &updated); err != nil {
		return pets.Pet{}, err
	}

	bd, err := time.Parse(pets.DateLayout, birth)
	if err != nil {
		return pets.Pet{}, fmt.Errorf("parse birth_date %q: %w", birth, err)
	}
	p.BirthDate = bd
	p.Status = nutrition.Status(status)
	p.CreatedAt, _ = time.Parse(timeLayout, created)
	p.UpdatedAt, _ = time.Parse(timeLayout, updated)
	return p, nil
}
