package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/weijenchou/dogdietlinebot/internal/domain/nutrition"
	"github.com/weijenchou/dogdietlinebot/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) CreatePet(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, owner_id, name,
			birth_date, weight_kg, breed, status,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		p.ID, p.OwnerUserID, p.Name,
		p.BirthDate, p.WeightKg, p.Breed, int(p.Status),
		p.CreatedAt, p.UpdatedAt,
	)
	if pgCode(err) == uniqueViolation {
		return pets.ErrConflict
	}
	return err
}

func (r *PetsRepo) SavePet(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, owner_id, name,
			birth_date, weight_kg, breed, status,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (owner_id, name) DO UPDATE SET
			birth_date = EXCLUDED.birth_date,
			weight_kg  = EXCLUDED.weight_kg,
			breed      = EXCLUDED.breed,
			status     = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`,
		p.ID, p.OwnerUserID, p.Name,
		p.BirthDate, p.WeightKg, p.Breed, int(p.Status),
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) GetPet(ctx context.Context, ownerUserID, name string) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, birth_date, weight_kg, breed, status, created_at, updated_at
		FROM pets
		WHERE owner_id = $1 AND name = $2
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
		WHERE owner_id = $1
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
		SET
			name = $3,
			birth_date = $4,
			weight_kg = $5,
			breed = $6,
			status = $7,
			updated_at = $8
		WHERE owner_id = $1 AND name = $2
	`,
		ownerUserID, currentName,
		p.Name, p.BirthDate, p.WeightKg, p.Breed, int(p.Status), p.UpdatedAt,
	)
	if pgCode(err) == uniqueViolation {
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

func (r *PetsRepo) DeletePet(ctx context.Context, ownerUserID, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE owner_id = $1 AND name = $2`, ownerUserID, name)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

// AddDailyIntake suma en una sola sentencia; la FK rechaza perros inexistentes.
func (r *PetsRepo) AddDailyIntake(ctx context.Context, ownerUserID, petName, date string, calories, waterML int, at time.Time) (pets.DailyRecord, error) {
	rec := pets.DailyRecord{OwnerUserID: ownerUserID, PetName: petName, Date: date, UpdatedAt: at}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO daily_records (owner_id, pet_name, date, calories, water_ml, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (owner_id, pet_name, date) DO UPDATE SET
			calories   = daily_records.calories + EXCLUDED.calories,
			water_ml   = daily_records.water_ml + EXCLUDED.water_ml,
			updated_at = EXCLUDED.updated_at
		RETURNING calories, water_ml
	`, ownerUserID, petName, date, calories, waterML, at).Scan(&rec.Calories, &rec.WaterML)
	if pgCode(err) == foreignKeyViolation {
		return pets.DailyRecord{}, pets.ErrNotFound
	}
	if err != nil {
		return pets.DailyRecord{}, fmt.Errorf("upsert daily record: %w", err)
	}
	return rec, nil
}

func (r *PetsRepo) GetDailyRecord(ctx context.Context, ownerUserID, petName, date string) (pets.DailyRecord, error) {
	rec := pets.DailyRecord{OwnerUserID: ownerUserID, PetName: petName, Date: date}
	err := r.db.QueryRowContext(ctx, `
		SELECT calories, water_ml, updated_at
		FROM daily_records
		WHERE owner_id = $1 AND pet_name = $2 AND date = $3
	`, ownerUserID, petName, date).Scan(&rec.Calories, &rec.WaterML, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.DailyRecord{}, pets.ErrNotFound
	}
	if err != nil {
		return pets.DailyRecord{}, err
	}
	return rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(s scanner) (pets.Pet, error) {
	var (
		p      pets.Pet
		status int
	)
	if err := s.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&p.BirthDate, // DATE: pgx lo mapea a time.Time medianoche UTC
		&p.WeightKg,
		&p.Breed,
		&status,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	p.Status = nutrition.Status(status)
	return p, nil
}
