// Package storagetest contiene la batería común que cada pets.Repository debe pasar.
package storagetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weijenchou/dogdietlinebot/internal/domain/nutrition"
	"github.com/weijenchou/dogdietlinebot/internal/domain/pets"
)

// Run ejecuta la batería. newRepo debe devolver un repositorio vacío en cada llamada.
func Run(t *testing.T, newRepo func(t *testing.T) pets.Repository) {
	t.Helper()

	cases := []struct {
		name string
		fn   func(t *testing.T, repo pets.Repository)
	}{
		{"CreateAndGet", testCreateAndGet},
		{"CreateConflict", testCreateConflict},
		{"SaveReplaces", testSaveReplaces},
		{"ListIsolatedPerOwner", testListIsolated},
		{"UpdateRenameCascades", testRenameCascades},
		{"UpdateRenameConflict", testRenameConflict},
		{"DeleteCascades", testDeleteCascades},
		{"IntakeAccumulates", testIntakeAccumulates},
		{"IntakeRequiresPet", testIntakeRequiresPet},
		{"ConcurrentIntake", testConcurrentIntake},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			c.fn(t, newRepo(t))
		})
	}
}

var at = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func newPet(owner, name string) pets.Pet {
	return pets.Pet{
		ID:          uuid.NewString(),
		OwnerUserID: owner,
		Name:        name,
		BirthDate:   time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		WeightKg:    10,
		Breed:       "Shiba Inu",
		Status:      nutrition.StatusNeuteredAdult,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
}

func testCreateAndGet(t *testing.T, repo pets.Repository) {
	ctx := context.Background()
	p := newPet("o1", "Rex")
	require.NoError(t, repo.CreatePet(ctx, p))

	got, err := repo.GetPet(ctx, "o1", "Rex")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "2022-01-01", got.BirthDate.Format(pets.DateLayout))
	assert.Equal(t, 10.0, got.WeightKg)
	assert.Equal(t, "Shiba Inu", got.Breed)
	assert.Equal(t, nutrition.StatusNeuteredAdult, got.Status)

	_, err = repo.GetPet(ctx, "o2", "Rex")
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func testCreateConflict(t *testing.T, repo pets.Repository) {
	ctx := context.Background()
	require.NoError(t, repo.CreatePet(ctx, newPet("o1", "Rex")))
	assert.ErrorIs(t, repo.CreatePet(ctx, newPet("o1", "Rex")), pets.ErrConflict)
	// mismo nombre con otro owner es válido
	assert.NoError(t, repo.CreatePet(ctx, newPet("o2", "Rex")))
}

func testSaveReplaces(t *testing.T, repo pets.Repository) {
	ctx := context.Background()
	first := newPet("o1", "Rex")
	require.NoError(t, repo.SavePet(ctx, first))

	second := newPet("o1", "Rex")
	second.WeightKg = 12.5
	require.NoError(t, repo.SavePet(ctx, second))

	got, err := repo.GetPet(ctx, "o1", "Rex")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, 12.5, got.WeightKg)
}

func testListIsolated(t *testing.T, repo pets.Repository) {
	ctx := context.Background()
	require.NoError(t, repo.CreatePet(ctx, newPet("o1", "Rex")))
	require.NoError(t, repo.CreatePet(ctx, newPet("o1", "Ace")))
	require.NoError(t, repo.CreatePet(ctx, newPet("o2", "Zed")))

	items, err := repo.ListPets(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Ace", items[0].Name)
	assert.Equal(t, "Rex", items[1].Name)

	items, err = repo.ListPets(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func testRenameCascades(t *testing.T, repo pets.Repository) {
	ctx := context.Background()
	p := newPet("o1", "Rex")
	require.NoError(t, repo.CreatePet(ctx, p))
	_, err := repo.AddDailyIntake(ctx, "o1", "Rex", "2024-06-14", 100, 200, at)
	require.NoError(t, err)
	_, err = repo.AddDailyIntake(ctx, "o1", "Rex", "2024-06-15", 300, 400, at)
	require.NoError(t, err)

	p.Name = "Max"
	require.NoError(t, repo.UpdatePet(ctx, "o1", "Rex", p))

	_, err = repo.GetPet(ctx, "o1", "Rex")
	assert.ErrorIs(t, err, pets.ErrNotFound)
	_, err = repo.GetDailyRecord(ctx, "o1", "Rex", "2024-06-15")
	assert.ErrorIs(t, err, pets.ErrNotFound)

	rec, err := repo.GetDailyRecord(ctx, "o1", "Max", "2024-06-14")
	require.NoError(t, err)
	assert.Equal(t, 100, rec.Calories)
	rec, err = repo.GetDailyRecord(ctx, "o1", "Max", "2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, 400, rec.WaterML)
	assert.Equal(t, "Max", rec.PetName)
}

func testRenameConflict(t *testing.T, repo pets.Repository) {
	ctx := context.Background()
	p := newPet("o1", "Rex")
	require.NoError(t, repo.CreatePet(ctx, p))
	require.NoError(t, repo.CreatePet(ctx, newPet("o1", "Max")))

	p.Name = "Max"
	assert.ErrorIs(t, repo.UpdatePet(ctx, "o1", "Rex", p), pets.ErrConflict)

	_, err := repo.GetPet(ctx, "o1", "Rex")
	assert.NoError(t, err)
	assert.ErrorIs(t, repo.UpdatePet(ctx, "o1", "Ghost", p), pets.ErrNotFound)
}

func testDeleteCascades(t *testing.T, repo pets.Repository) {
	ctx := context.Background()
	require.NoError(t, repo.CreatePet(ctx, newPet("o1", "Rex")))
	_, err := repo.AddDailyIntake(ctx, "o1", "Rex", "2024-06-15", 100, 200, at)
	require.NoError(t, err)

	require.NoError(t, repo.DeletePet(ctx, "o1", "Rex"))
	_, err = repo.GetDailyRecord(ctx, "o1", "Rex", "2024-06-15")
	assert.ErrorIs(t, err, pets.ErrNotFound)

	// un perro nuevo con el mismo nombre empieza sin historial
	require.NoError(t, repo.CreatePet(ctx, newPet("o1", "Rex")))
	_, err = repo.GetDailyRecord(ctx, "o1", "Rex", "2024-06-15")
	assert.ErrorIs(t, err, pets.ErrNotFound)

	assert.ErrorIs(t, repo.DeletePet(ctx, "o1", "Ghost"), pets.ErrNotFound)
}

func testIntakeAccumulates(t *testing.T, repo pets.Repository) {
	ctx := context.Background()
	require.NoError(t, repo.CreatePet(ctx, newPet("o1", "Rex")))

	_, err := repo.AddDailyIntake(ctx, "o1", "Rex", "2024-06-15", 100, 250, at)
	require.NoError(t, err)
	rec, err := repo.AddDailyIntake(ctx, "o1", "Rex", "2024-06-15", 50, 0, at)
	require.NoError(t, err)
	assert.Equal(t, 150, rec.Calories)
	assert.Equal(t, 250, rec.WaterML)

	stored, err := repo.GetDailyRecord(ctx, "o1", "Rex", "2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, 150, stored.Calories)

	// otro día, registro independiente
	rec, err = repo.AddDailyIntake(ctx, "o1", "Rex", "2024-06-16", 10, 10, at)
	require.NoError(t, err)
	assert.Equal(t, 10, rec.Calories)
}

func testIntakeRequiresPet(t *testing.T, repo pets.Repository) {
	_, err := repo.AddDailyIntake(context.Background(), "o1", "Ghost", "2024-06-15", 1, 1, at)
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func testConcurrentIntake(t *testing.T, repo pets.Repository) {
	ctx := context.Background()
	require.NoError(t, repo.CreatePet(ctx, newPet("o1", "Rex")))

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.AddDailyIntake(ctx, "o1", "Rex", "2024-06-15", 10, 5, at); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	rec, err := repo.GetDailyRecord(ctx, "o1", "Rex", "2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, n*10, rec.Calories)
	assert.Equal(t, n*5, rec.WaterML)
}
