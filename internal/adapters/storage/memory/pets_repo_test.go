package memory

import (
	"testing"

	"github.com/weijenchou/dogdietlinebot/internal/adapters/storage/storagetest"
	"github.com/weijenchou/dogdietlinebot/internal/domain/pets"
)

func TestPetRepo_Contract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) pets.Repository {
		return NewPetRepo()
	})
}
