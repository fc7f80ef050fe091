package memory_test

import (
	"testing"

	"plantpal_backend/internal/repositories/memory"
	"plantpal_backend/internal/repositories/repotest"
)

func TestMemoryRepositories(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repotest.Fixture {
		careRepo := memory.NewCareActionRepository()
		return repotest.Fixture{
			Users:           memory.NewUserRepository(),
			Plants:          memory.NewPlantRepository(careRepo),
			Care:            careRepo,
			Shares:          memory.NewShareRepository(),
			Identifications: memory.NewIdentificationRepository(),
		}
	})
}
