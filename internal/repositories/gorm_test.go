package repositories_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"plantpal_backend/internal/models"
	"plantpal_backend/internal/repositories"
	"plantpal_backend/internal/repositories/repotest"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestGormRepositories runs the shared contract suite against Postgres.
// Skipped unless TEST_DATABASE_URL points to a disposable database.
func TestGormRepositories(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping relational repository suite")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Plant{},
		&models.CareAction{},
		&models.CommunityShare{},
		&models.Identification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	repotest.Run(t, func(t *testing.T) repotest.Fixture {
		// Each subtest gets an isolated schema so fixtures don't collide.
		schema := fmt.Sprintf("repotest_%d", time.Now().UnixNano())
		if err := db.Exec("CREATE SCHEMA " + schema).Error; err != nil {
			t.Fatalf("failed to create schema: %v", err)
		}
		t.Cleanup(func() {
			db.Exec("DROP SCHEMA " + schema + " CASCADE")
		})

		scoped := db.Session(&gorm.Session{NewDB: true})
		scoped.Exec("SET search_path TO " + schema)
		if err := scoped.AutoMigrate(
			&models.User{},
			&models.Plant{},
			&models.CareAction{},
			&models.CommunityShare{},
			&models.Identification{},
		); err != nil {
			t.Fatalf("failed to migrate schema %s: %v", schema, err)
		}

		return repotest.Fixture{
			Users:           repositories.NewUserRepository(scoped),
			Plants:          repositories.NewPlantRepository(scoped),
			Care:            repositories.NewCareActionRepository(scoped),
			Shares:          repositories.NewShareRepository(scoped),
			Identifications: repositories.NewIdentificationRepository(scoped),
		}
	})
}
