// Package repotest holds the contract test suite every repository
// implementation must pass. The memory backend runs it unconditionally; the
// relational backend runs it when a test database is available.
package repotest

import (
	"testing"
	"time"

	"plantpal_backend/internal/models"
	"plantpal_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixture bundles one freshly constructed set of repositories.
type Fixture struct {
	Users           repositories.UserRepository
	Plants          repositories.PlantRepository
	Care            repositories.CareActionRepository
	Shares          repositories.ShareRepository
	Identifications repositories.IdentificationRepository
}

// Factory returns an empty fixture for each subtest.
type Factory func(t *testing.T) Fixture

// Run executes the full contract suite against the given backend.
func Run(t *testing.T, newFixture Factory) {
	t.Run("UserLifecycle", func(t *testing.T) { testUserLifecycle(t, newFixture(t)) })
	t.Run("UserUniqueness", func(t *testing.T) { testUserUniqueness(t, newFixture(t)) })
	t.Run("TrialUserListing", func(t *testing.T) { testTrialUserListing(t, newFixture(t)) })
	t.Run("PlantLifecycle", func(t *testing.T) { testPlantLifecycle(t, newFixture(t)) })
	t.Run("PlantDeleteCascades", func(t *testing.T) { testPlantDeleteCascades(t, newFixture(t)) })
	t.Run("CarePendingQueries", func(t *testing.T) { testCarePendingQueries(t, newFixture(t)) })
	t.Run("ShareLikes", func(t *testing.T) { testShareLikes(t, newFixture(t)) })
	t.Run("Identifications", func(t *testing.T) { testIdentifications(t, newFixture(t)) })
}

func newUser(username string) *models.User {
	return &models.User{
		Username:                 username,
		Email:                    username + "@example.com",
		PasswordHash:             "x",
		Role:                     models.UserRoleUser,
		SubscriptionType:         models.SubscriptionFree,
		IdentificationsRemaining: 5,
	}
}

func testUserLifecycle(t *testing.T, f Fixture) {
	u := newUser("lifecycle")
	require.NoError(t, f.Users.Create(u))
	require.NotEmpty(t, u.ID)

	got, err := f.Users.FindByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "lifecycle", got.Username)

	got, err = f.Users.FindByUsername("lifecycle")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = f.Users.FindByEmail("lifecycle@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got.SubscriptionType = models.SubscriptionPremium
	got.StripeCustomerID = "cus_123"
	require.NoError(t, f.Users.Update(got))

	got, err = f.Users.FindByStripeCustomerID("cus_123")
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionPremium, got.SubscriptionType)

	require.NoError(t, f.Users.Delete(u.ID))
	_, err = f.Users.FindByID(u.ID)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func testUserUniqueness(t *testing.T, f Fixture) {
	require.NoError(t, f.Users.Create(newUser("taken")))

	err := f.Users.Create(newUser("taken"))
	assert.ErrorIs(t, err, repositories.ErrUserAlreadyExists)

	_, err = f.Users.FindByUsername("missing")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func testTrialUserListing(t *testing.T, f Fixture) {
	free := newUser("free-tier")
	require.NoError(t, f.Users.Create(free))

	for _, name := range []string{"trial-a", "trial-b"} {
		u := newUser(name)
		u.SubscriptionType = models.SubscriptionTrial
		end := time.Now().AddDate(0, 0, 7)
		u.TrialEndDate = &end
		require.NoError(t, f.Users.Create(u))
	}

	trials, err := f.Users.ListTrialUsers()
	require.NoError(t, err)
	assert.Len(t, trials, 2)
	for _, u := range trials {
		assert.Equal(t, models.SubscriptionTrial, u.SubscriptionType)
	}
}

func testPlantLifecycle(t *testing.T, f Fixture) {
	owner := newUser("plant-owner")
	require.NoError(t, f.Users.Create(owner))

	freq := 7
	p := &models.Plant{
		UserID:         owner.ID,
		Name:           "Monstera",
		Species:        "Monstera deliciosa",
		WaterFrequency: &freq,
	}
	require.NoError(t, f.Plants.Create(p))
	require.NotEmpty(t, p.ID)

	got, err := f.Plants.FindByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Monstera", got.Name)
	require.NotNil(t, got.WaterFrequency)
	assert.Equal(t, 7, *got.WaterFrequency)
	assert.Nil(t, got.FertilizeFrequency)

	now := time.Now()
	got.LastWatered = &now
	require.NoError(t, f.Plants.Update(got))

	plants, err := f.Plants.FindByUser(owner.ID)
	require.NoError(t, err)
	require.Len(t, plants, 1)
	assert.NotNil(t, plants[0].LastWatered)

	_, err = f.Plants.FindByID("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, repositories.ErrPlantNotFound)
}

func testPlantDeleteCascades(t *testing.T, f Fixture) {
	owner := newUser("cascade-owner")
	require.NoError(t, f.Users.Create(owner))

	p := &models.Plant{UserID: owner.ID, Name: "Fern"}
	require.NoError(t, f.Plants.Create(p))

	for _, kind := range []models.CareActionKind{models.CareActionWater, models.CareActionFertilize} {
		require.NoError(t, f.Care.Create(&models.CareAction{
			PlantID: p.ID,
			UserID:  owner.ID,
			Kind:    kind,
			DueDate: time.Now().AddDate(0, 0, 3),
		}))
	}

	require.NoError(t, f.Plants.Delete(p.ID))

	_, err := f.Plants.FindByID(p.ID)
	assert.ErrorIs(t, err, repositories.ErrPlantNotFound)

	actions, err := f.Care.FindByPlant(p.ID)
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func testCarePendingQueries(t *testing.T, f Fixture) {
	owner := newUser("care-owner")
	require.NoError(t, f.Users.Create(owner))

	p := &models.Plant{UserID: owner.ID, Name: "Cactus"}
	require.NoError(t, f.Plants.Create(p))

	pending := &models.CareAction{
		PlantID: p.ID,
		UserID:  owner.ID,
		Kind:    models.CareActionWater,
		DueDate: time.Now().AddDate(0, 0, 1),
	}
	require.NoError(t, f.Care.Create(pending))

	done := time.Now()
	completed := &models.CareAction{
		PlantID:     p.ID,
		UserID:      owner.ID,
		Kind:        models.CareActionWater,
		DueDate:     time.Now().AddDate(0, 0, -6),
		IsCompleted: true,
		CompletedAt: &done,
	}
	require.NoError(t, f.Care.Create(completed))

	forUser, err := f.Care.PendingForUser(owner.ID)
	require.NoError(t, err)
	require.Len(t, forUser, 1)
	assert.Equal(t, pending.ID, forUser[0].ID)

	forKind, err := f.Care.PendingForPlantKind(p.ID, models.CareActionWater)
	require.NoError(t, err)
	require.Len(t, forKind, 1)
	assert.Equal(t, pending.ID, forKind[0].ID)

	forKind, err = f.Care.PendingForPlantKind(p.ID, models.CareActionFertilize)
	require.NoError(t, err)
	assert.Empty(t, forKind)

	all, err := f.Care.FindByPlant(p.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func testShareLikes(t *testing.T, f Fixture) {
	owner := newUser("share-owner")
	require.NoError(t, f.Users.Create(owner))

	p := &models.Plant{UserID: owner.ID, Name: "Orchid"}
	require.NoError(t, f.Plants.Create(p))

	share := &models.CommunityShare{UserID: owner.ID, PlantID: p.ID, Caption: "New bloom!"}
	require.NoError(t, f.Shares.Create(share))

	likes, err := f.Shares.IncrementLikes(share.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)

	likes, err = f.Shares.IncrementLikes(share.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, likes)

	_, err = f.Shares.IncrementLikes("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, repositories.ErrShareNotFound)

	listed, err := f.Shares.ListPublic(10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 2, listed[0].Likes)
}

func testIdentifications(t *testing.T, f Fixture) {
	owner := newUser("ident-owner")
	require.NoError(t, f.Users.Create(owner))

	require.NoError(t, f.Identifications.Create(&models.Identification{
		UserID:        owner.ID,
		TopSuggestion: "Monstera deliciosa",
		Confidence:    0.97,
	}))

	list, err := f.Identifications.FindByUser(owner.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Monstera deliciosa", list[0].TopSuggestion)

	empty, err := f.Identifications.FindByUser("someone-else", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
