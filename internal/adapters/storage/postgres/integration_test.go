//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"refugio-adopciones/internal/adapters/storage/postgres"
	"refugio-adopciones/internal/domain/dogs"
	"refugio-adopciones/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("refugio"),
		tcpostgres.WithUsername("refugio"),
		tcpostgres.WithPassword("refugio"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(context.Background()) })

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func TestPostgres_CatalogLifecycle(t *testing.T) {
	dsn := setupTestDB(t)
	ctx := context.Background()

	db, err := postgres.Open(dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, postgres.Migrate(ctx, db))
	// idempotente
	require.NoError(t, postgres.Migrate(ctx, db))

	dogRepo := postgres.NewDogsRepo(db)
	images := postgres.NewImagesRepo(db)
	now := time.Now().UTC().Truncate(time.Microsecond)

	rex := dogs.Dog{
		ID: "rex", Name: "Rex", Breed: "Pastor", Age: "4 años", Size: "Grande",
		Gender: dogs.SexMale, Story: "Guardián", Personality: []string{"Leal", "Leal"},
		Status: dogs.StatusAvailable, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, dogRepo.Create(ctx, rex))

	for _, img := range []dogs.DogImage{
		{ID: "i2", DogID: "rex", ImageURL: "u2", DisplayOrder: 2, CreatedAt: now},
		{ID: "i0", DogID: "rex", ImageURL: "u0", DisplayOrder: 0, CreatedAt: now},
		{ID: "i1", DogID: "rex", ImageURL: "u1", DisplayOrder: 1, CreatedAt: now},
	} {
		require.NoError(t, images.Create(ctx, img))
	}
	// FK
	assert.Error(t, images.Create(ctx, dogs.DogImage{ID: "x", DogID: "ghost", ImageURL: "u", CreatedAt: now}))

	gallery, err := images.ListByDog(ctx, "rex")
	require.NoError(t, err)
	require.Len(t, gallery, 3)
	assert.Equal(t, []string{"i0", "i1", "i2"}, []string{gallery[0].ID, gallery[1].ID, gallery[2].ID})

	got, err := dogRepo.GetByID(ctx, "rex")
	require.NoError(t, err)
	assert.Equal(t, []string{"Leal", "Leal"}, got.Personality)

	got.Status = dogs.StatusAdopted
	got.UpdatedAt = now.Add(time.Minute)
	require.NoError(t, dogRepo.Update(ctx, got))

	avail, err := dogRepo.List(ctx, dogs.ListFilter{Status: dogs.StatusAvailable})
	require.NoError(t, err)
	assert.Empty(t, avail)

	all, err := dogRepo.List(ctx, dogs.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, dogRepo.Delete(ctx, "rex"))
	gallery, err = images.ListByDog(ctx, "rex")
	require.NoError(t, err)
	assert.Empty(t, gallery, "dog_images cascade with the dog")

	roles := postgres.NewRolesRepo(db)
	require.NoError(t, roles.SetRole(ctx, "u1", auth.RoleAdmin))
	role, err := roles.RoleOf(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, role)
}
