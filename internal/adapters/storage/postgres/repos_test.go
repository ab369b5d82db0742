package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"refugio-adopciones/internal/domain/dogs"
	"refugio-adopciones/internal/ports/auth"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dogCols = []string{
	"id", "name", "breed", "age", "size", "gender", "story",
	"personality", "status", "created_at", "updated_at",
}

func newMock(t *testing.T) (*DogsRepo, *ImagesRepo, *RolesRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewDogsRepo(db), NewImagesRepo(db), NewRolesRepo(db), mock
}

func TestDogsRepo_Create(t *testing.T) {
	repo, _, _, mock := newMock(t)
	now := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO dogs")).
		WithArgs("d1", "Luna", "Mestiza", "3 años", "Mediana", "Hembra", "Historia",
			`["Juguetona","Cariñosa","Juguetona"]`, "available", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), dogs.Dog{
		ID: "d1", Name: "Luna", Breed: "Mestiza", Age: "3 años", Size: "Mediana",
		Gender: dogs.SexFemale, Story: "Historia",
		Personality: []string{"Juguetona", "Cariñosa", "Juguetona"},
		Status:      dogs.StatusAvailable, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDogsRepo_GetByID(t *testing.T) {
	repo, _, _, mock := newMock(t)
	now := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM dogs")).
		WithArgs("d1").
		WillReturnRows(sqlmock.NewRows(dogCols).
			AddRow("d1", "Toby", "Border Collie", "2 años", "Mediano", "Macho", "Rescatado",
				[]byte(`["Leal","Activo"]`), "adopted", now, now))

	d, err := repo.GetByID(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, dogs.SexMale, d.Gender)
	assert.Equal(t, dogs.StatusAdopted, d.Status)
	assert.Equal(t, []string{"Leal", "Activo"}, d.Personality)

	mock.ExpectQuery(regexp.QuoteMeta("FROM dogs")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(dogCols))

	_, err = repo.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, dogs.ErrNotFound)

	_, err = repo.GetByID(context.Background(), " ")
	assert.ErrorIs(t, err, dogs.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDogsRepo_ListFiltersByStatus(t *testing.T) {
	repo, _, _, mock := newMock(t)
	now := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`WHERE status = \$1\s+ORDER BY created_at DESC`).
		WithArgs("available").
		WillReturnRows(sqlmock.NewRows(dogCols).
			AddRow("d2", "Max", "Labrador", "6 meses", "Cachorro", "Macho", "s", []byte(`[]`), "available", now, now).
			AddRow("d1", "Luna", "Mestiza", "3 años", "Mediana", "Hembra", "s", []byte(`["Dulce"]`), "available", now.Add(-time.Hour), now))

	out, err := repo.List(context.Background(), dogs.ListFilter{Status: dogs.StatusAvailable})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "d2", out[0].ID)
	assert.Equal(t, []string{}, out[0].Personality)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDogsRepo_UpdateDeleteNotFound(t *testing.T) {
	repo, _, _, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE dogs")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.Update(context.Background(), dogs.Dog{ID: "ghost"})
	assert.ErrorIs(t, err, dogs.ErrNotFound)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM dogs")).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, dogs.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImagesRepo_ListByDogOrdering(t *testing.T) {
	_, images, _, mock := newMock(t)
	now := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY display_order ASC, created_at ASC, seq ASC")).
		WithArgs("d1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "dog_id", "image_url", "object_key", "display_order", "created_at"}).
			AddRow("i0", "d1", "https://cdn/x0.jpg", "d1/1-0.jpg", 0, now).
			AddRow("i1", "d1", "https://cdn/x1.jpg", "d1/1-1.jpg", 1, now))

	out, err := images.ListByDog(context.Background(), "d1")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "d1/1-0.jpg", out[0].ObjectKey)

	mock.ExpectQuery(regexp.QuoteMeta("FROM dog_images")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "dog_id", "image_url", "object_key", "display_order", "created_at"}))
	_, err = images.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, dogs.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRolesRepo_RoleOf(t *testing.T) {
	_, _, roles, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT role FROM user_roles")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("admin"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT role FROM user_roles")).
		WithArgs("u2").
		WillReturnRows(sqlmock.NewRows([]string{"role"}))

	role, err := roles.RoleOf(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, role)

	role, err = roles.RoleOf(context.Background(), "u2")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleMember, role)

	assert.NoError(t, mock.ExpectationsWereMet())
}
