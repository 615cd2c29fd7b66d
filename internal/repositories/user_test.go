package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/user-accounts/internal/models"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func setupUserPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	assert.NoError(t, err)

	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(50) NOT NULL UNIQUE,
		email VARCHAR(100) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		status BOOLEAN NOT NULL DEFAULT TRUE
	);
	`
	_, err = db.Exec(schema)
	assert.NoError(t, err)

	teardown := func() {
		db.Close()
		container.Terminate(context.Background())
	}

	return db, teardown
}

func TestUserWriteRepository_Save(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	// Insert
	alice, err := writeRepo.Save(ctx, models.UserUpdate{
		Name:         strPtr("alice"),
		Email:        strPtr("alice@example.com"),
		PasswordHash: strPtr("hashed-password"),
		Status:       boolPtr(true),
	})
	assert.NoError(t, err)
	assert.NotNil(t, alice)
	assert.NotZero(t, alice.ID)
	assert.Equal(t, "alice", alice.Name)
	assert.Equal(t, "alice@example.com", alice.Email)
	assert.True(t, alice.Status)

	// Duplicate email is rejected at the store level
	_, err = writeRepo.Save(ctx, models.UserUpdate{
		Name:         strPtr("alice2"),
		Email:        strPtr("alice@example.com"),
		PasswordHash: strPtr("other-hash"),
		Status:       boolPtr(true),
	})
	assert.ErrorIs(t, err, ErrUniqueViolation)

	// Duplicate name is rejected too
	_, err = writeRepo.Save(ctx, models.UserUpdate{
		Name:         strPtr("alice"),
		Email:        strPtr("other@example.com"),
		PasswordHash: strPtr("other-hash"),
		Status:       boolPtr(true),
	})
	assert.ErrorIs(t, err, ErrUniqueViolation)

	// The rejected inserts did not create rows
	users, err := readRepo.ListActive(ctx)
	assert.NoError(t, err)
	assert.Len(t, users, 1)

	// Partial update: only the password changes
	updated, err := writeRepo.Save(ctx, models.UserUpdate{
		ID:           alice.ID,
		PasswordHash: strPtr("new-hash"),
	})
	assert.NoError(t, err)
	assert.NotNil(t, updated)
	assert.Equal(t, "alice", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)
	assert.Equal(t, "new-hash", updated.PasswordHash)

	// Full profile update
	updated, err = writeRepo.Save(ctx, models.UserUpdate{
		ID:     alice.ID,
		Name:   strPtr("alice2"),
		Email:  strPtr("alice2@example.com"),
		Status: boolPtr(false),
	})
	assert.NoError(t, err)
	assert.Equal(t, "alice2", updated.Name)
	assert.Equal(t, "alice2@example.com", updated.Email)
	assert.False(t, updated.Status)
	assert.Equal(t, "new-hash", updated.PasswordHash, "password untouched by profile update")

	// Update against a missing id returns nil without error
	missing, err := writeRepo.Save(ctx, models.UserUpdate{ID: 9999, Name: strPtr("ghost")})
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserReadRepository(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	alice, err := writeRepo.Save(ctx, models.UserUpdate{
		Name:         strPtr("alice"),
		Email:        strPtr("alice@example.com"),
		PasswordHash: strPtr("hash-a"),
		Status:       boolPtr(true),
	})
	assert.NoError(t, err)

	bob, err := writeRepo.Save(ctx, models.UserUpdate{
		Name:         strPtr("bob"),
		Email:        strPtr("bob@example.com"),
		PasswordHash: strPtr("hash-b"),
		Status:       boolPtr(false),
	})
	assert.NoError(t, err)

	// GetByEmail
	found, err := readRepo.GetByEmail(ctx, "alice@example.com")
	assert.NoError(t, err)
	assert.NotNil(t, found)
	assert.Equal(t, alice.ID, found.ID)
	assert.Equal(t, "hash-a", found.PasswordHash)

	// Not-found lookups return nil, not an error
	found, err = readRepo.GetByEmail(ctx, "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, found)

	// GetByID
	found, err = readRepo.GetByID(ctx, bob.ID)
	assert.NoError(t, err)
	assert.NotNil(t, found)
	assert.Equal(t, "bob", found.Name)

	found, err = readRepo.GetByID(ctx, 9999)
	assert.NoError(t, err)
	assert.Nil(t, found)

	// ListActive excludes inactive users and keeps id order
	carol, err := writeRepo.Save(ctx, models.UserUpdate{
		Name:         strPtr("carol"),
		Email:        strPtr("carol@example.com"),
		PasswordHash: strPtr("hash-c"),
		Status:       boolPtr(true),
	})
	assert.NoError(t, err)

	users, err := readRepo.ListActive(ctx)
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, alice.ID, users[0].ID)
	assert.Equal(t, carol.ID, users[1].ID)
}
