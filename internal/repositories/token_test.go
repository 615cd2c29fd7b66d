package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedisContainer(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "6379")

	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", host, port.Int()),
	})
	assert.NoError(t, client.Ping(context.Background()).Err())

	teardown := func() {
		client.Close()
		container.Terminate(context.Background())
	}

	return client, teardown
}

func TestRefreshTokenRepository(t *testing.T) {
	client, teardown := setupRedisContainer(t)
	defer teardown()

	repo := NewRefreshTokenRepository(client, time.Minute)
	ctx := context.Background()

	// Nothing stored yet
	token, err := repo.Get(ctx, 1)
	assert.NoError(t, err)
	assert.Empty(t, token)

	// Save and read back
	err = repo.Save(ctx, 1, "refresh-token-one")
	assert.NoError(t, err)

	token, err = repo.Get(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, "refresh-token-one", token)

	// Saving again replaces the previous token
	err = repo.Save(ctx, 1, "refresh-token-two")
	assert.NoError(t, err)

	token, err = repo.Get(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, "refresh-token-two", token)

	// Tokens are stored per user
	token, err = repo.Get(ctx, 2)
	assert.NoError(t, err)
	assert.Empty(t, token)

	// Delete removes the stored token
	err = repo.Delete(ctx, 1)
	assert.NoError(t, err)

	token, err = repo.Get(ctx, 1)
	assert.NoError(t, err)
	assert.Empty(t, token)
}

func TestRefreshTokenRepository_Expiration(t *testing.T) {
	client, teardown := setupRedisContainer(t)
	defer teardown()

	repo := NewRefreshTokenRepository(client, time.Second)
	ctx := context.Background()

	err := repo.Save(ctx, 1, "short-lived")
	assert.NoError(t, err)

	time.Sleep(1500 * time.Millisecond)

	token, err := repo.Get(ctx, 1)
	assert.NoError(t, err)
	assert.Empty(t, token, "token should expire with the configured TTL")
}
