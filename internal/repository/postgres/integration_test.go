//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"filevault/internal/model"
	repo "filevault/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "filevault_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/filevault_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func createUser(t *testing.T, ur *repo.UserRepository, id string) model.User {
	t.Helper()
	user, err := ur.Create(context.Background(), model.User{ID: id, PasswordHash: "digest"})
	require.NoError(t, err)
	return user
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	created := createUser(t, ur, "crud@example.com")
	require.Equal(t, "crud@example.com", created.ID)
	require.False(t, created.CreatedAt.IsZero())

	got, err := ur.GetByID(ctx, "crud@example.com")
	require.NoError(t, err)
	require.Equal(t, "digest", got.PasswordHash)

	_, err = ur.GetByID(ctx, "missing@example.com")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	sr := repo.NewSessionRepository(conn)

	user := createUser(t, ur, "sessions@example.com")

	session, err := sr.Create(ctx, model.Session{
		ID:       uuid.New(),
		UserID:   user.ID,
		TokenID:  uuid.NewString(),
		DeviceID: "device-a",
	})
	require.NoError(t, err)
	require.False(t, session.Blocked)

	byToken, err := sr.GetActiveByTokenID(ctx, session.TokenID)
	require.NoError(t, err)
	require.Equal(t, session.ID, byToken.ID)

	byDevice, err := sr.GetActiveByUserAndDevice(ctx, user.ID, "device-a")
	require.NoError(t, err)
	require.Equal(t, session.ID, byDevice.ID)

	newTokenID := uuid.NewString()
	rotated, err := sr.Rotate(ctx, session.ID, session.TokenID, newTokenID)
	require.NoError(t, err)
	require.Equal(t, newTokenID, rotated.TokenID)

	// The consumed token id can only win once.
	_, err = sr.Rotate(ctx, session.ID, session.TokenID, uuid.NewString())
	require.ErrorIs(t, err, model.ErrNotFound)

	_, err = sr.GetActiveByTokenID(ctx, session.TokenID)
	require.ErrorIs(t, err, model.ErrNotFound)

	count, err := sr.BlockByUserAndDevice(ctx, user.ID, "device-a")
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	_, err = sr.GetActiveByUserAndDevice(ctx, user.ID, "device-a")
	require.ErrorIs(t, err, model.ErrNotFound)

	// Blocked sessions cannot be rotated.
	_, err = sr.Rotate(ctx, session.ID, newTokenID, uuid.NewString())
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestSessionRepository_BlockAllAndPurge(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	sr := repo.NewSessionRepository(conn)

	user := createUser(t, ur, "devices@example.com")

	for _, deviceID := range []string{"device-a", "device-b", "device-c"} {
		_, err := sr.Create(ctx, model.Session{
			ID:       uuid.New(),
			UserID:   user.ID,
			TokenID:  uuid.NewString(),
			DeviceID: deviceID,
		})
		require.NoError(t, err)
	}

	count, err := sr.BlockAllByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)

	// Blocked rows are retained until retention, then purged by age.
	purged, err := sr.PurgeOlderThan(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.GreaterOrEqual(t, purged, int64(3))
}

func TestFileRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	fr := repo.NewFileRepository(conn)

	user := createUser(t, ur, "files@example.com")

	file, err := fr.Create(ctx, model.File{
		ID:           uuid.New(),
		UserID:       user.ID,
		StorageKey:   user.ID + "/" + uuid.NewString(),
		OriginalName: "notes.txt",
		Extension:    ".txt",
		MIMEType:     "text/plain",
		Size:         11,
	})
	require.NoError(t, err)
	require.False(t, file.UploadedAt.IsZero())

	got, err := fr.GetByID(ctx, file.ID)
	require.NoError(t, err)
	require.Equal(t, "notes.txt", got.OriginalName)

	list, err := fr.ListByUser(ctx, user.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)

	count, err := fr.CountByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	file.OriginalName = "renamed.txt"
	updated, err := fr.Update(ctx, file)
	require.NoError(t, err)
	require.Equal(t, "renamed.txt", updated.OriginalName)

	require.NoError(t, fr.Delete(ctx, file.ID))
	require.ErrorIs(t, fr.Delete(ctx, file.ID), model.ErrNotFound)

	_, err = fr.GetByID(ctx, file.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
}
