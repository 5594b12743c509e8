package repository

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewroom/internal/domain/record"
	"reviewroom/internal/domain/room"
	"reviewroom/internal/domain/session"
	"reviewroom/internal/domain/user"
	"reviewroom/internal/infrastructure/storage"
	"reviewroom/internal/infrastructure/storage/filestore"
	"reviewroom/internal/utils/logger"
)

func newStore(t *testing.T) (*storage.Store, string) {
	t.Helper()
	dir := t.TempDir()
	backend, err := filestore.New(dir)
	require.NoError(t, err)
	return storage.New(backend, storage.PolicyFail, logger.Discard()), dir
}

func TestUserRepository(t *testing.T) {
	store, dir := newStore(t)
	repo := NewUserRepository(store, logger.Discard())
	ctx := context.Background()

	_, err := repo.FindByUsername(ctx, "alice")
	assert.ErrorIs(t, err, user.ErrNotFound)

	require.NoError(t, repo.Create(ctx, user.User{Username: "alice", Password: "pw1"}))
	assert.ErrorIs(t, repo.Create(ctx, user.User{Username: "alice", Password: "other"}), user.ErrUsernameTaken)

	got, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.User{Username: "alice", Password: "pw1"}, got)

	raw, err := os.ReadFile(filepath.Join(dir, "users.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"alice":{"password":"pw1"}}`, string(raw))
}

func TestUserService_EndToEnd(t *testing.T) {
	store, _ := newStore(t)
	sessions := session.NewService(NewSessionRepository(store, logger.Discard()), time.Hour, logger.Discard())
	users := user.NewService(NewUserRepository(store, logger.Discard()), user.NewCredentialsValidator(), sessions, logger.Discard())
	ctx := context.Background()

	require.NoError(t, users.Register(ctx, "alice", "pw1"))
	for _, pw := range []string{"pw1", "different", ""} {
		assert.ErrorIs(t, users.Register(ctx, "alice", pw), user.ErrUsernameTaken)
	}

	ok, err := users.Authenticate(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = users.Authenticate(ctx, "alice", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	token, err := users.Login(ctx, "alice", "pw1")
	require.NoError(t, err)

	subject, err := sessions.Validate(ctx, session.KindUser, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)

	require.NoError(t, users.Logout(ctx, token))
	_, err = sessions.Validate(ctx, session.KindUser, token)
	assert.ErrorIs(t, err, session.ErrInvalidSession)
}

func TestRecordRepository(t *testing.T) {
	store, dir := newStore(t)
	repo := NewRecordRepository(store, logger.Discard())
	ctx := context.Background()

	list, err := repo.List(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)

	rec := record.Record{ID: uuid.New(), Owner: "bob", Type: record.TypeBook, Title: "Dune", Rating: 5}
	require.NoError(t, repo.Append(ctx, rec))
	assert.ErrorIs(t, repo.Append(ctx, rec), record.ErrDuplicateID)

	_, err = os.Stat(filepath.Join(dir, "records.bob.json"))
	assert.NoError(t, err)

	assert.ErrorIs(t, repo.Remove(ctx, "bob", uuid.New()), record.ErrNotFound)
	require.NoError(t, repo.Remove(ctx, "bob", rec.ID))

	list, err = repo.List(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRecordService_ConcurrentAppendsLoseNothing(t *testing.T) {
	store, _ := newStore(t)
	records := record.NewService(NewRecordRepository(store, logger.Discard()), logger.Discard())

	const writers = 30
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := records.Append(context.Background(), "alice", record.Draft{Type: record.TypeMovie, Title: "Heat"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := records.List(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, list, writers)
}

func TestRoomRepository(t *testing.T) {
	store, _ := newStore(t)
	repo := NewRoomRepository(store, logger.Discard())
	ctx := context.Background()

	_, err := repo.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, room.ErrNotFound)

	rm := room.Room{ID: uuid.New(), Name: "Room A", Creator: "alice", RecordIDs: []uuid.UUID{uuid.New()}, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, rm))
	assert.Error(t, repo.Create(ctx, rm))

	got, err := repo.Get(ctx, rm.ID)
	require.NoError(t, err)
	assert.Equal(t, rm.RecordIDs, got.RecordIDs)
	assert.Equal(t, "Room A", got.Name)

	mine, err := repo.ListByCreator(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := repo.ListByCreator(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestRoomService_DuneScenario(t *testing.T) {
	store, _ := newStore(t)
	sessions := session.NewService(NewSessionRepository(store, logger.Discard()), time.Hour, logger.Discard())
	records := record.NewService(NewRecordRepository(store, logger.Discard()), logger.Discard())
	rooms := room.NewService(NewRoomRepository(store, logger.Discard()), records, sessions, logger.Discard())
	ctx := context.Background()

	id, err := records.Append(ctx, "bob", record.Draft{Type: record.TypeBook, Title: "Dune", Rating: 5})
	require.NoError(t, err)

	list, err := records.List(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Dune", list[0].Title)

	roomID, err := rooms.Create(ctx, "bob", "SciFi Picks", "", []uuid.UUID{id})
	require.NoError(t, err)

	rm, err := rooms.Resolve(ctx, roomID)
	require.NoError(t, err)

	view, err := rooms.View(ctx, rm)
	require.NoError(t, err)
	require.Len(t, view, 1)
	assert.Equal(t, list[0].ID, view[0].ID)
	assert.Equal(t, list[0].Title, view[0].Title)
	assert.Equal(t, list[0].Rating, view[0].Rating)
	assert.True(t, list[0].RecordedAt.Equal(view[0].RecordedAt))
}

func TestRoomService_UnlockThenRead(t *testing.T) {
	store, _ := newStore(t)
	sessions := session.NewService(NewSessionRepository(store, logger.Discard()), time.Hour, logger.Discard())
	records := record.NewService(NewRecordRepository(store, logger.Discard()), logger.Discard())
	rooms := room.NewService(NewRoomRepository(store, logger.Discard()), records, sessions, logger.Discard())
	ctx := context.Background()

	a, err := records.Append(ctx, "alice", record.Draft{Type: record.TypeMovie, Title: "Heat"})
	require.NoError(t, err)
	b, err := records.Append(ctx, "alice", record.Draft{Type: record.TypeMovie, Title: "Ronin"})
	require.NoError(t, err)

	roomID, err := rooms.Create(ctx, "alice", "Secret", "secret", []uuid.UUID{a, b})
	require.NoError(t, err)

	_, err = rooms.Records(ctx, roomID, "")
	assert.ErrorIs(t, err, room.ErrUnauthorized)

	token, err := rooms.Unlock(ctx, roomID, "secret")
	require.NoError(t, err)

	// a user session is not a room session
	userToken, err := sessions.Create(ctx, session.KindUser, roomID.String())
	require.NoError(t, err)
	_, err = rooms.Records(ctx, roomID, userToken)
	assert.ErrorIs(t, err, room.ErrUnauthorized)

	require.NoError(t, records.Remove(ctx, "alice", a))

	view, err := rooms.Records(ctx, roomID, token)
	require.NoError(t, err)
	require.Len(t, view, 1)
	assert.Equal(t, b, view[0].ID)
}

func TestSessionRepository_PrunesExpired(t *testing.T) {
	store, _ := newStore(t)
	repo := NewSessionRepository(store, logger.Discard())
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, "old", session.Session{Kind: session.KindUser, Subject: "a", ExpiresAt: now.Add(time.Minute)}, now))
	require.NoError(t, repo.Create(ctx, "new", session.Session{Kind: session.KindUser, Subject: "b", ExpiresAt: now.Add(2 * time.Hour)}, now.Add(time.Hour)))

	_, err := repo.Find(ctx, "old")
	assert.ErrorIs(t, err, session.ErrNotFound)

	got, err := repo.Find(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, "b", got.Subject)

	require.NoError(t, repo.Delete(ctx, "new"))
	_, err = repo.Find(ctx, "new")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestDocuments(t *testing.T) {
	for _, name := range append(Documents(), recordsDocument("alice")) {
		assert.NoError(t, storage.ValidateName(name))
	}
}
