package room

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reviewroom/internal/app/server/api/http/middleware/auth"
	"reviewroom/internal/domain/record"
	"reviewroom/internal/domain/room"
	"reviewroom/internal/utils/logger"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, creator, name, password string, ids []uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, creator, name, password, ids)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockService) Resolve(ctx context.Context, id uuid.UUID) (room.Room, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(room.Room), args.Error(1)
}

func (m *MockService) Authorize(r room.Room, password string) bool {
	return m.Called(r, password).Bool(0)
}

func (m *MockService) View(ctx context.Context, r room.Room) ([]record.Record, error) {
	args := m.Called(ctx, r)
	return args.Get(0).([]record.Record), args.Error(1)
}

func (m *MockService) Unlock(ctx context.Context, id uuid.UUID, password string) (string, error) {
	args := m.Called(ctx, id, password)
	return args.String(0), args.Error(1)
}

func (m *MockService) Records(ctx context.Context, id uuid.UUID, token string) ([]record.Record, error) {
	args := m.Called(ctx, id, token)
	return args.Get(0).([]record.Record), args.Error(1)
}

func (m *MockService) ListByCreator(ctx context.Context, creator string) ([]room.Room, error) {
	args := m.Called(ctx, creator)
	return args.Get(0).([]room.Room), args.Error(1)
}

func as(username string) huma.Middlewares {
	return huma.Middlewares{func(ctx huma.Context, next func(huma.Context)) {
		next(huma.WithContext(ctx, auth.WithUsername(ctx.Context(), username)))
	}}
}

func setup(t *testing.T, service room.Servicer) humatest.TestAPI {
	_, api := humatest.New(t)
	NewHandler(service, logger.Discard(), nil, as("carol")).SetupRoutes(api)
	return api
}

func TestHandler_Create(t *testing.T) {
	service := new(MockService)
	id, recID := uuid.New(), uuid.New()
	service.On("Create", mock.Anything, "carol", "Noir", "", []uuid.UUID{recID}).Return(id, nil)
	service.On("Create", mock.Anything, "carol", "Empty", "", []uuid.UUID{}).Return(uuid.Nil, room.ErrEmptySelection)
	service.On("Create", mock.Anything, "carol", "", "", []uuid.UUID{recID}).Return(uuid.Nil, room.ErrEmptyName)

	api := setup(t, service)

	resp := api.Post("/api/v1/rooms", map[string]any{"name": "Noir", "record_ids": []string{recID.String()}})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var body CreateResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, id, body.ID)
	assert.Equal(t, "/?room_id="+id.String(), body.Link)

	resp = api.Post("/api/v1/rooms", map[string]any{"name": "Empty", "record_ids": []string{}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code, resp.Body.String())

	resp = api.Post("/api/v1/rooms", map[string]any{"name": "", "record_ids": []string{recID.String()}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code, resp.Body.String())

	resp = api.Post("/api/v1/rooms", map[string]any{"name": "Noir", "record_ids": []string{"not-an-id"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code, resp.Body.String())

	service.AssertNumberOfCalls(t, "Create", 3)
}

func TestHandler_List(t *testing.T) {
	service := new(MockService)
	rooms := []room.Room{
		{ID: uuid.New(), Name: "Noir", Creator: "carol", Password: "pw", RecordIDs: []uuid.UUID{uuid.New()}, CreatedAt: time.Now()},
	}
	service.On("ListByCreator", mock.Anything, "carol").Return(rooms, nil)

	api := setup(t, service)

	resp := api.Get("/api/v1/rooms")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.NotContains(t, resp.Body.String(), `"pw"`)

	var body ListResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Rooms, 1)
	assert.True(t, body.Rooms[0].Protected)
	assert.Equal(t, 1, body.Rooms[0].RecordCount)
}

func TestHandler_Get(t *testing.T) {
	service := new(MockService)
	id := uuid.New()
	service.On("Resolve", mock.Anything, id).Return(room.Room{ID: id, Name: "Noir", Creator: "carol"}, nil)
	service.On("Resolve", mock.Anything, mock.Anything).Return(room.Room{}, room.ErrNotFound)

	api := setup(t, service)

	resp := api.Get("/api/v1/rooms/" + id.String())
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body Summary
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Noir", body.Name)
	assert.False(t, body.Protected)

	resp = api.Get("/api/v1/rooms/" + uuid.NewString())
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = api.Get("/api/v1/rooms/not-a-room")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandler_Unlock(t *testing.T) {
	service := new(MockService)
	id := uuid.New()
	service.On("Unlock", mock.Anything, id, "secret").Return("room-token", nil)
	service.On("Unlock", mock.Anything, id, "nope").Return("", room.ErrUnauthorized)

	api := setup(t, service)

	resp := api.Post("/api/v1/rooms/"+id.String()+"/unlock", map[string]any{"password": "secret"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body UnlockResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "room-token", body.Token)

	resp = api.Post("/api/v1/rooms/"+id.String()+"/unlock", map[string]any{"password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code, resp.Body.String())
}

func TestHandler_Records(t *testing.T) {
	service := new(MockService)
	id := uuid.New()
	protected := room.Room{ID: id, Name: "Noir", Creator: "carol", Password: "secret", RecordIDs: []uuid.UUID{uuid.New()}}
	shared := []record.Record{{ID: protected.RecordIDs[0], Owner: "carol", Type: record.TypeMovie, Title: "Heat", Rating: 5}}

	service.On("Resolve", mock.Anything, id).Return(protected, nil)
	service.On("Records", mock.Anything, id, "").Return([]record.Record(nil), room.ErrUnauthorized)
	service.On("Records", mock.Anything, id, "room-token").Return(shared, nil)

	api := setup(t, service)

	resp := api.Get("/api/v1/rooms/" + id.String() + "/records")
	assert.Equal(t, http.StatusUnauthorized, resp.Code, resp.Body.String())
	assert.NotContains(t, resp.Body.String(), "Heat")

	resp = api.Get("/api/v1/rooms/"+id.String()+"/records", "X-Room-Token: room-token")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body RecordsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.True(t, body.Room.Protected)
	require.Len(t, body.Records, 1)
	assert.Equal(t, "Heat", body.Records[0].Title)
}
