package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"reviewroom/internal/app/client/config"
	"reviewroom/internal/domain/record"
	"reviewroom/internal/domain/selection"
)

// App is the client side of the service. It owns the local State and is
// the only place that writes the curation.
type App struct {
	config     *config.Config
	log        *slog.Logger
	httpClient *httpClient
	storage    *SQLiteStorage

	mu       sync.Mutex
	state    State
	curation *selection.Curation
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	storage, err := NewSQLiteStorage(cfg.StatePath)
	if err != nil {
		return nil, err
	}

	state, err := storage.LoadState(context.Background())
	if err != nil {
		storage.Close()
		return nil, fmt.Errorf("load client state: %w", err)
	}

	app := &App{
		config:     cfg,
		log:        log.With(slog.String("component", "client")),
		httpClient: NewHTTPClient(cfg, log),
		storage:    storage,
		state:      state,
		curation:   selection.NewCuration(state.Selection...),
	}
	app.httpClient.SetToken(state.Token)

	if state.LoggedIn() {
		app.log.Debug("session restored", slog.String("username", state.Username))
	}

	return app, nil
}

func (a *App) Close() error {
	return a.storage.Close()
}

// State returns a copy of the current client state.
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := State{
		Username:   a.state.Username,
		Token:      a.state.Token,
		RoomTokens: make(map[uuid.UUID]string, len(a.state.RoomTokens)),
		Selection:  a.curation.IDs(),
	}
	for id, token := range a.state.RoomTokens {
		out.RoomTokens[id] = token
	}
	return out
}

func (a *App) CheckConnection(ctx context.Context) error {
	return a.httpClient.HealthCheck(ctx)
}

func (a *App) Register(ctx context.Context, username, password string) error {
	if err := a.httpClient.Register(ctx, username, password); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	a.log.Info("registered", slog.String("username", username))
	return nil
}

// Login starts a fresh flow: any previous selection and unlocked rooms are
// dropped.
func (a *App) Login(ctx context.Context, username, password string) error {
	token, err := a.httpClient.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.state = State{Username: username, Token: token, RoomTokens: map[uuid.UUID]string{}}
	a.curation.Reset()
	a.httpClient.SetToken(token)

	return a.persist(ctx)
}

// Logout revokes the token on the server and forgets everything local. A
// token the server no longer knows is not an error.
func (a *App) Logout(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state.LoggedIn() {
		if err := a.httpClient.Logout(ctx); err != nil && !errors.Is(err, ErrUnauthorized) {
			return fmt.Errorf("logout: %w", err)
		}
	}

	a.state = State{RoomTokens: map[uuid.UUID]string{}}
	a.curation.Reset()
	a.httpClient.SetToken("")

	return a.persist(ctx)
}

func (a *App) ListRecords(ctx context.Context) ([]record.Record, error) {
	if err := a.requireLogin(); err != nil {
		return nil, err
	}
	records, err := a.httpClient.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

func (a *App) AddRecord(ctx context.Context, d record.Draft) (uuid.UUID, error) {
	if err := a.requireLogin(); err != nil {
		return uuid.Nil, err
	}
	if err := d.Type.Validate(); err != nil {
		return uuid.Nil, err
	}
	if strings.TrimSpace(d.Title) == "" {
		return uuid.Nil, record.ErrMissingTitle
	}

	id, err := a.httpClient.CreateRecord(ctx, d)
	if err != nil {
		return uuid.Nil, fmt.Errorf("add record: %w", err)
	}
	return id, nil
}

// AddCandidate appends a record prefilled from a search hit.
func (a *App) AddCandidate(ctx context.Context, t record.Type, c record.Candidate, rating int, review string) (uuid.UUID, error) {
	return a.AddRecord(ctx, record.DraftFromCandidate(t, c, rating, review))
}

func (a *App) Search(ctx context.Context, t record.Type, query string) ([]record.Candidate, error) {
	if err := a.requireLogin(); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	candidates, err := a.httpClient.Search(ctx, t, query)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return candidates, nil
}

func (a *App) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if err := a.httpClient.DeleteRecord(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.curation.Deselect(id)
	return a.persist(ctx)
}

// ResolveRecordIDs turns full ids or unique id prefixes into ids from the
// caller's ledger.
func (a *App) ResolveRecordIDs(ctx context.Context, refs []string) ([]uuid.UUID, error) {
	records, err := a.ListRecords(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]uuid.UUID, 0, len(refs))
	for _, ref := range refs {
		id, err := matchRecord(records, ref)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func matchRecord(records []record.Record, ref string) (uuid.UUID, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return uuid.Nil, fmt.Errorf("%w: empty id", ErrNotFound)
	}

	if id, err := uuid.Parse(ref); err == nil {
		for _, r := range records {
			if r.ID == id {
				return id, nil
			}
		}
		return uuid.Nil, fmt.Errorf("%w: record %s", ErrNotFound, ref)
	}

	var found []uuid.UUID
	for _, r := range records {
		if strings.HasPrefix(r.ID.String(), ref) {
			found = append(found, r.ID)
		}
	}

	switch len(found) {
	case 0:
		return uuid.Nil, fmt.Errorf("%w: record %s", ErrNotFound, ref)
	case 1:
		return found[0], nil
	default:
		return uuid.Nil, fmt.Errorf("%w: %s matches %d records", ErrAmbiguousID, ref, len(found))
	}
}

func (a *App) Select(ctx context.Context, ids ...uuid.UUID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.curation.Select(ids...)
	return a.persist(ctx)
}

func (a *App) Unselect(ctx context.Context, ids ...uuid.UUID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.curation.Deselect(ids...)
	return a.persist(ctx)
}

// Toggle flips one id and reports whether it ends up selected.
func (a *App) Toggle(ctx context.Context, id uuid.UUID) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	selected := a.curation.Toggle(id)
	return selected, a.persist(ctx)
}

func (a *App) ClearSelection(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.curation.Reset()
	return a.persist(ctx)
}

// Selection reconciles the curation against the live ledger, stores the
// result and returns the selected records in selection order.
func (a *App) Selection(ctx context.Context) ([]record.Record, error) {
	records, err := a.ListRecords(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]record.Record, len(records))
	valid := make([]uuid.UUID, 0, len(records))
	for _, r := range records {
		byID[r.ID] = r
		valid = append(valid, r.ID)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	ids := a.curation.Reconcile(valid)
	if err := a.persist(ctx); err != nil {
		return nil, err
	}

	out := make([]record.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, byID[id])
	}
	return out, nil
}

// CreateRoom shares the current selection. The selection is reset once the
// room exists.
func (a *App) CreateRoom(ctx context.Context, name, password string) (CreatedRoom, error) {
	selected, err := a.Selection(ctx)
	if err != nil {
		return CreatedRoom{}, err
	}
	if len(selected) == 0 {
		return CreatedRoom{}, ErrEmptySelection
	}

	ids := make([]uuid.UUID, 0, len(selected))
	for _, r := range selected {
		ids = append(ids, r.ID)
	}

	created, err := a.httpClient.CreateRoom(ctx, name, password, ids)
	if err != nil {
		return CreatedRoom{}, fmt.Errorf("create room: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.curation.Reset()
	if err := a.persist(ctx); err != nil {
		return CreatedRoom{}, err
	}

	a.log.Info("room created", slog.String("id", created.ID.String()), slog.Int("records", len(ids)))
	return created, nil
}

func (a *App) ListRooms(ctx context.Context) ([]RoomSummary, error) {
	if err := a.requireLogin(); err != nil {
		return nil, err
	}
	rooms, err := a.httpClient.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// OpenRoom looks a room up and, for a protected room, exchanges the
// password for a room token that later views reuse. An empty password
// keeps whatever token is already held.
func (a *App) OpenRoom(ctx context.Context, id uuid.UUID, password string) (RoomSummary, error) {
	summary, err := a.httpClient.GetRoom(ctx, id)
	if err != nil {
		return RoomSummary{}, fmt.Errorf("open room: %w", err)
	}
	if !summary.Protected {
		return summary, nil
	}

	a.mu.Lock()
	_, held := a.state.RoomTokens[id]
	a.mu.Unlock()
	if password == "" && held {
		return summary, nil
	}

	token, err := a.httpClient.UnlockRoom(ctx, id, password)
	if err != nil {
		return RoomSummary{}, fmt.Errorf("unlock room: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.RoomTokens == nil {
		a.state.RoomTokens = map[uuid.UUID]string{}
	}
	a.state.RoomTokens[id] = token
	return summary, a.persist(ctx)
}

// ViewRoom reads a room's records with the held room token, if any. A
// rejected token is forgotten.
func (a *App) ViewRoom(ctx context.Context, id uuid.UUID) (RoomView, error) {
	a.mu.Lock()
	token := a.state.RoomTokens[id]
	a.mu.Unlock()

	view, err := a.httpClient.RoomRecords(ctx, id, token)
	if err == nil {
		return view, nil
	}

	if errors.Is(err, ErrUnauthorized) && token != "" {
		a.mu.Lock()
		delete(a.state.RoomTokens, id)
		if perr := a.persist(ctx); perr != nil {
			a.log.Warn("failed to drop room token", slog.Any("error", perr))
		}
		a.mu.Unlock()
	}
	return RoomView{}, fmt.Errorf("view room: %w", err)
}

func (a *App) requireLogin() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.state.LoggedIn() {
		return ErrNotLoggedIn
	}
	return nil
}

// persist must be called with mu held.
func (a *App) persist(ctx context.Context) error {
	a.state.Selection = a.curation.IDs()
	if err := a.storage.SaveState(ctx, a.state); err != nil {
		return fmt.Errorf("save client state: %w", err)
	}
	return nil
}
