package types

import (
	"context"
	"errors"

	"reviewroom/internal/app/client"
)

type contextKey string

const ClientAppKey contextKey = "client_app"

var ErrNoApp = errors.New("client is not initialized")

func WithApp(ctx context.Context, app *client.App) context.Context {
	return context.WithValue(ctx, ClientAppKey, app)
}

func AppFrom(ctx context.Context) (*client.App, error) {
	app, ok := ctx.Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, ErrNoApp
	}
	return app, nil
}
