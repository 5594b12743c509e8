// Routes:
//
//	GET    /api/v1/health
//	POST   /api/v1/user/register
//	POST   /api/v1/user/login
//	POST   /api/v1/user/logout            (bearer)
//	GET    /api/v1/records                (bearer)
//	POST   /api/v1/records                (bearer)
//	DELETE /api/v1/records/{id}           (bearer)
//	GET    /api/v1/search?kind=&q=        (bearer)
//	POST   /api/v1/rooms                  (bearer)
//	GET    /api/v1/rooms                  (bearer)
//	GET    /api/v1/rooms/{id}
//	POST   /api/v1/rooms/{id}/unlock      (rate limited per IP)
//	GET    /api/v1/rooms/{id}/records     (X-Room-Token for protected rooms)
//	GET    /metrics

package api

import (
	"net/http"
	"path"
	"reflect"
	"strings"
	"unicode"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"

	"reviewroom/internal/app/server/api/http/health"
	"reviewroom/internal/app/server/api/http/middleware"
	"reviewroom/internal/app/server/api/http/middleware/auth"
	"reviewroom/internal/app/server/api/http/middleware/logger"
	recordAPI "reviewroom/internal/app/server/api/http/record"
	roomAPI "reviewroom/internal/app/server/api/http/room"
	searchAPI "reviewroom/internal/app/server/api/http/search"
	userAPI "reviewroom/internal/app/server/api/http/user"
	"reviewroom/internal/app/server/config"
	"reviewroom/internal/domain/record"
	"reviewroom/internal/domain/room"
	"reviewroom/internal/domain/search"
	"reviewroom/internal/domain/session"
	"reviewroom/internal/domain/user"
	"reviewroom/internal/infrastructure/storage"
	"reviewroom/internal/infrastructure/storage/repository"
)

type Handlers struct {
	Health *health.Handler
	User   *userAPI.Handler
	Record *recordAPI.Handler
	Search *searchAPI.Handler
	Room   *roomAPI.Handler
}

// New wires every service on top of store and returns the router.
func New(store *storage.Store, cfg *config.Config, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(limitUnlocks(cfg.RateLimit))

	humaConfig := huma.DefaultConfig("Review Room API", "1.0.0")
	humaConfig.Components.Schemas = huma.NewMapRegistry("#/components/schemas/", schemaName)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, humaConfig)

	h := handlers(store, cfg, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Record.SetupRoutes(API)
	h.Search.SetupRoutes(API)
	h.Room.SetupRoutes(API)

	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

func handlers(store *storage.Store, cfg *config.Config, log *slog.Logger) *Handlers {
	sessionRepo := repository.NewSessionRepository(store, log)
	sessionService := session.NewService(sessionRepo, cfg.Session.TTL, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := health.NewHandler(store.Kind(), log, middlewares.GetAllAndClear())

	userRepo := repository.NewUserRepository(store, log)
	userService := user.NewService(userRepo, user.NewCredentialsValidator(), sessionService, log)
	middlewares.Add(loggerMW.Middleware())
	public := middlewares.GetAllAndClear()
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(authMW.Middleware())
	userHandler := userAPI.NewHandler(userService, log, public, middlewares.GetAllAndClear())

	recordRepo := repository.NewRecordRepository(store, log)
	recordService := record.NewService(recordRepo, log)
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(authMW.Middleware())
	recordHandler := recordAPI.NewHandler(recordService, log, middlewares.GetAllAndClear())

	searchService := search.NewService(map[record.Type]search.Provider{
		record.TypeMovie: search.NewTMDB(http.DefaultClient, "", cfg.Search.TMDBKey, cfg.Search.Language),
		record.TypeBook:  search.NewGoogleBooks(http.DefaultClient, "", cfg.Search.GoogleBooksKey, cfg.Search.Language),
	}, cfg.Search.Timeout, log)
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(authMW.Middleware())
	searchHandler := searchAPI.NewHandler(searchService, log, middlewares.GetAllAndClear())

	roomRepo := repository.NewRoomRepository(store, log)
	roomService := room.NewService(roomRepo, recordService, sessionService, log)
	middlewares.Add(loggerMW.Middleware())
	public = middlewares.GetAllAndClear()
	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(authMW.Middleware())
	roomHandler := roomAPI.NewHandler(roomService, log, public, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		User:   userHandler,
		Record: recordHandler,
		Search: searchHandler,
		Room:   roomHandler,
	}
}

// schemaName prefixes huma's default schema name with the declaring
// package, so that record.CreateResponse and room.CreateResponse become
// RecordCreateResponse and RoomCreateResponse.
func schemaName(t reflect.Type, hint string) string {
	name := huma.DefaultSchemaNamer(t, hint)

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() == "" {
		return name
	}

	pkg := []rune(path.Base(t.PkgPath()))
	pkg[0] = unicode.ToUpper(pkg[0])
	if strings.HasPrefix(name, string(pkg)) {
		return name
	}
	return string(pkg) + name
}

// limitUnlocks throttles room password attempts per client IP. Other
// routes pass through untouched.
func limitUnlocks(cfg config.RateLimit) func(http.Handler) http.Handler {
	if cfg.UnlockRequests <= 0 || cfg.UnlockWindow <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	limiter := httprate.Limit(
		cfg.UnlockRequests,
		cfg.UnlockWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
	)

	return func(next http.Handler) http.Handler {
		limited := limiter(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/unlock") {
				limited.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
