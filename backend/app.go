package backend

import (
	"context"
	"sync"
	"time"

	"github.com/argusdeck/app/backend/api"
	"github.com/argusdeck/app/backend/internal/authstate"
	"github.com/argusdeck/app/backend/internal/config"
	"github.com/argusdeck/app/backend/model"
	"github.com/argusdeck/app/backend/notify"
	"github.com/argusdeck/app/backend/refresh"
	"github.com/argusdeck/app/backend/route"
)

// App provides the backend façade exposed to Wails.
type App struct {
	Ctx context.Context

	logger   *Logger
	client   *api.Client
	auth     *authstate.Manager
	cache    *refresh.Cache
	detector *refresh.Detector
	toasts   *notify.Queue

	// settingsMu guards appSettings, which is written both from bound
	// methods and from the settings file watcher goroutine.
	settingsMu     sync.Mutex
	appSettings    *AppSettings
	windowSettings *WindowSettings

	routeMu sync.Mutex
	route   route.State

	eventsMu   sync.Mutex
	lastEvents []model.Event

	// persistenceMu guards persistence.json read/write operations and the
	// in-memory mirrors loaded from it.
	persistenceMu sync.Mutex
	seenIDs       map[int64]struct{}
	credentials   *authstate.Credentials

	settingsWatcher *settingsWatcher

	pollMu        sync.Mutex
	pollCancel    context.CancelFunc
	pollInFlight  bool
	midnightTimer *time.Timer

	eventEmitter func(context.Context, string, ...interface{})
	now          func() time.Time
}

// NewApp constructs a backend App with sane defaults.
func NewApp() *App {
	app := &App{
		logger:       NewLogger(config.LoggerMaxEntries),
		toasts:       notify.NewQueue(config.ToastDwell, config.ToastFade),
		route:        route.Dashboard(),
		seenIDs:      make(map[int64]struct{}),
		eventEmitter: func(context.Context, string, ...interface{}) {},
		now:          time.Now,
	}
	app.auth = authstate.New(app.onAuthInvalid)
	app.client = api.NewClient(config.DefaultServerURL, app.auth.WrapTransport(nil, persistedCredentials{app}))
	app.cache = refresh.NewCache(app.client)
	app.detector = refresh.NewDetector(persistedSeen{app})
	return app
}

// onAuthInvalid runs once per valid-to-invalid transition. The session ends,
// polling stops, and the frontend is told to show the login screen. Stored
// credentials are left alone so the username can be prefilled.
func (a *App) onAuthInvalid(reason string) {
	a.logger.Warn("Session invalidated: "+reason, "Auth")
	a.stopPolling()
	a.emitEvent("auth-invalid", map[string]any{"reason": reason})
}

func (a *App) emitEvent(name string, args ...interface{}) {
	if a == nil || a.eventEmitter == nil || a.Ctx == nil {
		return
	}
	a.eventEmitter(a.Ctx, name, args...)
}

// CtxOrBackground returns the Wails context when set, falling back to a
// background context before startup.
func (a *App) CtxOrBackground() context.Context {
	if a != nil && a.Ctx != nil {
		return a.Ctx
	}
	return context.Background()
}

// currentRoute returns a copy of the router state.
func (a *App) currentRoute() route.State {
	a.routeMu.Lock()
	defer a.routeMu.Unlock()
	return a.route
}

func (a *App) setRoute(state route.State) {
	a.routeMu.Lock()
	a.route = state
	a.routeMu.Unlock()
}
