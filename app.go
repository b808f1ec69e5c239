package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/matt0x6f/metadata-editor/internal/config"
	"github.com/matt0x6f/metadata-editor/internal/constants"
	"github.com/matt0x6f/metadata-editor/internal/editor"
	"github.com/matt0x6f/metadata-editor/internal/events"
	"github.com/matt0x6f/metadata-editor/internal/game"
	"github.com/matt0x6f/metadata-editor/internal/logger"
	"github.com/matt0x6f/metadata-editor/internal/masterlist"
	"github.com/matt0x6f/metadata-editor/internal/metadata"
	"github.com/matt0x6f/metadata-editor/internal/notify"
	"github.com/matt0x6f/metadata-editor/internal/storage"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// App struct
type App struct {
	ctx      context.Context
	config   *config.Config
	game     *game.Game
	editor   *editor.Editor
	eventBus *events.EventBus
	storage  *storage.Storage // nil unless the SQLite backend is in use
}

// PluginInfo is a loaded plugin as listed in the UI
type PluginInfo struct {
	Name     string   `json:"name"`
	Ghosted  bool     `json:"ghosted"`
	Master   bool     `json:"master"`
	Light    bool     `json:"light"`
	BashTags []string `json:"bashTags,omitempty"`
	HasUser  bool     `json:"hasUserMetadata"`
}

// NewApp creates a new App application struct
func NewApp() (*App, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return newApp(filepath.Join(homeDir, constants.AppDirName))
}

func newApp(appDir string) (*App, error) {
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg, err := config.Load(appDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if err := logger.Configure(cfg.LogLevel); err != nil {
		return nil, err
	}

	gameType, err := game.ParseType(cfg.Game)
	if err != nil {
		return nil, err
	}

	app := &App{config: cfg, eventBus: events.NewEventBus()}

	backend, err := app.openUserlistBackend()
	if err != nil {
		return nil, err
	}

	g := game.New(gameType, backend)
	if err := loadGame(g, cfg); err != nil {
		app.closeStorage()
		return nil, err
	}
	app.game = g

	app.editor = editor.New(g, &editor.Counter{})
	app.editor.SetPublisher(app.eventBus)

	notify.New(cfg.Notifications).Subscribe(app.eventBus)

	// Forward session and userlist events to the frontend
	app.eventBus.Subscribe(events.EventEditorOpened, app)
	app.eventBus.Subscribe(events.EventEditorClosed, app)
	app.eventBus.Subscribe(events.EventUserMetadataUpdated, app)
	app.eventBus.Subscribe(events.EventUserlistSaveFailed, app)

	logger.Log.Info().
		Str("game", string(gameType)).
		Str("backend", cfg.UserlistBackend).
		Int("plugins", len(g.Plugins())).
		Msg("Metadata editor initialized")

	return app, nil
}

func (a *App) openUserlistBackend() (game.UserlistBackend, error) {
	switch a.config.UserlistBackend {
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(a.config.UserlistPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create userlist directory: %w", err)
		}
		stor, err := storage.NewStorage(a.config.UserlistPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		a.storage = stor
		return stor, nil
	default:
		return masterlist.NewFileUserlist(a.config.UserlistPath), nil
	}
}

func loadGame(g *game.Game, cfg *config.Config) error {
	if cfg.DataPath != "" {
		if err := g.LoadPlugins(cfg.DataPath); err != nil {
			return err
		}
	} else {
		logger.Log.Info().Msg("No data path configured, no plugins will be loaded")
	}

	if err := g.LoadMasterlist(cfg.MasterlistPath); err != nil {
		return err
	}
	if err := g.LoadUserlist(); err != nil {
		return fmt.Errorf("failed to load userlist: %w", err)
	}
	return nil
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	logger.Log.Info().Msg("App startup function called")
}

// shutdown is called when the app shuts down
func (a *App) shutdown(ctx context.Context) {
	logger.Log.Info().Msg("App shutdown initiated")

	if n := a.editor.Counter().Count(); n > 0 {
		logger.Log.Warn().Int64("sessions", n).Msg("Shutting down with unapplied editor changes")
	}

	a.closeStorage()
	logger.Log.Info().Msg("App shutdown complete")
}

// closeStorage closes the userlist backend, giving up after the shutdown timeout
func (a *App) closeStorage() {
	if a.storage == nil {
		return
	}

	done := make(chan struct{})
	go func() {
		if err := a.storage.Close(); err != nil {
			logger.Log.Error().Err(err).Msg("Failed to close storage")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(constants.ShutdownTimeout):
		logger.Log.Warn().Msg("Timeout closing storage, continuing shutdown")
	}
}

// OnEvent implements the events.Subscriber interface to forward events to frontend
func (a *App) OnEvent(event events.Event) {
	// Ensure context is set before event emission
	if a.ctx == nil {
		logger.Log.Debug().Msg("OnEvent: context not yet initialized, skipping event")
		return
	}

	runtime.EventsEmit(a.ctx, frontendEventName(event.Type), map[string]interface{}{
		"type":      event.Type,
		"data":      event.Data,
		"timestamp": event.Timestamp.Format(time.RFC3339),
	})
}

// frontendEventName maps a bus event to the event the page listens for
func frontendEventName(eventType string) string {
	switch eventType {
	case events.EventUserMetadataUpdated:
		return constants.EventUserlistChanged
	case events.EventUserlistSaveFailed:
		return constants.EventNotice
	default:
		return constants.EventEditorSession
	}
}

// OpenEditor starts an editor session for a plugin
func (a *App) OpenEditor(name string) (editor.Response, error) {
	return a.editor.OpenEditor(name)
}

// CloseEditor ends an editor session. payload is the JSON the frontend sends
// when the editor closes: {"applyEdits": bool, "metadata": {...}}.
func (a *App) CloseEditor(payload string) (editor.Response, error) {
	return a.editor.CloseEditor([]byte(payload))
}

// GetPluginMetadata returns a plugin's metadata as currently shown
func (a *App) GetPluginMetadata(name string) editor.Response {
	return a.editor.Metadata(name)
}

// UnappliedChangeCount returns the number of open editor sessions
func (a *App) UnappliedChangeCount() int64 {
	return a.editor.Counter().Count()
}

// ListPlugins returns the loaded plugins
func (a *App) ListPlugins() []PluginInfo {
	plugins := a.game.Plugins()
	infos := make([]PluginInfo, 0, len(plugins))
	for _, p := range plugins {
		info := PluginInfo{
			Name:     p.Name,
			Ghosted:  p.Ghosted,
			BashTags: p.BashTags(),
		}
		if p.Header != nil {
			info.Master = p.Header.IsMaster
			info.Light = p.Header.IsLight
		}
		_, info.HasUser = a.game.GetUserMetadata(p.Name)
		infos = append(infos, info)
	}
	return infos
}

// ListGroups returns the groups the masterlist defines
func (a *App) ListGroups() []masterlist.Group {
	return a.game.Groups()
}

// GetStoredUserMetadata reads a plugin's userlist entry straight from the
// backend rather than from memory. Only the SQLite backend supports this.
func (a *App) GetStoredUserMetadata(name string) (*metadata.PluginMetadata, error) {
	if a.storage == nil {
		return nil, fmt.Errorf("userlist backend %q does not support direct reads", a.config.UserlistBackend)
	}
	return a.storage.GetUserMetadata(name)
}

// ReloadUserlist rereads the userlist from its backend, dropping any
// in-memory entries that were never saved
func (a *App) ReloadUserlist() error {
	if err := a.game.LoadUserlist(); err != nil {
		logger.Log.Error().Err(err).Msg("Failed to reload userlist")
		return err
	}
	a.eventBus.Emit(events.NewEvent(events.EventUserMetadataUpdated, events.EventSourceSystem, map[string]interface{}{
		"reloaded": true,
	}))
	return nil
}
