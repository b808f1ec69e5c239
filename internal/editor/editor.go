// Package editor reconciles the metadata editor's sessions with the
// userlist. Opening a session counts it as an unapplied change; closing it
// either discards the edits or stores only what the user added on top of the
// plugin's non-user metadata.
package editor

import (
	"fmt"

	"github.com/matt0x6f/metadata-editor/internal/events"
	"github.com/matt0x6f/metadata-editor/internal/logger"
	"github.com/matt0x6f/metadata-editor/internal/metadata"
	"github.com/matt0x6f/metadata-editor/internal/validation"
)

// UserMetadataStore holds the user's metadata for each plugin
type UserMetadataStore interface {
	GetUserMetadata(name string) (metadata.PluginMetadata, bool)
	ClearUserMetadata(name string)
	AddUserMetadata(m metadata.PluginMetadata)
	SaveUserMetadata() error
}

// GameState is the part of game state an editor session touches
type GameState interface {
	MetadataSource
	UserMetadataStore
}

// Publisher receives editor events
type Publisher interface {
	Emit(event events.Event)
}

// Response describes a plugin as the UI shows it after a session opens or
// closes.
type Response struct {
	Name string `json:"name"`
	// Metadata is the non-user metadata with the user's metadata merged in.
	Metadata     metadata.PluginMetadata  `json:"metadata"`
	UserMetadata *metadata.PluginMetadata `json:"userMetadata,omitempty"`
	Loaded       bool                     `json:"loaded"`
}

// Editor runs editor sessions against a game
type Editor struct {
	game      GameState
	counter   *Counter
	resolver  *Resolver
	publisher Publisher
}

// New creates an editor. counter is shared with any other editor of the same
// game. A nil counter gets a private one.
func New(game GameState, counter *Counter) *Editor {
	if counter == nil {
		counter = &Counter{}
	}
	return &Editor{
		game:     game,
		counter:  counter,
		resolver: NewResolver(game),
	}
}

// SetPublisher sets where session events are sent
func (e *Editor) SetPublisher(p Publisher) {
	e.publisher = p
}

// Counter returns the unapplied change counter
func (e *Editor) Counter() *Counter {
	return e.counter
}

// OpenEditor starts a session for the named plugin
func (e *Editor) OpenEditor(name string) (Response, error) {
	if err := validation.ValidatePluginName(name); err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	count := e.counter.Increment()
	logger.Log.Debug().Str("plugin", name).Int64("unapplied", count).Msg("Editor opened")

	e.publish(events.EventEditorOpened, events.EventSourceEditor, map[string]interface{}{
		"plugin":    name,
		"unapplied": count,
	})
	return e.Metadata(name), nil
}

// CloseEditor ends a session. If the payload asks for edits to be applied,
// the plugin's userlist entry is replaced with the user's additions and the
// userlist is saved. The unapplied change counter is decremented once
// whatever happens, including a malformed payload.
func (e *Editor) CloseEditor(payload []byte) (Response, error) {
	release := e.counter.Release()
	defer release()

	req, err := parseClosePayload(payload)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Rejected editor close request")
		return Response{}, err
	}

	name := req.metadata.Name
	if req.applyEdits {
		if err := e.applyEdits(req.metadata); err != nil {
			return Response{}, err
		}
	} else {
		logger.Log.Trace().Str("plugin", name).Msg("Discarding editor changes")
	}

	release()
	e.publish(events.EventEditorClosed, events.EventSourceEditor, map[string]interface{}{
		"plugin":    name,
		"applied":   req.applyEdits,
		"unapplied": e.counter.Count(),
	})
	return e.Metadata(name), nil
}

func (e *Editor) applyEdits(edited metadata.PluginMetadata) error {
	name := edited.Name
	log := logger.Log.With().Str("plugin", name).Logger()

	log.Trace().Msg("Applying editor changes")

	var baseline *metadata.PluginMetadata
	if m, ok := e.resolver.NonUserMetadata(name); ok {
		baseline = &m
	}
	userMetadata := UserMetadata(edited, baseline)

	log.Trace().Msg("Clearing existing userlist entry")
	e.game.ClearUserMetadata(name)

	if !userMetadata.HasNameOnly() {
		log.Trace().Msg("Adding new userlist entry")
		e.game.AddUserMetadata(userMetadata)
	}

	log.Trace().Msg("Saving userlist")
	if err := e.game.SaveUserMetadata(); err != nil {
		log.Error().Err(err).Msg("Failed to save userlist")
		e.publish(events.EventUserlistSaveFailed, events.EventSourceSystem, map[string]interface{}{
			"plugin": name,
			"error":  err.Error(),
		})
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	e.publish(events.EventUserMetadataUpdated, events.EventSourceSystem, map[string]interface{}{
		"plugin":  name,
		"cleared": userMetadata.HasNameOnly(),
	})
	return nil
}

// Metadata returns the current view of a plugin
func (e *Editor) Metadata(name string) Response {
	baseline, ok := e.resolver.NonUserMetadata(name)
	if !ok {
		baseline = metadata.NewPluginMetadata(name)
	}
	_, loaded := e.game.GetPlugin(name)

	resp := Response{Name: name, Metadata: baseline, Loaded: loaded}
	if user, ok := e.game.GetUserMetadata(name); ok {
		resp.Metadata.MergeMetadata(user)
		resp.UserMetadata = &user
	}
	return resp
}

func (e *Editor) publish(eventType string, source events.EventSource, data map[string]interface{}) {
	if e.publisher == nil {
		return
	}
	e.publisher.Emit(events.NewEvent(eventType, source, data))
}
