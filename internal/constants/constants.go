package constants

import "time"

// AppDirName is the directory under the user's home that holds settings and userlists
const AppDirName = ".metadata-editor"

// Shutdown timing constants
const (
	// ShutdownTimeout bounds how long shutdown waits for storage to close
	ShutdownTimeout = 5 * time.Second
)

// Frontend event names
const (
	EventEditorSession   = "editor-session"
	EventUserlistChanged = "userlist-changed"
	EventNotice          = "notice"
)
