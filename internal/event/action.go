package event

import "time"

// ActionKind identifies a user-initiated action in the host
// application.
type ActionKind string

const (
	ActionFileOpen      ActionKind = "file_open"
	ActionFileSave      ActionKind = "file_save"
	ActionMediaImport   ActionKind = "media_import"
	ActionPlaybackStart ActionKind = "playback_start"
	ActionPlaybackStop  ActionKind = "playback_stop"
	ActionEditApply     ActionKind = "edit_apply"
	ActionExport        ActionKind = "export"
	ActionSettingChange ActionKind = "setting_change"
	ActionOther         ActionKind = "other"
)

// UserAction records a user-initiated action. Details is optional
// free text (for example a file path or setting name) and is
// anonymized at export.
type UserAction struct {
	Action  ActionKind
	Details string
}

func (UserAction) Kind() Kind { return KindUserAction }

// StateKind identifies an application lifecycle transition.
type StateKind string

const (
	StateStartup    StateKind = "startup"
	StateShutdown   StateKind = "shutdown"
	StateForeground StateKind = "foreground"
	StateBackground StateKind = "background"
	StateIdle       StateKind = "idle"
)

// AppState records an application state transition.
type AppState struct {
	State StateKind
}

func (AppState) Kind() Kind { return KindAppState }

// OpKind identifies a timed internal operation.
type OpKind string

const (
	OpDecode    OpKind = "decode"
	OpEncode    OpKind = "encode"
	OpThumbnail OpKind = "thumbnail"
	OpImport    OpKind = "import"
	OpExport    OpKind = "export"
	OpAnalysis  OpKind = "analysis"
)

// Operation records a completed internal operation and how long it
// took.
type Operation struct {
	Op       OpKind
	Duration time.Duration
}

func (Operation) Kind() Kind { return KindOperation }
