package event

// WarningType is the closed category set for captured warnings.
type WarningType string

const (
	WarnFileNotFound       WarningType = "file_not_found"
	WarnUnsupportedFormat  WarningType = "unsupported_format"
	WarnPermissionDenied   WarningType = "permission_denied"
	WarnNetworkError       WarningType = "network_error"
	WarnConfigurationIssue WarningType = "configuration_issue"
	WarnOther              WarningType = "other"
)

// ErrorType is the closed category set for captured errors. These
// categorize failures inside the host application; they are event
// data, unrelated to the pipeline's own operational errors.
type ErrorType string

const (
	ErrTypeIO       ErrorType = "io_error"
	ErrTypeDecode   ErrorType = "decode_error"
	ErrTypeExport   ErrorType = "export_error"
	ErrTypeAIModel  ErrorType = "ai_model_error"
	ErrTypeInternal ErrorType = "internal_error"
	ErrTypeOther    ErrorType = "other"
)

// WarningEvent is a captured non-fatal problem. Message must already
// be sanitized when the event is constructed; nothing downstream
// re-checks it. Source and Code are optional.
type WarningEvent struct {
	Type    WarningType
	Message string
	Source  string
	Code    string
}

func (WarningEvent) Kind() Kind { return KindWarning }

// ErrorEvent is a captured failure. Same sanitization contract as
// WarningEvent.
type ErrorEvent struct {
	Type    ErrorType
	Message string
	Source  string
	Code    string
}

func (ErrorEvent) Kind() Kind { return KindError }
