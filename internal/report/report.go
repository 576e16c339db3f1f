// Package report assembles and exports diagnostic reports: an
// anonymized, timestamp-relativized snapshot of the event buffer
// plus system metadata. Reports are ephemeral values built per
// export request; nothing here mutates the live buffer or persists
// state between exports.
package report

import (
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/lumen-media/lumen-diagnostics/internal/anonymize"
	"github.com/lumen-media/lumen-diagnostics/internal/event"
)

// Metadata describes one report. Timestamps are ISO-8601 in UTC.
type Metadata struct {
	ReportID             string `json:"report_id"`
	GeneratedAt          string `json:"generated_at"`
	AppVersion           string `json:"app_version"`
	CollectionStartedAt  string `json:"collection_started_at"`
	CollectionDurationMS uint64 `json:"collection_duration_ms"`
	EventCount           int    `json:"event_count"`
}

// Report is the full export payload.
type Report struct {
	Metadata   Metadata            `json:"metadata"`
	SystemInfo SystemInfo          `json:"system_info"`
	Events     []event.ReportEvent `json:"events"`
}

// Builder turns buffer snapshots into reports. One builder serves a
// whole session so placeholders stay referentially consistent
// across exports.
type Builder struct {
	identity   *anonymize.IdentityAnonymizer
	paths      *anonymize.PathAnonymizer
	appVersion string

	// Injection points for tests.
	now    func() time.Time
	newID  func() string
	gather func() SystemInfo
}

// NewBuilder creates a builder keyed by the session salt. username
// feeds the identity battery; pass anonymize.CurrentUsername() in
// production wiring.
func NewBuilder(salt anonymize.Salt, username, appVersion string) *Builder {
	return &Builder{
		identity:   anonymize.NewIdentityAnonymizer(salt, username),
		paths:      anonymize.NewPathAnonymizer(salt),
		appVersion: appVersion,
		now:        time.Now,
		newID:      func() string { return uuid.NewString() },
		gather:     GatherSystemInfo,
	}
}

var rePathShaped = regexp.MustCompile(`^(?:/|[A-Za-z]:\\|\\\\)\S*$`)

// transformText anonymizes one free-text field. A field that is
// exactly a path keeps its shape through the path anonymizer;
// anything else goes through the identity battery, which replaces
// embedded paths, addresses and names with placeholders.
func (b *Builder) transformText(s string) string {
	if rePathShaped.MatchString(s) {
		return b.paths.Anonymize(s)
	}
	return b.identity.Anonymize(s)
}

// Build assembles a report from a buffer snapshot. Event timestamps
// become milliseconds relative to startedAt, the collection start
// fixed at collector construction.
func (b *Builder) Build(events []event.Event, startedAt time.Time) Report {
	generated := b.now()
	tr := event.Transforms{Text: b.transformText}

	out := make([]event.ReportEvent, 0, len(events))
	for _, e := range events {
		out = append(out, event.Flatten(e, e.Time.Sub(startedAt), tr))
	}

	duration := uint64(0)
	if d := generated.Sub(startedAt); d > 0 {
		duration = uint64(d.Milliseconds())
	}

	return Report{
		Metadata: Metadata{
			ReportID:             b.newID(),
			GeneratedAt:          generated.UTC().Format(time.RFC3339),
			AppVersion:           b.appVersion,
			CollectionStartedAt:  startedAt.UTC().Format(time.RFC3339),
			CollectionDurationMS: duration,
			EventCount:           len(out),
		},
		SystemInfo: b.gather(),
		Events:     out,
	}
}
