package cmd

import (
	"log/slog"

	"github.com/lumen-media/lumen-diagnostics/internal/anonymize"
	"github.com/lumen-media/lumen-diagnostics/internal/buffer"
	"github.com/lumen-media/lumen-diagnostics/internal/collect"
	"github.com/lumen-media/lumen-diagnostics/internal/config"
	"github.com/lumen-media/lumen-diagnostics/internal/logging"
	"github.com/lumen-media/lumen-diagnostics/internal/report"
	"github.com/lumen-media/lumen-diagnostics/internal/sampler"
)

// pipeline bundles one diagnostics session: a fresh salt, the
// collector with its buffer, and the exporter sharing that salt so
// placeholders stay consistent across the session's exports.
type pipeline struct {
	logger    *slog.Logger
	collector *collect.Collector
	exporter  *report.Exporter
}

func newPipeline(cfg config.Config) (*pipeline, error) {
	salt, err := anonymize.NewSalt()
	if err != nil {
		return nil, err
	}

	username := anonymize.CurrentUsername()
	sanitizer := anonymize.NewMessageSanitizer(anonymize.NewIdentityAnonymizer(salt, username))

	logger := logging.New(logging.Config{
		Level:    cfg.Log.Level,
		Format:   cfg.Log.Format,
		Sanitize: sanitizer.Sanitize,
	})

	collector := collect.New(collect.Config{
		Capacity:  buffer.NewCapacity(cfg.Buffer.Capacity),
		QueueSize: cfg.Buffer.QueueSize,
		Sampling:  sampler.NewInterval(cfg.Sampling.Interval),
		Sanitizer: sanitizer,
		Logger:    logger,
	})

	exporter := report.NewExporter(report.Config{
		Builder:      report.NewBuilder(salt, username, appVersion),
		ClipboardMax: cfg.Clipboard.MaxBytes,
		Logger:       logger,
	})

	return &pipeline{
		logger:    logger,
		collector: collector,
		exporter:  exporter,
	}, nil
}

func (p *pipeline) close() {
	p.collector.Close()
}
