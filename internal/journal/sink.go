package journal

import (
	"context"
	"log/slog"
)

// LogSink writes each routed event to the log.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LogSink{logger: logger}
}

// Record implements DecisionSink.
func (s *LogSink) Record(ctx context.Context, rec Record) error {
	s.logger.InfoContext(ctx, "sed event routed",
		"event", rec.EventKey,
		"rina_sak_id", rec.RinaCaseID,
		"sed_type", rec.SedType,
		"category", rec.Category,
		"enhet_nr", rec.UnitCode,
		"source", rec.Source,
		"request_id", rec.RequestID,
	)
	return nil
}

// MultiSink fans a record out to every sink, stopping at the first error.
type MultiSink []DecisionSink

// Record implements DecisionSink.
func (m MultiSink) Record(ctx context.Context, rec Record) error {
	for _, s := range m {
		if err := s.Record(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
