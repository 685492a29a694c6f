package service

import (
	"context"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
)

//go:generate mockgen -source=telemetry.go -destination=../mock/reporter_mock.go -package=mock

// Reporter receives errors that were recovered locally (per record, per
// task) so that they are not lost even though the sync cycle carries on.
type Reporter interface {
	Report(ctx context.Context, err error, fields map[string]string)
}

type logReporter struct {
	logger *logger.Logger
}

// NewLogReporter returns a [Reporter] that writes every report as an error
// entry tagged telemetry=true.
func NewLogReporter(logger *logger.Logger) Reporter {
	return &logReporter{logger: logger}
}

func (r *logReporter) Report(ctx context.Context, err error, fields map[string]string) {
	ev := r.logger.Error().Err(err).Bool("telemetry", true)
	if runID, ok := utils.GetRunIDFromContext(ctx); ok {
		ev = ev.Str("run_id", runID)
	}
	for k, v := range fields {
		ev = ev.Str(k, v)
	}
	ev.Msg("recovered sync error")
}
