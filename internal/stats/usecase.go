package stats

import (
	"context"
	"io"
	"time"
)

type UseCase interface {
	// Report never fails; storage errors yield an empty report marked degraded.
	Report(ctx context.Context, period Period) *PeriodReport
	Export(ctx context.Context, period Period, w io.Writer, lang string) error
	Invalidate(ctx context.Context)
	Now() time.Time
}

type PeriodReport struct {
	Period Period    `json:"period"`
	Since  time.Time `json:"since"`
	*Report
}
