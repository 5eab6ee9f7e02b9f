package survey

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/kula-app/cdcalc/internal/leda"
)

// noneName is printed when no object had a positive distance
const noneName = "none"

// Resolver looks up the distance of a single object
type Resolver interface {
	Resolve(ctx context.Context, name string) (leda.Estimate, error)
}

// Summary is the outcome of a survey
type Summary struct {
	// Count is the number of objects loaded from the input
	Count int

	// Found is false until an object with a positive distance is seen
	Found bool

	// Object and DistanceMly describe the most distant object when Found is set
	Object      string
	DistanceMly float64

	// Failed counts objects whose lookup returned an error
	Failed int
}

// Report writes the human readable summary
func (s Summary) Report(w io.Writer) error {
	name := noneName
	distance := 0.0
	if s.Found {
		name = s.Object
		distance = s.DistanceMly
	}
	_, err := fmt.Fprintf(w, "Galaxies found: %d\nMost distant: %s\nDistance: %f Mly\n", s.Count, name, distance)
	return err
}

// observe records est if it is farther than the current maximum.
// NaN never compares greater, so it is never recorded.
func (s *Summary) observe(est leda.Estimate) bool {
	if !(est.DistanceMly > 0) {
		return false
	}
	if s.Found && !(est.DistanceMly > s.DistanceMly) {
		return false
	}
	s.Found = true
	s.Object = est.Object
	s.DistanceMly = est.DistanceMly
	return true
}

// Surveyor resolves a list of objects one at a time and tracks the most distant
type Surveyor struct {
	resolver Resolver
	logger   *slog.Logger
	progress io.Writer
}

// NewSurveyor creates a new surveyor. A dot is written to progress for every object.
func NewSurveyor(resolver Resolver, logger *slog.Logger, progress io.Writer) *Surveyor {
	return &Surveyor{
		resolver: resolver,
		logger:   logger,
		progress: progress,
	}
}

// Run resolves every name in order. Lookup failures are logged and count as
// no distance. A canceled context stops the loop and returns what was
// gathered so far together with the context error.
func (s *Surveyor) Run(ctx context.Context, names []string) (Summary, error) {
	startTime := time.Now()
	summary := Summary{Count: len(names)}

	s.logger.Debug("survey started", "objects", len(names))

	for i, name := range names {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("survey interrupted", "remaining", len(names)-i, "error", err)
			return summary, err
		}

		fmt.Fprint(s.progress, ".")

		est, err := s.resolver.Resolve(ctx, name)
		if err != nil {
			s.logger.Error("failed to resolve distance",
				"object", name,
				"error", err)
			summary.Failed++
			continue
		}

		if !est.Found() {
			s.logger.Debug("no distance modulus available",
				"object", name,
				"rows", est.Rows)
			continue
		}

		if summary.observe(est) {
			s.logger.Debug("new most distant object",
				"object", name,
				"distance_mly", est.DistanceMly,
				"field", est.Field,
				"rows", est.Rows)
		}
	}

	s.logger.Debug("survey completed",
		"duration", time.Since(startTime),
		"objects", summary.Count,
		"failed", summary.Failed,
		"found", summary.Found)

	return summary, nil
}
