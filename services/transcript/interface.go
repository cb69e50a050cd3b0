package transcript

import (
	"context"

	"github.com/ytdigest/ytdigest/models"
)

// Service acquires a normalized transcript for a video identifier.
type Service interface {
	Acquire(ctx context.Context, videoID, preferredLanguage string) (*models.TranscriptResult, error)
}

// Strategy is one self-contained way of obtaining transcript text from a
// specific backend. Strategies report everything through the outcome tag;
// they never propagate errors to the pipeline.
type Strategy interface {
	Name() models.SourceStrategy
	Attempt(ctx context.Context, videoID, preferredLanguage string) models.Outcome
}

// AvailabilityChecker is the pre-flight reachability collaborator. A returned
// error means the check itself could not complete, distinct from the video
// being unavailable.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, videoID string) (available bool, diagnostic string, err error)
}

type Config struct {
	// MaxTranscriptChars caps the returned transcript text; longer text is
	// cut at the ceiling with a truncation marker appended. Zero means the
	// default of 10000.
	MaxTranscriptChars int
}
