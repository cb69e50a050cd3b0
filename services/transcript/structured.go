package transcript

import (
	"context"

	"github.com/ytdigest/ytdigest/captions"
	"github.com/ytdigest/ytdigest/models"
)

// TrackSource is the slice of the captions client the structured strategy
// needs: track enumeration plus caption-document download.
type TrackSource interface {
	ListTracks(ctx context.Context, videoID string) ([]captions.Track, error)
	FetchTimedText(ctx context.Context, baseURL string) ([]models.TranscriptSegment, error)
}

type structuredStrategy struct {
	source TrackSource
}

// NewStructuredStrategy queries the platform's transcript listing directly
// and downloads the selected track's timed-text document.
func NewStructuredStrategy(source TrackSource) Strategy {
	return &structuredStrategy{source: source}
}

func (s *structuredStrategy) Name() models.SourceStrategy {
	return models.SourceStructuredAPI
}

func (s *structuredStrategy) Attempt(ctx context.Context, videoID, preferredLanguage string) models.Outcome {
	tracks, err := s.source.ListTracks(ctx, videoID)
	if err != nil {
		return models.TransientOutcome("list tracks: " + err.Error())
	}

	idx, ok := captions.SelectTrack(tracks, preferredLanguage)
	if !ok {
		return models.UnavailableOutcome("no caption tracks listed")
	}
	track := tracks[idx]

	segments, err := s.source.FetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return models.TransientOutcome("fetch timed text: " + err.Error())
	}

	text := captions.JoinSegments(segments)
	if text == "" {
		return models.UnavailableOutcome("caption document was empty")
	}

	return models.SuccessOutcome(&models.TranscriptResult{
		Text:         text,
		Source:       models.SourceStructuredAPI,
		LanguageCode: track.LanguageCode,
	})
}
