// Package languages lists the caption tracks available for a video so a
// caller can pick a language before requesting a transcript.
package languages

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ytdigest/ytdigest/captions"
	"github.com/ytdigest/ytdigest/models"
)

// TrackLister is the slice of the captions client this service needs.
type TrackLister interface {
	ListTracks(ctx context.Context, videoID string) ([]captions.Track, error)
}

// Service enumerates available caption languages. Listing never fails
// outward; any lookup problem yields an empty catalog.
type Service interface {
	List(ctx context.Context, videoID string) []models.LanguageOption
}

type service struct {
	lister TrackLister
	log    *logrus.Entry
}

func NewService(lister TrackLister) Service {
	return &service{
		lister: lister,
		log:    logrus.WithField("component", "languages"),
	}
}

// List returns the manually created tracks first, then the auto-generated
// ones, each group in the order the backend reported them.
func (s *service) List(ctx context.Context, videoID string) []models.LanguageOption {
	tracks, err := s.lister.ListTracks(ctx, videoID)
	if err != nil {
		s.log.WithError(err).WithField("video_id", videoID).Warn("Failed to list caption tracks")
		return []models.LanguageOption{}
	}

	options := make([]models.LanguageOption, 0, len(tracks))
	for _, t := range tracks {
		if !t.Generated() {
			options = append(options, toOption(t, models.OriginManual))
		}
	}
	for _, t := range tracks {
		if t.Generated() {
			options = append(options, toOption(t, models.OriginGenerated))
		}
	}
	return options
}

func toOption(t captions.Track, origin models.TrackOrigin) models.LanguageOption {
	name := t.Name.SimpleText
	if name == "" {
		name = t.LanguageCode
	}
	return models.LanguageOption{
		Code:        t.LanguageCode,
		DisplayName: name,
		Origin:      origin,
	}
}
