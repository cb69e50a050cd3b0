package transcript

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/ytdigest/ytdigest/models"
)

const (
	defaultMaxTranscriptChars = 10000

	// TruncationMarker is appended whenever transcript text is cut at the
	// configured ceiling.
	TruncationMarker = "... [Transcript truncated]"
)

type service struct {
	checker    AvailabilityChecker
	strategies []Strategy
	config     Config
	logger     *logrus.Logger
}

// NewService builds the acquisition pipeline. Strategies are tried strictly
// in the order given, one at a time; the first success wins.
func NewService(checker AvailabilityChecker, strategies []Strategy, config Config) Service {
	if config.MaxTranscriptChars <= 0 {
		config.MaxTranscriptChars = defaultMaxTranscriptChars
	}
	return &service{
		checker:    checker,
		strategies: strategies,
		config:     config,
		logger:     logrus.StandardLogger(),
	}
}

func (s *service) Acquire(ctx context.Context, videoID, preferredLanguage string) (*models.TranscriptResult, error) {
	logger := s.logger.WithFields(logrus.Fields{
		"video_id": videoID,
		"language": preferredLanguage,
	})

	available, diagnostic, err := s.checker.CheckAvailability(ctx, videoID)
	if err != nil {
		logger.WithError(err).Error("Availability check could not complete")
		return nil, &AcquisitionError{
			Kind:    ErrTransientNetwork,
			Message: fmt.Sprintf("failed to check video availability: %v", err),
		}
	}
	if !available {
		logger.WithField("diagnostic", diagnostic).Info("Video unavailable, skipping all strategies")
		if diagnostic == "" {
			diagnostic = "video is unavailable"
		}
		return nil, &AcquisitionError{Kind: ErrVideoUnavailable, Message: diagnostic}
	}

	attempted := 0
	for _, strategy := range s.strategies {
		attempted++
		outcome := strategy.Attempt(ctx, videoID, preferredLanguage)

		switch outcome.Status {
		case models.StatusSuccess:
			result := *outcome.Result
			result.Text = s.truncate(result.Text, logger)
			logger.WithFields(logrus.Fields{
				"strategy": strategy.Name(),
				"attempts": attempted,
				"length":   len(result.Text),
			}).Info("Transcript acquired")
			return &result, nil

		case models.StatusTransient:
			logger.WithFields(logrus.Fields{
				"strategy": strategy.Name(),
				"reason":   outcome.Reason,
			}).Warn("Strategy failed, trying next")

		default:
			logger.WithFields(logrus.Fields{
				"strategy": strategy.Name(),
				"reason":   outcome.Reason,
			}).Debug("Strategy reported no transcript")
		}
	}

	logger.WithField("attempts", attempted).Info("No strategy produced a transcript")
	return nil, &AcquisitionError{
		Kind:    ErrNoCaptionsFound,
		Message: fmt.Sprintf("no captions found after trying %d strategies", attempted),
	}
}

func (s *service) truncate(text string, logger *logrus.Entry) string {
	limit := s.config.MaxTranscriptChars
	if len(text) <= limit {
		return text
	}
	// Back off to the previous rune boundary so the cut never splits a rune.
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	logger.WithFields(logrus.Fields{
		"original_length":  len(text),
		"truncated_length": cut,
	}).Warn("Transcript truncated")
	return text[:cut] + TruncationMarker
}
