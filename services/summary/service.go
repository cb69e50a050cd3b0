package summary

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/ytdigest/ytdigest/executor"
)

const (
	defaultMaxInputChars = 16000
	defaultTimeout       = 60 * time.Second

	// TruncationMarker is appended whenever the transcript is cut to fit
	// the provider input ceiling.
	TruncationMarker = "... [Transcript truncated]"
)

type service struct {
	providers map[string]Provider
	config    Config
	log       *logrus.Entry
}

// NewService builds a gateway over the given providers, keyed by their
// Name(). The registry is fixed at construction.
func NewService(providers []Provider, config Config) Service {
	if config.MaxInputChars <= 0 {
		config.MaxInputChars = defaultMaxInputChars
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	registry := make(map[string]Provider, len(providers))
	for _, p := range providers {
		registry[p.Name()] = p
	}
	return &service{
		providers: registry,
		config:    config,
		log:       logrus.WithField("component", "summary"),
	}
}

func (s *service) Summarize(ctx context.Context, req Request) (string, error) {
	provider, ok := s.providers[req.Provider]
	if !ok {
		return "", &SummarizationError{
			Kind:     UnsupportedProvider,
			Provider: req.Provider,
			Message:  fmt.Sprintf("no such provider %q", req.Provider),
		}
	}
	if req.APIKey == "" {
		return "", &SummarizationError{
			Kind:     MissingCredential,
			Provider: req.Provider,
			Message:  "no API key supplied or configured",
		}
	}

	text := s.truncate(req.Text)
	prompt := renderPrompt(text)

	start := time.Now()
	result, err := executor.RunBounded(ctx, s.config.Timeout, func(ctx context.Context) (string, error) {
		return provider.Complete(ctx, prompt, req.APIKey)
	})
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, executor.ErrTimeout) {
			s.log.WithFields(logrus.Fields{
				"provider": req.Provider,
				"timeout":  s.config.Timeout,
			}).Warn("Summarization timed out")
			return "", &SummarizationError{
				Kind:     Timeout,
				Provider: req.Provider,
				Message:  fmt.Sprintf("no response within %s", s.config.Timeout),
			}
		}
		s.log.WithError(err).WithField("provider", req.Provider).Error("Provider call failed")
		return "", &SummarizationError{
			Kind:     ProviderFailure,
			Provider: req.Provider,
			Message:  err.Error(),
		}
	}
	if result == "" {
		return "", &SummarizationError{
			Kind:     ProviderFailure,
			Provider: req.Provider,
			Message:  "provider returned an empty summary",
		}
	}

	s.log.WithFields(logrus.Fields{
		"provider": req.Provider,
		"duration": elapsed,
		"length":   len(result),
	}).Info("Summary generated")
	return result, nil
}

func (s *service) truncate(text string) string {
	limit := s.config.MaxInputChars
	if len(text) <= limit {
		return text
	}
	// Back off to the previous rune boundary so the cut never splits a rune.
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	s.log.WithFields(logrus.Fields{
		"original_length":  len(text),
		"truncated_length": cut,
	}).Info("Truncating transcript for summarization")
	return text[:cut] + TruncationMarker
}
