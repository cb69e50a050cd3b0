// Package validation checks raw video URLs and extracts video identifiers.
// It is a collaborator of the acquisition core, which only ever sees the
// extracted identifier.
package validation

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/ytdigest/ytdigest/errors"
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?(?:.*&)?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/v/([a-zA-Z0-9_-]{11})`),
}

func validHost(host string) bool {
	switch {
	case host == "youtu.be":
		return true
	case host == "youtube.com" || strings.HasSuffix(host, ".youtube.com"):
		return true
	}
	return false
}

// ValidateURL performs syntactic validation of a video URL.
func ValidateURL(rawURL string) error {
	const op = "Validation.ValidateURL"

	if rawURL == "" {
		return errors.InvalidInput(op, nil, "URL is required")
	}

	parsedURL, err := url.ParseRequestURI(strings.TrimSpace(rawURL))
	if err != nil {
		return errors.InvalidInput(op, err, "Invalid URL format")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.InvalidInput(op, nil, "URL must use HTTP or HTTPS")
	}

	if !validHost(parsedURL.Hostname()) {
		return errors.InvalidInput(op, nil, "Only YouTube URLs are supported")
	}

	if _, err := ExtractVideoID(rawURL); err != nil {
		return err
	}
	return nil
}

// ExtractVideoID returns the 11-character video identifier embedded in any of
// the recognized URL forms.
func ExtractVideoID(rawURL string) (string, error) {
	const op = "Validation.ExtractVideoID"

	for _, pattern := range videoIDPatterns {
		if matches := pattern.FindStringSubmatch(rawURL); len(matches) > 1 {
			return matches[1], nil
		}
	}
	return "", errors.InvalidInput(op, nil, "URL does not contain a recognizable video ID")
}
