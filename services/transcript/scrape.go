package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"

	"github.com/ytdigest/ytdigest/captions"
	"github.com/ytdigest/ytdigest/models"
)

// PageFetcher is the slice of the captions client the scrape strategy needs.
type PageFetcher interface {
	FetchWatchPage(ctx context.Context, videoID string) ([]byte, error)
	FetchTimedText(ctx context.Context, baseURL string) ([]models.TranscriptSegment, error)
}

// The caption listing has been embedded in the watch page under several
// shapes over the years. Each parser handles one known shape; they are tried
// in order and a miss just moves to the next. There is no authoritative
// contract for any of these, so the whole strategy is best-effort and ordered
// last in the chain.
type shapeParser struct {
	name  string
	parse func(body []byte) ([]captions.Track, bool)
}

var watchPageShapes = []shapeParser{
	{name: "var_player_response", parse: parseMarkedPlayerResponse([]byte("var ytInitialPlayerResponse = "))},
	{name: "player_response", parse: parseMarkedPlayerResponse([]byte("ytInitialPlayerResponse = "))},
	{name: "ytplayer_config", parse: parseYtplayerConfig},
}

type scrapeStrategy struct {
	fetcher PageFetcher
}

// NewScrapeStrategy extracts the caption listing from the public watch page
// payload. Most brittle of the strategies; kept last.
func NewScrapeStrategy(fetcher PageFetcher) Strategy {
	return &scrapeStrategy{fetcher: fetcher}
}

func (s *scrapeStrategy) Name() models.SourceStrategy {
	return models.SourcePageScrape
}

func (s *scrapeStrategy) Attempt(ctx context.Context, videoID, preferredLanguage string) models.Outcome {
	body, err := s.fetcher.FetchWatchPage(ctx, videoID)
	if err != nil {
		return models.TransientOutcome("fetch watch page: " + err.Error())
	}

	tracks, ok := parseWatchPage(body)
	if !ok {
		return models.UnavailableOutcome("no known caption payload shape in watch page")
	}
	if len(tracks) == 0 {
		return models.UnavailableOutcome("watch page lists no caption tracks")
	}

	// The scraped listing marks auto-generated tracks explicitly and those
	// are the reliably fetchable ones, so they take precedence here.
	idx, ok := captions.SelectGeneratedFirst(tracks, preferredLanguage)
	if !ok {
		return models.UnavailableOutcome("no usable caption track")
	}
	track := tracks[idx]

	segments, err := s.fetcher.FetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return models.TransientOutcome("fetch timed text: " + err.Error())
	}
	text := captions.JoinSegments(segments)
	if text == "" {
		return models.UnavailableOutcome("caption document was empty")
	}

	return models.SuccessOutcome(&models.TranscriptResult{
		Text:         text,
		Source:       models.SourcePageScrape,
		LanguageCode: track.LanguageCode,
	})
}

func parseWatchPage(body []byte) ([]captions.Track, bool) {
	for _, shape := range watchPageShapes {
		if tracks, ok := shape.parse(body); ok {
			return tracks, true
		}
	}
	return nil, false
}

type scrapedPlayerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captions.Track `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

func parseMarkedPlayerResponse(marker []byte) func(body []byte) ([]captions.Track, bool) {
	return func(body []byte) ([]captions.Track, bool) {
		idx := bytes.Index(body, marker)
		if idx < 0 {
			return nil, false
		}
		raw := extractJSON(body[idx+len(marker):])
		if raw == nil {
			return nil, false
		}
		return tracksFromPlayerResponse(raw)
	}
}

// parseYtplayerConfig handles the legacy ytplayer.config shape, where the
// player response is a JSON string inside the config object.
func parseYtplayerConfig(body []byte) ([]captions.Track, bool) {
	marker := []byte(`"player_response":"`)
	idx := bytes.Index(body, marker)
	if idx < 0 {
		return nil, false
	}
	rest := body[idx+len(marker)-1:] // keep the opening quote

	end := findStringEnd(rest)
	if end < 0 {
		return nil, false
	}
	unquoted, err := strconv.Unquote(string(rest[:end+1]))
	if err != nil {
		return nil, false
	}
	return tracksFromPlayerResponse([]byte(unquoted))
}

func tracksFromPlayerResponse(raw []byte) ([]captions.Track, bool) {
	var player scrapedPlayerResponse
	if err := json.Unmarshal(raw, &player); err != nil {
		return nil, false
	}
	if player.Captions == nil {
		return nil, false
	}
	return player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks, true
}

// extractJSON returns the balanced JSON object starting at b[0], or nil.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	for i := 0; i < len(b); i++ {
		if inStr {
			switch b[i] {
			case '\\':
				i++
			case '"':
				inStr = false
			}
			continue
		}
		switch b[i] {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}

// findStringEnd returns the index of the closing unescaped quote of a JSON
// string starting at b[0] (which must be '"'), or -1.
func findStringEnd(b []byte) int {
	if len(b) == 0 || b[0] != '"' {
		return -1
	}
	for i := 1; i < len(b); i++ {
		switch b[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}
