package transcript

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kkdai/youtube/v2"

	"github.com/ytdigest/ytdigest/captions"
	"github.com/ytdigest/ytdigest/models"
)

type clientLibraryStrategy struct {
	yt   youtube.Client
	http *http.Client
}

// NewClientLibraryStrategy goes through the secondary client library's
// caption accessor. With no caller preference it prefers an English track,
// otherwise the shared selection policy applies.
func NewClientLibraryStrategy(httpClient *http.Client) Strategy {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &clientLibraryStrategy{
		yt:   youtube.Client{HTTPClient: httpClient},
		http: httpClient,
	}
}

func (s *clientLibraryStrategy) Name() models.SourceStrategy {
	return models.SourceClientLibrary
}

func (s *clientLibraryStrategy) Attempt(ctx context.Context, videoID, preferredLanguage string) models.Outcome {
	video, err := s.yt.GetVideoContext(ctx, videoID)
	if err != nil {
		return models.TransientOutcome("get video: " + err.Error())
	}
	if len(video.CaptionTracks) == 0 {
		return models.UnavailableOutcome("client library reports no caption tracks")
	}

	meta := make([]captions.Track, len(video.CaptionTracks))
	for i, t := range video.CaptionTracks {
		meta[i].LanguageCode = t.LanguageCode
		meta[i].Kind = t.Kind
	}

	preferred := preferredLanguage
	if preferred == "" {
		preferred = "en"
	}
	idx, ok := captions.SelectTrack(meta, preferred)
	if !ok {
		return models.UnavailableOutcome("no usable caption track")
	}
	track := video.CaptionTracks[idx]

	text, err := s.fetchTrackVTT(ctx, track.BaseURL)
	if err != nil {
		return models.TransientOutcome("fetch caption track: " + err.Error())
	}
	if text == "" {
		return models.UnavailableOutcome("caption track was empty")
	}

	return models.SuccessOutcome(&models.TranscriptResult{
		Text:         text,
		Source:       models.SourceClientLibrary,
		LanguageCode: track.LanguageCode,
	})
}

func (s *clientLibraryStrategy) fetchTrackVTT(ctx context.Context, baseURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"&fmt=vtt", nil)
	if err != nil {
		return "", err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("caption track returned status %d", resp.StatusCode)
	}
	return vttToText(resp.Body)
}
