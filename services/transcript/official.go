package transcript

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"

	"github.com/ytdigest/ytdigest/captions"
	"github.com/ytdigest/ytdigest/models"
)

type officialStrategy struct {
	apiKey string
}

// NewOfficialStrategy uses the authenticated Data API. With no configured
// credential the strategy reports itself unavailable so the chain proceeds.
func NewOfficialStrategy(apiKey string) Strategy {
	return &officialStrategy{apiKey: apiKey}
}

func (s *officialStrategy) Name() models.SourceStrategy {
	return models.SourceOfficialAPI
}

func (s *officialStrategy) Attempt(ctx context.Context, videoID, preferredLanguage string) models.Outcome {
	if s.apiKey == "" {
		return models.UnavailableOutcome("no platform API credential configured")
	}

	svc, err := youtubeapi.NewService(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return models.TransientOutcome("create service: " + err.Error())
	}

	videos, err := svc.Videos.List([]string{"contentDetails"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return models.TransientOutcome("list video: " + err.Error())
	}
	if len(videos.Items) == 0 {
		return models.UnavailableOutcome("video not found by the data API")
	}
	if !strings.EqualFold(videos.Items[0].ContentDetails.Caption, "true") {
		return models.UnavailableOutcome("video reports no captions")
	}

	listing, err := svc.Captions.List([]string{"snippet"}, videoID).Context(ctx).Do()
	if err != nil {
		return models.TransientOutcome("list captions: " + err.Error())
	}
	if len(listing.Items) == 0 {
		return models.UnavailableOutcome("no caption tracks listed by the data API")
	}

	// Reuse the shared selection policy over the listing's metadata.
	meta := make([]captions.Track, len(listing.Items))
	for i, item := range listing.Items {
		meta[i].LanguageCode = item.Snippet.Language
		meta[i].Name.SimpleText = item.Snippet.Name
		if strings.EqualFold(item.Snippet.TrackKind, "asr") {
			meta[i].Kind = "asr"
		}
	}
	idx, ok := captions.SelectTrack(meta, preferredLanguage)
	if !ok {
		return models.UnavailableOutcome("no usable caption track")
	}
	chosen := listing.Items[idx]

	resp, err := svc.Captions.Download(chosen.Id).Tfmt("vtt").Context(ctx).Download()
	if err != nil {
		// Caption downloads require track-owner authorization for most
		// videos; an API key alone gets a 401/403. Treat that as this
		// strategy being unable to serve, not as a pipeline fault.
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden) {
			return models.UnavailableOutcome("caption download not permitted for this credential")
		}
		return models.TransientOutcome("download caption track: " + err.Error())
	}
	defer resp.Body.Close()

	text, err := vttToText(resp.Body)
	if err != nil {
		return models.TransientOutcome("parse caption track: " + err.Error())
	}
	if text == "" {
		return models.UnavailableOutcome("caption track was empty")
	}

	return models.SuccessOutcome(&models.TranscriptResult{
		Text:         text,
		Source:       models.SourceOfficialAPI,
		LanguageCode: chosen.Snippet.Language,
	})
}
