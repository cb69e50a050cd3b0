package languages

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ytdigest/ytdigest/captions"
	"github.com/ytdigest/ytdigest/models"
)

type fakeLister struct {
	tracks []captions.Track
	err    error
}

func (f *fakeLister) ListTracks(ctx context.Context, videoID string) ([]captions.Track, error) {
	return f.tracks, f.err
}

func track(code, name, kind string) captions.Track {
	t := captions.Track{LanguageCode: code, Kind: kind}
	t.Name.SimpleText = name
	return t
}

func TestListManualBeforeGenerated(t *testing.T) {
	lister := &fakeLister{tracks: []captions.Track{
		track("en", "English (auto-generated)", "asr"),
		track("de", "German", ""),
		track("fr", "French", ""),
		track("es", "Spanish (auto-generated)", "asr"),
	}}
	svc := NewService(lister)

	got := svc.List(context.Background(), "dQw4w9WgXcQ")
	want := []models.LanguageOption{
		{Code: "de", DisplayName: "German", Origin: models.OriginManual},
		{Code: "fr", DisplayName: "French", Origin: models.OriginManual},
		{Code: "en", DisplayName: "English (auto-generated)", Origin: models.OriginGenerated},
		{Code: "es", DisplayName: "Spanish (auto-generated)", Origin: models.OriginGenerated},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestListLookupFailureYieldsEmptyCatalog(t *testing.T) {
	svc := NewService(&fakeLister{err: errors.New("dial tcp: timeout")})

	got := svc.List(context.Background(), "dQw4w9WgXcQ")
	if got == nil {
		t.Fatal("got nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("got %d options, want 0", len(got))
	}
}

func TestListMissingDisplayNameFallsBackToCode(t *testing.T) {
	lister := &fakeLister{tracks: []captions.Track{track("pt", "", "")}}
	svc := NewService(lister)

	got := svc.List(context.Background(), "dQw4w9WgXcQ")
	if len(got) != 1 || got[0].DisplayName != "pt" {
		t.Errorf("got %+v, want display name %q", got, "pt")
	}
}
