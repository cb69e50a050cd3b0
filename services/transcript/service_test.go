package transcript

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ytdigest/ytdigest/models"
)

type fakeChecker struct {
	available  bool
	diagnostic string
	err        error
}

func (f *fakeChecker) CheckAvailability(ctx context.Context, videoID string) (bool, string, error) {
	return f.available, f.diagnostic, f.err
}

type fakeStrategy struct {
	name     models.SourceStrategy
	outcome  models.Outcome
	attempts int
}

func (f *fakeStrategy) Name() models.SourceStrategy { return f.name }

func (f *fakeStrategy) Attempt(ctx context.Context, videoID, preferredLanguage string) models.Outcome {
	f.attempts++
	return f.outcome
}

func successStrategy(name models.SourceStrategy, text string) *fakeStrategy {
	return &fakeStrategy{
		name: name,
		outcome: models.SuccessOutcome(&models.TranscriptResult{
			Text:         text,
			Source:       name,
			LanguageCode: "en",
		}),
	}
}

func missStrategy(name models.SourceStrategy) *fakeStrategy {
	return &fakeStrategy{name: name, outcome: models.UnavailableOutcome("no captions")}
}

func TestAcquireFirstSuccessWins(t *testing.T) {
	first := missStrategy(models.SourceStructuredAPI)
	second := successStrategy(models.SourceOfficialAPI, "hello world")
	third := successStrategy(models.SourceClientLibrary, "should not run")

	svc := NewService(&fakeChecker{available: true}, []Strategy{first, second, third}, Config{})

	result, err := svc.Acquire(context.Background(), "dQw4w9WgXcQ", "")
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	if result.Text != "hello world" {
		t.Errorf("got text %q, want %q", result.Text, "hello world")
	}
	if result.Source != models.SourceOfficialAPI {
		t.Errorf("got source %q, want %q", result.Source, models.SourceOfficialAPI)
	}
	if third.attempts != 0 {
		t.Errorf("third strategy ran %d times after earlier success", third.attempts)
	}
}

func TestAcquireUnreachableVideoSkipsStrategies(t *testing.T) {
	strat := successStrategy(models.SourceStructuredAPI, "never")
	svc := NewService(&fakeChecker{available: false, diagnostic: "failed to retrieve video, status code: 404"}, []Strategy{strat}, Config{})

	_, err := svc.Acquire(context.Background(), "dQw4w9WgXcQ", "")
	var acqErr *AcquisitionError
	if !errors.As(err, &acqErr) {
		t.Fatalf("got %T, want *AcquisitionError", err)
	}
	if acqErr.Kind != ErrVideoUnavailable {
		t.Errorf("got kind %v, want %v", acqErr.Kind, ErrVideoUnavailable)
	}
	if !strings.Contains(acqErr.Message, "404") {
		t.Errorf("diagnostic not carried into error: %q", acqErr.Message)
	}
	if strat.attempts != 0 {
		t.Errorf("strategy ran %d times for unreachable video", strat.attempts)
	}
}

func TestAcquireCheckErrorIsTransient(t *testing.T) {
	svc := NewService(&fakeChecker{err: errors.New("dial tcp: timeout")}, nil, Config{})

	_, err := svc.Acquire(context.Background(), "dQw4w9WgXcQ", "")
	var acqErr *AcquisitionError
	if !errors.As(err, &acqErr) {
		t.Fatalf("got %T, want *AcquisitionError", err)
	}
	if acqErr.Kind != ErrTransientNetwork {
		t.Errorf("got kind %v, want %v", acqErr.Kind, ErrTransientNetwork)
	}
}

func TestAcquireAllStrategiesMiss(t *testing.T) {
	first := missStrategy(models.SourceStructuredAPI)
	second := &fakeStrategy{name: models.SourceOfficialAPI, outcome: models.TransientOutcome("connection reset")}
	svc := NewService(&fakeChecker{available: true}, []Strategy{first, second}, Config{})

	_, err := svc.Acquire(context.Background(), "dQw4w9WgXcQ", "")
	var acqErr *AcquisitionError
	if !errors.As(err, &acqErr) {
		t.Fatalf("got %T, want *AcquisitionError", err)
	}
	if acqErr.Kind != ErrNoCaptionsFound {
		t.Errorf("got kind %v, want %v", acqErr.Kind, ErrNoCaptionsFound)
	}
	if first.attempts != 1 || second.attempts != 1 {
		t.Errorf("attempt counts = %d, %d, want 1, 1", first.attempts, second.attempts)
	}
}

func TestAcquireTruncatesLongTranscripts(t *testing.T) {
	long := strings.Repeat("a", 25000)
	strat := successStrategy(models.SourceStructuredAPI, long)
	svc := NewService(&fakeChecker{available: true}, []Strategy{strat}, Config{MaxTranscriptChars: 10000})

	result, err := svc.Acquire(context.Background(), "dQw4w9WgXcQ", "")
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	want := 10000 + len(TruncationMarker)
	if len(result.Text) != want {
		t.Errorf("got length %d, want %d", len(result.Text), want)
	}
	if !strings.HasSuffix(result.Text, TruncationMarker) {
		t.Errorf("truncated text does not end with marker")
	}
}

func TestAcquireTruncationKeepsValidUTF8(t *testing.T) {
	// 6000 two-byte runes with an odd byte ceiling puts the cut mid-rune.
	long := strings.Repeat("é", 6000)
	strat := successStrategy(models.SourceStructuredAPI, long)
	svc := NewService(&fakeChecker{available: true}, []Strategy{strat}, Config{MaxTranscriptChars: 10001})

	result, err := svc.Acquire(context.Background(), "dQw4w9WgXcQ", "")
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	if !utf8.ValidString(result.Text) {
		t.Error("truncated transcript is not valid UTF-8")
	}
	if !strings.HasSuffix(result.Text, TruncationMarker) {
		t.Error("truncated text does not end with marker")
	}
	if got := len(result.Text) - len(TruncationMarker); got > 10001 {
		t.Errorf("kept %d bytes, want at most the ceiling", got)
	}
}

func TestAcquireShortTranscriptUntouched(t *testing.T) {
	strat := successStrategy(models.SourceStructuredAPI, "short transcript")
	svc := NewService(&fakeChecker{available: true}, []Strategy{strat}, Config{MaxTranscriptChars: 10000})

	result, err := svc.Acquire(context.Background(), "dQw4w9WgXcQ", "")
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	if result.Text != "short transcript" {
		t.Errorf("short transcript was modified: %q", result.Text)
	}
}
