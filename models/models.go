package models

// TrackOrigin distinguishes manually-authored caption tracks from
// auto-generated ones.
type TrackOrigin string

const (
	OriginManual    TrackOrigin = "manual"
	OriginGenerated TrackOrigin = "generated"
)

func (o TrackOrigin) Generated() bool { return o == OriginGenerated }

// LanguageOption describes one transcript language available for a video.
type LanguageOption struct {
	Code        string      `json:"code"`
	DisplayName string      `json:"name"`
	Origin      TrackOrigin `json:"type"`
}

// TranscriptSegment is the atomic unit returned by a caption backend before
// normalization. Start and Duration are in seconds.
type TranscriptSegment struct {
	Text     string
	Start    float64
	Duration float64
}

// SourceStrategy tags which acquisition strategy produced a transcript.
type SourceStrategy string

const (
	SourceStructuredAPI SourceStrategy = "structured_api"
	SourceOfficialAPI   SourceStrategy = "official_api"
	SourceClientLibrary SourceStrategy = "client_library"
	SourcePageScrape    SourceStrategy = "page_scrape"
)

// TranscriptResult is the normalized output of a successful acquisition.
// Text is never empty on success.
type TranscriptResult struct {
	Text         string         `json:"text"`
	Source       SourceStrategy `json:"source"`
	LanguageCode string         `json:"language,omitempty"`
}

// OutcomeStatus is the tag the pipeline branches on. Strategies report
// everything through it rather than through error types.
type OutcomeStatus int

const (
	StatusSuccess OutcomeStatus = iota
	StatusUnavailable
	StatusTransient
)

// Outcome is the result of one strategy attempt.
type Outcome struct {
	Status OutcomeStatus
	Result *TranscriptResult
	Reason string
}

func SuccessOutcome(result *TranscriptResult) Outcome {
	return Outcome{Status: StatusSuccess, Result: result}
}

func UnavailableOutcome(reason string) Outcome {
	return Outcome{Status: StatusUnavailable, Reason: reason}
}

func TransientOutcome(reason string) Outcome {
	return Outcome{Status: StatusTransient, Reason: reason}
}
