package captions

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/ytdigest/ytdigest/models"
)

// timedText is the simple timed-text XML document served at a caption
// track's base URL: <transcript><text start="0.0" dur="1.2">...</text>...
type timedText struct {
	Lines []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Text  string  `xml:",chardata"`
}

// FetchTimedText downloads and parses a caption document, returning its
// segments with per-segment whitespace stripped and entities unescaped.
func (c *Client) FetchTimedText(ctx context.Context, baseURL string) ([]models.TranscriptSegment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUA)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch timed text")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timed text returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCaptionsBytes))
	if err != nil {
		return nil, err
	}
	return parseTimedText(body)
}

func parseTimedText(body []byte) ([]models.TranscriptSegment, error) {
	var doc timedText
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, errors.Wrap(err, "parse timed text XML")
	}

	segments := make([]models.TranscriptSegment, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		text := strings.TrimSpace(html.UnescapeString(line.Text))
		if text == "" {
			continue
		}
		segments = append(segments, models.TranscriptSegment{
			Text:     text,
			Start:    line.Start,
			Duration: line.Dur,
		})
	}
	return segments, nil
}

// JoinSegments concatenates segment text into the normalized transcript
// form: single spaces between segments, no leading or trailing whitespace.
func JoinSegments(segments []models.TranscriptSegment) string {
	var sb strings.Builder
	for _, seg := range segments {
		text := strings.Join(strings.Fields(seg.Text), " ")
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}
	return sb.String()
}
