package transcript

import (
	"io"
	"strings"

	"github.com/asticode/go-astisub"
	"github.com/pkg/errors"
)

// vttToText converts a WebVTT caption stream to normalized plain text:
// timestamps and cue metadata dropped, cue text joined with single spaces.
func vttToText(r io.Reader) (string, error) {
	subs, err := astisub.ReadFromWebVTT(r)
	if err != nil {
		return "", errors.Wrap(err, "read WebVTT")
	}

	var sb strings.Builder
	for _, item := range subs.Items {
		for _, line := range item.Lines {
			for _, lineItem := range line.Items {
				text := strings.Join(strings.Fields(lineItem.Text), " ")
				if text == "" {
					continue
				}
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
	}
	return sb.String(), nil
}
