package captions

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// CheckAvailability performs a lightweight reachability check against the
// public watch page. It reports whether the video appears reachable and, when
// it does not, a human-readable diagnostic. A returned error means the check
// itself could not complete (network failure), which is distinct from the
// video being unavailable.
func (c *Client) CheckAvailability(ctx context.Context, videoID string) (bool, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.watchURL(videoID), nil)
	if err != nil {
		return false, "", err
	}
	req.Header.Set("User-Agent", browserUA)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, "", errors.Wrap(err, "availability check failed")
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Sprintf("failed to retrieve video, status code: %d", resp.StatusCode), nil
	}
	return true, "", nil
}
