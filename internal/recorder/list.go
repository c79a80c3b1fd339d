package recorder

import (
	"context"
	"time"

	"recorderctl/internal/logging"
	"recorderctl/internal/wire"
)

const defaultPageSize = 50

// maxPages caps pagination so a server-side cursor bug can never spin the
// client forever.
const maxPages = 200

// ListOptions controls ListAllRecordings.
type ListOptions struct {
	// Limit stops pagination once this many recordings have accumulated.
	// Zero means unlimited.
	Limit int
	// Since cuts pagination at the first recording created strictly before
	// it. Results come newest-first, so everything after the cutoff is older.
	Since time.Time
	// PageSize defaults to 50.
	PageSize int
	// OnPage is invoked after each fetched page. A failing callback is logged
	// and ignored; it never aborts pagination.
	OnPage func(page int, recs []wire.Recording) error
}

// ListRecordingsPage fetches one page of recordings created before the cursor.
// A zero cursor means "now", yielding the newest page.
func (c *Client) ListRecordingsPage(ctx context.Context, pageSize int, before time.Time) ([]wire.Recording, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if before.IsZero() {
		before = c.now()
	}
	raw, err := c.call(ctx, "GetRecordingList", []any{[]any{before.Unix(), 0}, pageSize})
	if err != nil {
		return nil, err
	}
	return wire.DecodeRecordingList(raw), nil
}

// ListAllRecordings drives ListRecordingsPage with the last item's creation
// time as the next cursor. It stops on an empty page, when the limit is
// reached, at the first recording older than Since, when the cursor can no
// longer advance, or at the page safety cap.
func (c *Client) ListAllRecordings(ctx context.Context, opts ListOptions) ([]wire.Recording, error) {
	var out []wire.Recording
	cursor := time.Time{}

	for page := 0; page < maxPages; page++ {
		recs, err := c.ListRecordingsPage(ctx, opts.PageSize, cursor)
		if err != nil {
			return nil, err
		}
		if len(recs) == 0 {
			return out, nil
		}

		if opts.OnPage != nil {
			if err := opts.OnPage(page, recs); err != nil {
				c.logger.Debug("page callback failed", logging.Args(
					logging.Int("page", page),
					logging.Error(err),
				)...)
			}
		}

		for _, rec := range recs {
			if !opts.Since.IsZero() && !rec.CreatedAt.IsZero() && rec.CreatedAt.Before(opts.Since) {
				return out, nil
			}
			out = append(out, rec)
			if opts.Limit > 0 && len(out) >= opts.Limit {
				return out[:opts.Limit], nil
			}
		}

		last := recs[len(recs)-1]
		if last.CreatedAt.IsZero() {
			// Without a creation time the cursor cannot advance.
			c.logger.Warn("stopping pagination: last item has no creation time",
				logging.Args(logging.String("recording", last.Identifier()))...)
			return out, nil
		}
		cursor = last.CreatedAt
	}

	c.logger.Warn("pagination stopped at safety cap", logging.Args(logging.Int("pages", maxPages))...)
	return out, nil
}
