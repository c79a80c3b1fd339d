package recorder_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recorderctl/internal/recorder"
	"recorderctl/internal/wire"
)

// recordingJSON renders a minimal positional recording array.
func recordingJSON(id string, createdUnix int64) string {
	return fmt.Sprintf(`["%s","Rec %s",["%d","0"],["60","0"]]`, id, id, createdUnix)
}

// pagedServer serves GetRecordingList pages keyed by the request cursor.
// Recordings are handed out newest-first, pageSize at a time.
func pagedServer(t *testing.T, createdTimes []int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		cursorPair, ok := body[0].([]any)
		if !ok || len(cursorPair) == 0 {
			t.Errorf("missing cursor pair in %v", body)
			http.Error(w, "bad cursor", http.StatusBadRequest)
			return
		}
		cursor := int64(cursorPair[0].(float64))
		pageSize := int(body[1].(float64))

		page := "["
		count := 0
		for i, created := range createdTimes {
			if created >= cursor || count >= pageSize {
				continue
			}
			if count > 0 {
				page += ","
			}
			page += recordingJSON(fmt.Sprintf("id%d", i), created)
			count++
		}
		page += "]"
		_, _ = fmt.Fprintf(w, "[%s]", page)
	}))
}

func TestListAllRecordingsPaginates(t *testing.T) {
	base := int64(1700000000)
	// Six recordings, strictly decreasing creation times.
	times := []int64{base, base - 100, base - 200, base - 300, base - 400, base - 500}
	server := pagedServer(t, times)
	t.Cleanup(server.Close)

	var pages int
	client := newTestClient(t, server, recorder.WithClock(func() time.Time {
		return time.Unix(base+1000, 0)
	}))
	recs, err := client.ListAllRecordings(context.Background(), recorder.ListOptions{
		PageSize: 2,
		OnPage: func(page int, recs []wire.Recording) error {
			pages++
			return nil
		},
	})
	if err != nil {
		t.Fatalf("ListAllRecordings: %v", err)
	}
	if len(recs) != len(times) {
		t.Fatalf("got %d recordings, want %d", len(recs), len(times))
	}
	// 3 full pages plus the empty terminator.
	if pages != 3 {
		t.Fatalf("got %d pages, want 3", pages)
	}
	for i := 1; i < len(recs); i++ {
		if !recs[i].CreatedAt.Before(recs[i-1].CreatedAt) {
			t.Fatalf("recordings not newest-first at %d", i)
		}
	}
}

func TestListAllRecordingsLimit(t *testing.T) {
	base := int64(1700000000)
	times := []int64{base, base - 100, base - 200, base - 300}
	server := pagedServer(t, times)
	t.Cleanup(server.Close)

	client := newTestClient(t, server, recorder.WithClock(func() time.Time {
		return time.Unix(base+1000, 0)
	}))
	recs, err := client.ListAllRecordings(context.Background(), recorder.ListOptions{
		Limit:    3,
		PageSize: 2,
	})
	if err != nil {
		t.Fatalf("ListAllRecordings: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d recordings, want 3", len(recs))
	}
}

func TestListAllRecordingsSinceCutoff(t *testing.T) {
	base := int64(1700000000)
	times := []int64{base, base - 100, base - 200, base - 300, base - 400}
	server := pagedServer(t, times)
	t.Cleanup(server.Close)

	var fetched int
	client := newTestClient(t, server, recorder.WithClock(func() time.Time {
		return time.Unix(base+1000, 0)
	}))
	since := time.Unix(base-200, 0)
	recs, err := client.ListAllRecordings(context.Background(), recorder.ListOptions{
		PageSize: 2,
		Since:    since,
		OnPage: func(page int, recs []wire.Recording) error {
			fetched++
			return nil
		},
	})
	if err != nil {
		t.Fatalf("ListAllRecordings: %v", err)
	}
	// Exactly the prefix with CreatedAt >= since.
	if len(recs) != 3 {
		t.Fatalf("got %d recordings, want 3", len(recs))
	}
	for _, rec := range recs {
		if rec.CreatedAt.Before(since) {
			t.Fatalf("recording %s older than cutoff", rec.InternalID)
		}
	}
	// The cutoff fires inside page 2; pages 3+ are never fetched.
	if fetched != 2 {
		t.Fatalf("fetched %d pages, want 2", fetched)
	}
}

func TestListAllRecordingsCallbackFailureIgnored(t *testing.T) {
	base := int64(1700000000)
	server := pagedServer(t, []int64{base, base - 100})
	t.Cleanup(server.Close)

	client := newTestClient(t, server, recorder.WithClock(func() time.Time {
		return time.Unix(base+1000, 0)
	}))
	recs, err := client.ListAllRecordings(context.Background(), recorder.ListOptions{
		OnPage: func(page int, recs []wire.Recording) error {
			return fmt.Errorf("callback boom")
		},
	})
	if err != nil {
		t.Fatalf("callback failure aborted pagination: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d recordings, want 2", len(recs))
	}
}

func TestListAllRecordingsCursorStall(t *testing.T) {
	// Items without creation times would repeat the same cursor forever;
	// pagination must stop after the first page instead.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[[["id1","No timestamp"]]]`))
	}))
	t.Cleanup(server.Close)

	recs, err := newTestClient(t, server).ListAllRecordings(context.Background(), recorder.ListOptions{})
	if err != nil {
		t.Fatalf("ListAllRecordings: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d recordings, want 1", len(recs))
	}
}

func TestListRecordingsPageDefaultCursorIsNow(t *testing.T) {
	base := int64(1700000000)
	var gotCursor int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []any
		_ = json.NewDecoder(r.Body).Decode(&body)
		pair := body[0].([]any)
		gotCursor = int64(pair[0].(float64))
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server, recorder.WithClock(func() time.Time {
		return time.Unix(base, 0)
	}))
	if _, err := client.ListRecordingsPage(context.Background(), 10, time.Time{}); err != nil {
		t.Fatalf("ListRecordingsPage: %v", err)
	}
	if gotCursor != base {
		t.Fatalf("cursor: got %d want %d", gotCursor, base)
	}
}
