package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"recorderctl/internal/config"
	"recorderctl/internal/recorder"
	"recorderctl/internal/session"
)

// fakeBackend serves the recording list, transcripts, and audio binaries the
// way the production service shapes them.
type fakeBackend struct {
	recordings  []fakeRecording
	listCalls   int
	failIDs     map[string]int // transcript status override per recording
	audioFailID string
}

type fakeRecording struct {
	shareID string
	title   string
	created int64
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/GetRecordingList"):
			b.serveList(w)
		case strings.HasSuffix(r.URL.Path, "/GetTranscription"):
			b.serveTranscript(w, r)
		case strings.HasPrefix(r.URL.Path, "/download/playback/"):
			b.serveAudio(w, r)
		default:
			http.NotFound(w, r)
		}
	})
	return mux
}

func (b *fakeBackend) serveList(w http.ResponseWriter) {
	b.listCalls++
	if b.listCalls > 1 {
		fmt.Fprint(w, "[]")
		return
	}
	page := make([]any, 0, len(b.recordings))
	for _, rec := range b.recordings {
		entry := make([]any, 14)
		entry[0] = "internal-" + rec.shareID
		entry[1] = rec.title
		entry[2] = []any{fmt.Sprint(rec.created), "0"}
		entry[3] = []any{"60", "0"}
		entry[13] = rec.shareID
		page = append(page, entry)
	}
	_ = json.NewEncoder(w).Encode([]any{page})
}

func (b *fakeBackend) serveTranscript(w http.ResponseWriter, r *http.Request) {
	var body []any
	_ = json.NewDecoder(r.Body).Decode(&body)
	id, _ := body[0].(string)
	if status, ok := b.failIDs[id]; ok {
		w.WriteHeader(status)
		return
	}
	payload := []any{
		[]any{
			[]any{
				[]any{"hello", "Hello", 0, 400},
				[]any{"from", "from", 400, 700},
				[]any{id, id, 700, 1200},
			},
			0,
			"en-US",
		},
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func (b *fakeBackend) serveAudio(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/download/playback/")
	if id == b.audioFailID {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "audio/mp4")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+".m4a"))
	_, _ = w.Write([]byte("audio-bytes-" + id))
}

func newTestPuller(t *testing.T, backend *fakeBackend, opts ...PullerOption) (*Puller, *Catalog, string) {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	cfg := &config.Config{
		Recorder: config.Recorder{
			BaseURL:         server.URL,
			DownloadBaseURL: server.URL,
			Origin:          "https://recorder.google.com",
			APIKey:          "test-key",
			RequestTimeout:  5,
		},
	}
	cred := session.Credential{Secret: "sapisid-secret", CookieHeader: "SAPISID=sapisid-secret"}
	client, err := recorder.New(cfg, cred)
	if err != nil {
		t.Fatalf("recorder.New: %v", err)
	}

	downloadDir := t.TempDir()
	catalog := openTestCatalog(t)
	puller, err := NewPuller(client, catalog, downloadDir, opts...)
	if err != nil {
		t.Fatalf("NewPuller: %v", err)
	}
	return puller, catalog, downloadDir
}

func TestPullerRunArchivesNewRecordings(t *testing.T) {
	backend := &fakeBackend{recordings: []fakeRecording{
		{shareID: "share-1", title: "Standup", created: 1700000000},
		{shareID: "share-2", title: "Interview", created: 1699990000},
	}}
	puller, catalog, downloadDir := newTestPuller(t, backend)

	summary, err := puller.Run(context.Background(), recorder.ListOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Downloaded != 2 || summary.Skipped != 0 || summary.Failed != 0 {
		t.Errorf("summary = %+v, want 2 downloaded", summary)
	}
	if summary.RunID == "" {
		t.Error("run id not assigned")
	}

	entries, err := catalog.Entries(context.Background())
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("cataloged %d entries, want 2", len(entries))
	}
	for _, entry := range entries {
		if entry.RunID != summary.RunID {
			t.Errorf("entry %s has run id %q, want %q", entry.RecordingID, entry.RunID, summary.RunID)
		}
		if entry.TranscriptPath == "" || entry.AudioPath == "" {
			t.Errorf("entry %s missing paths: %+v", entry.RecordingID, entry)
		}
	}

	data, err := os.ReadFile(filepath.Join(downloadDir, "2023-11-14 Standup.txt"))
	if err != nil {
		t.Fatalf("read transcript: %v", err)
	}
	if got := string(data); got != "Hello from share-1\n" {
		t.Errorf("transcript = %q", got)
	}
	audio, err := os.ReadFile(filepath.Join(downloadDir, "share-1.m4a"))
	if err != nil {
		t.Fatalf("read audio: %v", err)
	}
	if got := string(audio); got != "audio-bytes-share-1" {
		t.Errorf("audio = %q", got)
	}
}

func TestPullerRunSkipsCataloged(t *testing.T) {
	backend := &fakeBackend{recordings: []fakeRecording{
		{shareID: "share-1", title: "Standup", created: 1700000000},
		{shareID: "share-2", title: "Interview", created: 1699990000},
	}}
	puller, catalog, _ := newTestPuller(t, backend)

	if err := catalog.Record(context.Background(), Entry{RecordingID: "share-1", RunID: "earlier"}); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}

	summary, err := puller.Run(context.Background(), recorder.ListOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Downloaded != 1 || summary.Skipped != 1 || summary.Failed != 0 {
		t.Errorf("summary = %+v, want 1 downloaded 1 skipped", summary)
	}
}

func TestPullerRunCountsPerItemFailures(t *testing.T) {
	backend := &fakeBackend{
		recordings: []fakeRecording{
			{shareID: "share-1", title: "Standup", created: 1700000000},
			{shareID: "share-2", title: "Interview", created: 1699990000},
		},
		failIDs: map[string]int{"share-1": http.StatusInternalServerError},
	}
	puller, _, _ := newTestPuller(t, backend)

	summary, err := puller.Run(context.Background(), recorder.ListOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Downloaded != 1 || summary.Failed != 1 {
		t.Errorf("summary = %+v, want 1 downloaded 1 failed", summary)
	}
}

func TestPullerRunAbortsOnExpiredSession(t *testing.T) {
	backend := &fakeBackend{
		recordings: []fakeRecording{
			{shareID: "share-1", title: "Standup", created: 1700000000},
			{shareID: "share-2", title: "Interview", created: 1699990000},
		},
		failIDs: map[string]int{"share-1": http.StatusUnauthorized},
	}
	puller, _, _ := newTestPuller(t, backend)

	summary, err := puller.Run(context.Background(), recorder.ListOptions{})
	if !errors.Is(err, recorder.ErrAuthExpired) {
		t.Fatalf("err = %v, want ErrAuthExpired", err)
	}
	if summary.Downloaded != 0 {
		t.Errorf("summary = %+v, want nothing downloaded", summary)
	}
}

func TestPullerRunWithoutAudio(t *testing.T) {
	backend := &fakeBackend{
		recordings:  []fakeRecording{{shareID: "share-1", title: "Standup", created: 1700000000}},
		audioFailID: "share-1",
	}
	puller, catalog, _ := newTestPuller(t, backend, WithAudio(false))

	summary, err := puller.Run(context.Background(), recorder.ListOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Downloaded != 1 {
		t.Errorf("summary = %+v, want 1 downloaded", summary)
	}
	entries, err := catalog.Entries(context.Background())
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if entries[0].AudioPath != "" {
		t.Errorf("audio path = %q, want empty", entries[0].AudioPath)
	}
}

func TestPullerRunRefusesConcurrentRun(t *testing.T) {
	backend := &fakeBackend{}
	puller, _, downloadDir := newTestPuller(t, backend)

	other := flock.New(filepath.Join(downloadDir, ".pull.lock"))
	locked, err := other.TryLock()
	if err != nil || !locked {
		t.Fatalf("seed lock: locked=%v err=%v", locked, err)
	}
	defer other.Unlock()

	if _, err := puller.Run(context.Background(), recorder.ListOptions{}); !errors.Is(err, ErrPullInProgress) {
		t.Fatalf("err = %v, want ErrPullInProgress", err)
	}
}
