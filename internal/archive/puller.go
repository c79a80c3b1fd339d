package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"recorderctl/internal/auth"
	"recorderctl/internal/fileutil"
	"recorderctl/internal/logging"
	"recorderctl/internal/recorder"
	"recorderctl/internal/wire"
)

// ErrPullInProgress indicates another pull run holds the archive lock.
var ErrPullInProgress = errors.New("another pull is already running")

// Summary tallies the outcome of one pull run.
type Summary struct {
	RunID      string
	Downloaded int
	Skipped    int
	Failed     int
}

// Puller walks the remote recording list and mirrors new items to disk.
type Puller struct {
	client      *recorder.Client
	catalog     *Catalog
	logger      *slog.Logger
	downloadDir string
	lockPath    string
	withAudio   bool
	now         func() time.Time
}

// PullerOption customises Puller construction.
type PullerOption func(*Puller)

// WithAudio toggles audio download alongside transcripts.
func WithAudio(enabled bool) PullerOption {
	return func(p *Puller) {
		p.withAudio = enabled
	}
}

// WithPullLogger attaches a logger.
func WithPullLogger(logger *slog.Logger) PullerOption {
	return func(p *Puller) {
		if logger != nil {
			p.logger = logging.WithComponent(logger, "archive")
		}
	}
}

// WithPullClock overrides the wall clock (used by tests).
func WithPullClock(now func() time.Time) PullerOption {
	return func(p *Puller) {
		if now != nil {
			p.now = now
		}
	}
}

// NewPuller builds a puller writing under downloadDir.
func NewPuller(client *recorder.Client, catalog *Catalog, downloadDir string, opts ...PullerOption) (*Puller, error) {
	if client == nil {
		return nil, errors.New("recorder client is nil")
	}
	if catalog == nil {
		return nil, errors.New("catalog is nil")
	}
	if downloadDir == "" {
		return nil, errors.New("download directory is empty")
	}

	puller := &Puller{
		client:      client,
		catalog:     catalog,
		logger:      logging.NewNop(),
		downloadDir: downloadDir,
		lockPath:    filepath.Join(downloadDir, ".pull.lock"),
		withAudio:   true,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(puller)
	}
	return puller, nil
}

// Run lists every remote recording and archives the ones the catalog has not
// seen. Authentication failures abort the run; per-item API or decode
// failures are counted and skipped so one bad recording cannot stall the
// mirror.
func (p *Puller) Run(ctx context.Context, listOpts recorder.ListOptions) (Summary, error) {
	if err := os.MkdirAll(p.downloadDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create download directory: %w", err)
	}

	lock := flock.New(p.lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire pull lock: %w", err)
	}
	if !locked {
		return Summary{}, ErrPullInProgress
	}
	defer func() { _ = lock.Unlock() }()

	summary := Summary{RunID: uuid.NewString()}
	p.logger.Info("pull started", logging.Args(logging.String("run_id", summary.RunID))...)

	recordings, err := p.client.ListAllRecordings(ctx, listOpts)
	if err != nil {
		return summary, fmt.Errorf("list recordings: %w", err)
	}

	for _, recording := range recordings {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		outcome, err := p.pullOne(ctx, recording, summary.RunID)
		if err != nil {
			if errors.Is(err, recorder.ErrAuthExpired) || errors.Is(err, auth.ErrLoginTimeout) || ctx.Err() != nil {
				return summary, err
			}
			summary.Failed++
			p.logger.Warn("recording failed", logging.Args(
				logging.String("id", recording.Identifier()),
				logging.Error(err),
			)...)
			continue
		}
		switch outcome {
		case pullDownloaded:
			summary.Downloaded++
		case pullSkipped:
			summary.Skipped++
		}
	}

	p.logger.Info("pull finished", logging.Args(
		logging.String("run_id", summary.RunID),
		logging.Int("downloaded", summary.Downloaded),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
	)...)
	return summary, nil
}

type pullOutcome int

const (
	pullDownloaded pullOutcome = iota
	pullSkipped
)

func (p *Puller) pullOne(ctx context.Context, recording wire.Recording, runID string) (pullOutcome, error) {
	id := recording.Identifier()
	if id == "" {
		return 0, errors.New("recording has no usable identifier")
	}

	seen, err := p.catalog.Seen(ctx, id)
	if err != nil {
		return 0, err
	}
	if seen {
		return pullSkipped, nil
	}

	base := p.baseName(recording)
	entry := Entry{
		RecordingID: id,
		Title:       recording.Title,
		RunID:       runID,
		PulledAt:    p.now().UTC(),
	}

	transcript, err := p.client.GetTranscript(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("fetch transcript: %w", err)
	}
	if text := transcript.FullText(); text != "" {
		path := filepath.Join(p.downloadDir, base+".txt")
		if err := fileutil.WriteFileAtomic(path, []byte(text+"\n"), 0o644); err != nil {
			return 0, fmt.Errorf("write transcript: %w", err)
		}
		entry.TranscriptPath = path
	}

	if p.withAudio {
		payload, err := p.client.DownloadAudio(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("download audio: %w", err)
		}
		name := payload.Filename
		if name == "" {
			name = base + ".m4a"
		}
		path := filepath.Join(p.downloadDir, fileutil.SanitizeName(name))
		if err := fileutil.WriteFileAtomic(path, payload.Bytes, 0o644); err != nil {
			return 0, fmt.Errorf("write audio: %w", err)
		}
		entry.AudioPath = path
	}

	if err := p.catalog.Record(ctx, entry); err != nil {
		return 0, err
	}
	return pullDownloaded, nil
}

// baseName derives a stable on-disk name from the recording date and title.
func (p *Puller) baseName(recording wire.Recording) string {
	title := recording.Title
	if title == "" {
		title = recording.Identifier()
	}
	name := fileutil.SanitizeName(title)
	if !recording.CreatedAt.IsZero() {
		name = recording.CreatedAt.UTC().Format("2006-01-02") + " " + name
	}
	return name
}
