package wire_test

import (
	"encoding/json"
	"testing"
	"time"

	"recorderctl/internal/wire"
)

func mustParse(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return v
}

const sampleRecording = `["id1","Meeting A",["1700000000","0"],["120","0"],null,null,null,null,null,null,null,"cloud1",null,"share1"]`

func TestDecodeRecordingListSample(t *testing.T) {
	raw := mustParse(t, "[["+sampleRecording+"]]")

	recs := wire.DecodeRecordingList(raw)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recording, got %d", len(recs))
	}

	rec := recs[0]
	if rec.InternalID != "id1" {
		t.Errorf("internal id: got %q", rec.InternalID)
	}
	if rec.Title != "Meeting A" {
		t.Errorf("title: got %q", rec.Title)
	}
	if want := time.Unix(1700000000, 0).UTC(); !rec.CreatedAt.Equal(want) {
		t.Errorf("created at: got %v want %v", rec.CreatedAt, want)
	}
	if rec.Duration != 120*time.Second {
		t.Errorf("duration: got %v", rec.Duration)
	}
	if rec.CloudID != "cloud1" {
		t.Errorf("cloud id: got %q", rec.CloudID)
	}
	if rec.ShareID != "share1" {
		t.Errorf("share id: got %q", rec.ShareID)
	}
}

func TestDecodeRecordingMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty array", `[]`},
		{"numeric id", `[42,"Title"]`},
		{"null id", `[null,"Title"]`},
		{"object id", `[{"a":1},"Title"]`},
		{"empty id", `["","Title"]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			arr, ok := mustParse(t, tc.raw).([]any)
			if !ok {
				t.Fatalf("fixture is not an array")
			}
			if rec := wire.DecodeRecording(arr); rec != nil {
				t.Fatalf("expected nil, got %#v", rec)
			}
		})
	}
}

func TestDecodeRecordingToleratesBadFields(t *testing.T) {
	// Wrong types at optional positions degrade to absent fields, not a nil
	// record.
	arr := mustParse(t, `["id2",17,"not-a-pair",["bad"],null,null,3]`).([]any)
	rec := wire.DecodeRecording(arr)
	if rec == nil {
		t.Fatal("expected record")
	}
	if rec.Title != "" {
		t.Errorf("title: got %q", rec.Title)
	}
	if !rec.CreatedAt.IsZero() {
		t.Errorf("created at should be zero, got %v", rec.CreatedAt)
	}
	if rec.Duration != 0 {
		t.Errorf("duration should be zero, got %v", rec.Duration)
	}
	if rec.Location != "" {
		t.Errorf("location: got %q", rec.Location)
	}
}

func TestDecodeRecordingListShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{"nil input", `null`, 0},
		{"empty array", `[]`, 0},
		{"scalar", `"oops"`, 0},
		{"single bare record", sampleRecording, 1},
		{"flat list", `[` + sampleRecording + `,` + sampleRecording + `]`, 2},
		{"paged", `[[` + sampleRecording + `],[` + sampleRecording + `]]`, 2},
		{"malformed entries skipped", `[` + sampleRecording + `,[null],17]`, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recs := wire.DecodeRecordingList(mustParse(t, tc.raw))
			if len(recs) != tc.want {
				t.Fatalf("got %d recordings, want %d", len(recs), tc.want)
			}
		})
	}
}

func TestDecodeRecordingListFlatteningInvariance(t *testing.T) {
	page := `[` + sampleRecording + `,` + sampleRecording + `]`

	direct := wire.DecodeRecordingList(mustParse(t, page))
	wrapped := wire.DecodeRecordingList(mustParse(t, "["+page+"]"))

	if len(direct) != len(wrapped) {
		t.Fatalf("length mismatch: direct %d wrapped %d", len(direct), len(wrapped))
	}
	for i := range direct {
		if direct[i].InternalID != wrapped[i].InternalID || direct[i].Title != wrapped[i].Title {
			t.Fatalf("record %d differs: %#v vs %#v", i, direct[i], wrapped[i])
		}
	}
}

func TestRecordingIdentifierFallback(t *testing.T) {
	cases := []struct {
		name string
		rec  wire.Recording
		want string
	}{
		{"share id wins", wire.Recording{InternalID: "i", CloudID: "c", ShareID: "s"}, "s"},
		{"cloud id next", wire.Recording{InternalID: "i", CloudID: "c"}, "c"},
		{"internal id last", wire.Recording{InternalID: "i"}, "i"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rec.Identifier(); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}
