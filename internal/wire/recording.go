package wire

import (
	"time"
)

// Recording layout indices observed in GetRecordingList responses. Positions
// not listed here have unknown semantics and are not decoded.
const (
	recIdxInternalID  = 0
	recIdxTitle       = 1
	recIdxCreated     = 2
	recIdxDuration    = 3
	recIdxLatitude    = 4
	recIdxLongitude   = 5
	recIdxLocation    = 6
	recIdxAudioFormat = 7
	recIdxCloudID     = 11
	recIdxShareID     = 13
)

// Recording is one cloud-synced voice capture. Instances are produced only by
// DecodeRecording; they are never constructed by hand.
type Recording struct {
	InternalID string
	Title      string
	// CreatedAt is the zero time when the backend omitted the creation
	// timestamp.
	CreatedAt time.Time
	// Duration is zero when unknown.
	Duration  time.Duration
	Latitude  *float64
	Longitude *float64
	Location  string
	CloudID   string
	// ShareID is the stable public identifier when present.
	ShareID string
	// AudioFormat carries the raw positional payload at the audio-format slot.
	// Its internal layout is undocumented, so it is passed through untouched.
	AudioFormat any
}

// Identifier returns the preferred address for this recording: ShareID when
// present, then CloudID, then InternalID. Every command that addresses a
// recording relies on this order.
func (r Recording) Identifier() string {
	if r.ShareID != "" {
		return r.ShareID
	}
	if r.CloudID != "" {
		return r.CloudID
	}
	return r.InternalID
}

// DecodeRecording decodes a single positional recording array. It returns nil
// when the array does not carry a usable record; callers drop nil results and
// continue, so a malformed record never aborts a batch.
func DecodeRecording(arr []any) *Recording {
	id, ok := stringAt(arr, recIdxInternalID)
	if !ok || id == "" {
		return nil
	}

	rec := &Recording{InternalID: id}
	rec.Title, _ = stringAt(arr, recIdxTitle)
	if seconds, ok := secondsAt(arr, recIdxCreated); ok {
		rec.CreatedAt = time.Unix(seconds, 0).UTC()
	}
	if seconds, ok := secondsAt(arr, recIdxDuration); ok {
		rec.Duration = time.Duration(seconds) * time.Second
	}
	if lat, ok := numberAt(arr, recIdxLatitude); ok {
		rec.Latitude = &lat
	}
	if lon, ok := numberAt(arr, recIdxLongitude); ok {
		rec.Longitude = &lon
	}
	rec.Location, _ = stringAt(arr, recIdxLocation)
	if v, ok := index(arr, recIdxAudioFormat); ok {
		rec.AudioFormat = v
	}
	rec.CloudID, _ = stringAt(arr, recIdxCloudID)
	rec.ShareID, _ = stringAt(arr, recIdxShareID)
	return rec
}

// DecodeRecordingList decodes a GetRecordingList-shaped response. The payload
// may be a flat array of recording arrays, a single recording array, or an
// array of pages each holding recording arrays: a sub-array whose first
// element is a string is one recording, while a sub-array whose first element
// is itself an array is a page and is recursed one level. Absent or malformed
// input yields an empty result.
func DecodeRecordingList(raw any) []Recording {
	arr, ok := asArray(raw)
	if !ok || len(arr) == 0 {
		return nil
	}

	if _, ok := asString(arr[0]); ok {
		// Bare single record.
		if rec := DecodeRecording(arr); rec != nil {
			return []Recording{*rec}
		}
		return nil
	}

	var out []Recording
	for _, el := range arr {
		sub, ok := asArray(el)
		if !ok || len(sub) == 0 {
			continue
		}
		if _, ok := asString(sub[0]); ok {
			if rec := DecodeRecording(sub); rec != nil {
				out = append(out, *rec)
			}
			continue
		}
		if _, ok := asArray(sub[0]); ok {
			for _, inner := range sub {
				entry, ok := asArray(inner)
				if !ok {
					continue
				}
				if rec := DecodeRecording(entry); rec != nil {
					out = append(out, *rec)
				}
			}
		}
	}
	return out
}
