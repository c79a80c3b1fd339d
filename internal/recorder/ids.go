package recorder

import "regexp"

// Recording identifiers passed as command arguments are always UUID formatted.
var recordingIDPattern = regexp.MustCompile(`^(?i)[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ValidRecordingID reports whether s is a well-formed recording identifier.
func ValidRecordingID(s string) bool {
	return recordingIDPattern.MatchString(s)
}
