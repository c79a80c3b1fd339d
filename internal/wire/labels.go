package wire

import "strconv"

// Label is a user-defined tag applied to recordings.
type Label struct {
	ID   string
	Name string
}

// DecodeLabels decodes a ListLabels-shaped response: flatten one level, keep
// only array-shaped entries, index 0 is the id and index 1 the name.
func DecodeLabels(raw any) []Label {
	arr, ok := asArray(raw)
	if !ok {
		return nil
	}

	flat := make([]any, 0, len(arr))
	for _, el := range arr {
		if sub, ok := asArray(el); ok {
			flat = append(flat, sub...)
		} else {
			flat = append(flat, el)
		}
	}

	var out []Label
	for _, el := range flat {
		entry, ok := asArray(el)
		if !ok || len(entry) == 0 {
			continue
		}
		label := Label{ID: textAt(entry, 0), Name: textAt(entry, 1)}
		if label.ID == "" {
			continue
		}
		out = append(out, label)
	}
	return out
}

// textAt renders the field at i as text, accepting either a string or a
// numeric id.
func textAt(arr []any, i int) string {
	if s, ok := stringAt(arr, i); ok {
		return s
	}
	if n, ok := numberAt(arr, i); ok {
		return strconv.FormatInt(int64(n), 10)
	}
	return ""
}
