// Package wire decodes the recorder backend's positional array protocol into
// typed domain records.
//
// The backend serializes protobuf messages as nested JSON arrays with no field
// names or type tags: field identity is purely positional, numbers sometimes
// arrive as strings, and the same RPC can answer with a single record or a page
// of records. Every decoder here is therefore built from fallible accessors
// that report "field absent" instead of failing, so one malformed field never
// invalidates a whole record and one malformed record never aborts a batch.
//
// The positional layouts were inferred from observed responses; indices not
// decoded here are carried as opaque values rather than given meaning.
package wire
