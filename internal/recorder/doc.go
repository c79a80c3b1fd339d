// Package recorder is the HTTP client for the recorder backend's gRPC-Web
// style RPC surface and its audio download host.
//
// Requests are plain HTTPS POSTs with positional-array JSON bodies and a
// signed Authorization header; responses go through the wire package's
// positional decoders. The client is stateless: it is a pure function of the
// credential it was built with plus the method arguments, except for the
// pagination cursor that is local to one ListAllRecordings call.
//
// The client never retries. 401/403 responses surface as ErrAuthExpired so
// callers can re-run authentication explicitly; everything else maps to
// APIError or ParseError.
package recorder
