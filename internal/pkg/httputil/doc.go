// Package httputil provides the shared JSON response envelope and request
// helpers for handlers.
//
// Every handler should use these helpers instead of writing raw
// http.ResponseWriter calls, so all endpoints agree on the envelope:
// status "success" for 2xx, "fail" for 4xx, "error" for 5xx.
package httputil
