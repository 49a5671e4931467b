// Package webhook posts JSON payloads to a single external endpoint and turns
// every failure into a *TransportError.
//
// A client performs exactly one request per Post call. There is no retry and
// no backoff: a failed attempt is terminal and the caller decides whether the
// user should try again.
package webhook
