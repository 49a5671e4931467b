// Package hydrate fills identity fields from the page-load query string.
//
// The hydrator runs twice per submission: once when the page is rendered and
// again immediately before the payload is built, so values tampered with in
// between are overwritten with the ones carried by the URL.
package hydrate

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-formrelay/pkg/model"
)

const (
	// UserIDParam is the query parameter holding the opaque user identifier.
	UserIDParam = "userId"
	// UserNameParam is the optional display-name query parameter.
	UserNameParam = "userName"
	// UnknownUser is written to the display field when neither parameter is
	// present.
	UnknownUser = "未知用戶"
)

// Identity captures the two identity parameters read from the query string.
type Identity struct {
	UserID   string `json:"userId,omitempty"`
	UserName string `json:"userName,omitempty"`
}

// FromQuery reads the identity parameters. Missing values stay empty.
func FromQuery(query url.Values) Identity {
	if query == nil {
		return Identity{}
	}
	return Identity{
		UserID:   strings.TrimSpace(query.Get(UserIDParam)),
		UserName: strings.TrimSpace(query.Get(UserNameParam)),
	}
}

// Query encodes the identity back into query parameters, skipping empty
// values. Handlers use it to keep the identity on the form action URL.
func (i Identity) Query() url.Values {
	out := url.Values{}
	if i.UserID != "" {
		out.Set(UserIDParam, i.UserID)
	}
	if i.UserName != "" {
		out.Set(UserNameParam, i.UserName)
	}
	return out
}

// DisplayName resolves the read-only display value: name, then id, then the
// unknown-user literal.
func (i Identity) DisplayName() string {
	switch {
	case i.UserName != "":
		return i.UserName
	case i.UserID != "":
		return i.UserID
	default:
		return UnknownUser
	}
}

// Hydrator writes an Identity into a form's identity fields. DisplayField may
// be empty for forms that only carry the id.
type Hydrator struct {
	IDField      string
	DisplayField string
}

// Apply returns a copy of state with the identity fields written. The id
// field always takes the URL value, empty when the URL carries none, so a
// value supplied any other way never survives.
func (h Hydrator) Apply(state model.FormState, identity Identity) model.FormState {
	if h.IDField != "" {
		state = state.With(h.IDField, identity.UserID)
	}
	if h.DisplayField != "" {
		state = state.With(h.DisplayField, identity.DisplayName())
	}
	return state
}

// Fields returns the identity values keyed by field name, the shape the
// renderers emit as hidden or read-only inputs.
func (h Hydrator) Fields(identity Identity) map[string]string {
	out := make(map[string]string, 2)
	if h.IDField != "" {
		out[h.IDField] = identity.UserID
	}
	if h.DisplayField != "" {
		out[h.DisplayField] = identity.DisplayName()
	}
	return out
}
