package hydrate

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formrelay/pkg/model"
)

func TestHydrator_ApplyFallbacks(t *testing.T) {
	t.Parallel()

	h := Hydrator{IDField: "submitter_id", DisplayField: "submitter_name"}

	cases := []struct {
		name        string
		query       string
		wantID      string
		wantDisplay string
	}{
		{name: "id and name", query: "userId=U1&userName=Alice", wantID: "U1", wantDisplay: "Alice"},
		{name: "id only", query: "userId=U1", wantID: "U1", wantDisplay: "U1"},
		{name: "nothing", query: "", wantID: "", wantDisplay: UnknownUser},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			query, err := url.ParseQuery(tc.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}
			state := h.Apply(model.NewState(nil), FromQuery(query))

			if got := state.Get("submitter_id"); got != tc.wantID {
				t.Fatalf("id: want %q, got %q", tc.wantID, got)
			}
			if got := state.Get("submitter_name"); got != tc.wantDisplay {
				t.Fatalf("display: want %q, got %q", tc.wantDisplay, got)
			}
		})
	}
}

func TestHydrator_ApplyOverwritesTamperedValues(t *testing.T) {
	t.Parallel()

	h := Hydrator{IDField: "line_id"}
	state := model.StateFromMap(map[string]string{"line_id": "forged"})

	state = h.Apply(state, Identity{UserID: "U1"})
	if got := state.Get("line_id"); got != "U1" {
		t.Fatalf("expected hydrated id U1, got %q", got)
	}
}

func TestHydrator_ApplyIsIdempotent(t *testing.T) {
	t.Parallel()

	h := Hydrator{IDField: "submitter_id", DisplayField: "submitter_name"}
	identity := Identity{UserID: "U1", UserName: "Alice"}

	once := h.Apply(model.NewState(nil), identity)
	twice := h.Apply(once, identity)

	if diff := cmp.Diff(once.Encode(), twice.Encode()); diff != "" {
		t.Fatalf("second apply changed state (-once +twice):\n%s", diff)
	}
}

func TestIdentity_QueryRoundTrip(t *testing.T) {
	t.Parallel()

	identity := Identity{UserID: "U1", UserName: "Alice"}
	if diff := cmp.Diff(identity, FromQuery(identity.Query())); diff != "" {
		t.Fatalf("identity mismatch (-want +got):\n%s", diff)
	}
	if got := (Identity{}).Query().Encode(); got != "" {
		t.Fatalf("expected empty query, got %q", got)
	}
}

func TestHydrator_ApplyClearsIDWithoutQuery(t *testing.T) {
	t.Parallel()

	h := Hydrator{IDField: "line_id"}
	state := model.StateFromMap(map[string]string{"line_id": "FORGED"})

	state = h.Apply(state, FromQuery(url.Values{}))
	if got := state.Get("line_id"); got != "" {
		t.Fatalf("expected id cleared when the URL has no userId, got %q", got)
	}
}
