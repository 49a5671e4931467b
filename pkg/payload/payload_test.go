package payload

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formrelay/pkg/model"
	"github.com/goliatone/go-formrelay/pkg/specs"
	"github.com/goliatone/go-formrelay/pkg/testsupport"
)

var designFields = []string{
	"project_name", "type", "specs", "customSpecs", "digitalSpecs[]",
	"colorDraftDate", "printDate", "requirements", "submitter_id", "submitter_name", "timestamp",
}

func TestTimestamp_AlwaysUTCPlus8(t *testing.T) {
	t.Parallel()

	zones := []*time.Location{
		time.UTC,
		time.FixedZone("PST", -8*3600),
		time.FixedZone("IST", 5*3600+1800),
	}
	instant := time.Date(2026, 10, 17, 1, 2, 3, 0, time.UTC)
	for _, loc := range zones {
		got := Timestamp(instant.In(loc))
		if got != "2026-10-17T09:02:03+08:00" {
			t.Fatalf("zone %s: unexpected timestamp %q", loc, got)
		}
		if !strings.HasSuffix(got, "+08:00") {
			t.Fatalf("zone %s: missing +08:00 suffix in %q", loc, got)
		}
	}
}

func TestTomorrow(t *testing.T) {
	t.Parallel()

	// 17:00 UTC is already the next day in UTC+8.
	got := Tomorrow(time.Date(2026, 10, 17, 17, 0, 0, 0, time.UTC))
	if got.Format("2006-01-02") != "2026-10-19" {
		t.Fatalf("unexpected tomorrow %s", got)
	}
}

func TestBuildDesign_DigitalJoinsSelections(t *testing.T) {
	t.Parallel()

	state := model.NewState(url.Values{
		"project_name":   {"Launch"},
		"type":           {specs.TypeDigital},
		"specs":          {""},
		"digitalSpecs[]": {"800x600px", "1080x1920px"},
		"submitter_name": {"Alice"},
		"submitter_id":   {"U1"},
		"unexpected":     {"dropped"},
	})

	got := BuildDesign(state, designFields, "2026-10-17T09:00:00+08:00")
	want := Design{
		"project_name":   "Launch",
		"type":           specs.TypeDigital,
		"specs":          "800x600px, 1080x1920px",
		"submitter_name": "Alice",
		"submitter_id":   "U1",
		"timestamp":      "2026-10-17T09:00:00+08:00",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDesign_DigitalNoneUsesSentinel(t *testing.T) {
	t.Parallel()

	state := model.StateFromMap(map[string]string{"type": specs.TypeDigital})
	if got := BuildDesign(state, designFields, "ts").Get("specs"); got != specs.NoDigitalSelected {
		t.Fatalf("expected sentinel, got %q", got)
	}
}

func TestBuildDesign_CustomBlankUsesSentinel(t *testing.T) {
	t.Parallel()

	state := model.StateFromMap(map[string]string{
		"type":        specs.TypePeriodical,
		"specs":       specs.CustomValue,
		"customSpecs": "",
	})
	got := BuildDesign(state, designFields, "ts")
	if got.Get("specs") != specs.CustomNotFilled {
		t.Fatalf("expected custom sentinel, got %q", got.Get("specs"))
	}
	if _, ok := got["customSpecs"]; ok {
		t.Fatalf("customSpecs must not be forwarded as its own key")
	}
}

func TestBuildDesign_CopiesFreeTextVerbatim(t *testing.T) {
	t.Parallel()

	state := model.StateFromMap(map[string]string{
		"type":         specs.TypeOneTime,
		"specs":        specs.CustomValue,
		"customSpecs":  "<b>30x40cm</b>",
		"project_name": "R&amp;D",
		"requirements": "use <br> after title",
	})
	got := BuildDesign(state, designFields, "ts")

	want := map[string]string{
		"specs":        "<b>30x40cm</b>",
		"project_name": "R&amp;D",
		"requirements": "use <br> after title",
	}
	for key, value := range want {
		if got.Get(key) != value {
			t.Fatalf("%s: want %q, got %q", key, value, got.Get(key))
		}
	}
}

func TestBuildRegistration_CopiesFreeTextVerbatim(t *testing.T) {
	t.Parallel()

	got := BuildRegistration(model.StateFromMap(map[string]string{
		"name":         "王<br>",
		"english_name": "R&amp;D",
		"department":   "A & B",
	}), "ts")
	if got.Name != "王<br>" || got.EnglishName != "R&amp;D" || got.Department != "A & B" {
		t.Fatalf("registration text rewritten: %+v", got)
	}
}

func TestBuildRegistration_ExactKeys(t *testing.T) {
	t.Parallel()

	state := model.StateFromMap(map[string]string{
		"line_id":      "U1",
		"name":         "王小明",
		"english_name": "Ming",
		"department":   "IT",
		"email_prefix": "ming",
		"mobile":       "0912345678",
		"extension":    "#123",
	})
	reg := BuildRegistration(state, "2026-10-17T09:00:00+08:00")

	raw, err := json.Marshal(reg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]string{
		"line_id":      "U1",
		"name":         "王小明",
		"english_name": "Ming",
		"department":   "IT",
		"email":        "ming@bwnet.com.tw",
		"mobile":       "0912345678",
		"extension":    "#123",
		"timestamp":    "2026-10-17T09:00:00+08:00",
	}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemas_Check(t *testing.T) {
	t.Parallel()

	schemas, err := DefaultSchemas()
	if err != nil {
		t.Fatalf("load schemas: %v", err)
	}

	good := Registration{
		LineID: "U1", Name: "王小明", EnglishName: "Ming", Department: "IT",
		Email: "ming@bwnet.com.tw", Mobile: "0912345678", Extension: "#123",
		Timestamp: "2026-10-17T09:00:00+08:00",
	}
	if err := schemas.Check(RegistrationSchema, good); err != nil {
		t.Fatalf("expected valid registration, got %v", err)
	}

	bad := good
	bad.Timestamp = "2026-10-17T01:00:00Z"
	err = schemas.Check(RegistrationSchema, bad)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) || schemaErr.Schema != RegistrationSchema {
		t.Fatalf("expected SchemaError, got %v", err)
	}

	design := Design{
		"project_name": "Launch", "type": "海報", "specs": "",
		"submitter_name": "Alice", "timestamp": "2026-10-17T09:00:00+08:00",
	}
	if err := schemas.Check(DesignSchema, design); err != nil {
		t.Fatalf("expected valid design payload, got %v", err)
	}
	delete(design, "project_name")
	if err := schemas.Check(DesignSchema, design); err == nil {
		t.Fatalf("expected missing project_name to fail")
	}

	if err := schemas.Check("Nope", design); err == nil {
		t.Fatalf("expected unknown schema error")
	}
}

func TestLoadSchemas_RejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := LoadSchemas(context.Background(), []byte("{not yaml")); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestGolden_DesignPeriodicalCustom(t *testing.T) {
	t.Parallel()

	now := testsupport.FixedClock(time.Date(2026, 10, 17, 2, 0, 0, 0, time.UTC))
	state := model.NewState(url.Values{
		"project_name":   {"Quarterly"},
		"type":           {specs.TypePeriodical},
		"specs":          {specs.CustomValue},
		"customSpecs":    {"30x40cm"},
		"colorDraftDate": {"2026-10-20"},
		"printDate":      {"2026-10-25"},
		"requirements":   {"Two colour print"},
		"submitter_id":   {"U1"},
		"submitter_name": {"未知用戶"},
	})

	got := BuildDesign(state, designFields, Timestamp(now()))
	if diff := testsupport.CompareJSONGolden(t, "testdata/design_periodical_custom.golden.json", got); diff != "" {
		t.Fatalf("design golden mismatch (-want +got):\n%s", diff)
	}
}

func TestGolden_Registration(t *testing.T) {
	t.Parallel()

	now := testsupport.FixedClock(time.Date(2026, 10, 17, 2, 0, 0, 0, time.UTC))
	state := model.StateFromMap(map[string]string{
		"line_id":      "U1",
		"name":         "王小明",
		"english_name": "Ming",
		"department":   "IT",
		"email_prefix": "ming",
		"mobile":       "0912345678",
		"extension":    "#1234",
	})

	got := BuildRegistration(state, Timestamp(now()))
	if diff := testsupport.CompareJSONGolden(t, "testdata/registration.golden.json", got); diff != "" {
		t.Fatalf("registration golden mismatch (-want +got):\n%s", diff)
	}
}
