package specs

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formrelay/pkg/model"
)

func TestVariantFor(t *testing.T) {
	t.Parallel()

	cases := map[string]Kind{
		TypeDigital:    KindDigital,
		TypePeriodical: KindPeriodical,
		TypeOneTime:    KindPeriodical,
		"":             KindDefault,
		"海報":           KindDefault,
		" 數位 ":         KindDigital,
	}
	for input, want := range cases {
		if got := VariantFor(input).Kind(); got != want {
			t.Fatalf("VariantFor(%q): want %s, got %s", input, want, got)
		}
	}
}

func TestRender_IdempotentPerVariant(t *testing.T) {
	t.Parallel()

	ctrl := NewController()
	state := model.NewState(url.Values{"project_name": {"Launch"}})

	for _, typ := range []string{TypeDigital, TypePeriodical, TypeOneTime, ""} {
		firstState, first := ctrl.Switch(state, typ)
		_, second := ctrl.Switch(firstState, typ)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("type %q rendered differently on re-select (-first +second):\n%s", typ, diff)
		}
	}
}

func TestRender_DigitalCheckboxes(t *testing.T) {
	t.Parallel()

	state := model.NewState(url.Values{DigitalField: {"1080x1080px"}})
	set := Render(VariantFor(TypeDigital), state)

	if set.Mode != ModeCheckboxes {
		t.Fatalf("expected checkbox mode, got %s", set.Mode)
	}
	if len(set.Checkboxes) != len(DigitalSizes) {
		t.Fatalf("expected %d checkboxes, got %d", len(DigitalSizes), len(set.Checkboxes))
	}
	if len(set.Options) != 0 {
		t.Fatalf("digital variant must not render dropdown options, got %d", len(set.Options))
	}
	var checked []string
	for _, box := range set.Checkboxes {
		if box.Checked {
			checked = append(checked, box.Value)
		}
	}
	if diff := cmp.Diff([]string{"1080x1080px"}, checked); diff != "" {
		t.Fatalf("checked mismatch (-want +got):\n%s", diff)
	}
	if set.Checkboxes[0].ID != "spec-800x600px" {
		t.Fatalf("unexpected checkbox id %q", set.Checkboxes[0].ID)
	}
}

func TestRender_PeriodicalCustomOption(t *testing.T) {
	t.Parallel()

	set := Render(VariantFor(TypePeriodical), model.NewState(nil))
	values := make([]string, 0, len(set.Options))
	for _, opt := range set.Options {
		values = append(values, opt.Value)
	}
	want := []string{"", "A4 (21x29.7cm)", "21x28cm", CustomValue}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if set.CustomVisible {
		t.Fatalf("custom input must stay hidden until custom is selected")
	}

	custom := Render(VariantFor(TypePeriodical), model.StateFromMap(map[string]string{
		SpecsField:  CustomValue,
		CustomField: "30x40cm",
	}))
	if !custom.CustomVisible || custom.CustomValue != "30x40cm" {
		t.Fatalf("expected visible custom input carrying the override, got %+v", custom)
	}
}

func TestRender_DefaultOnlyPlaceholder(t *testing.T) {
	t.Parallel()

	set := Render(Default{}, model.StateFromMap(map[string]string{SpecsField: "A4 (21x29.7cm)"}))
	want := []SelectOption{{Value: "", Label: PlaceholderLabel, Selected: true}}
	if diff := cmp.Diff(want, set.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestController_SwitchDiscardsPreviousInput(t *testing.T) {
	t.Parallel()

	ctrl := NewController()
	state := model.NewState(url.Values{
		TypeField:    {TypeDigital},
		DigitalField: {"800x600px"},
	})

	next, set := ctrl.Switch(state, TypePeriodical)
	if next.Has(DigitalField) {
		t.Fatalf("expected digital selections to be discarded")
	}
	if got := next.Get(TypeField); got != TypePeriodical {
		t.Fatalf("expected type %q, got %q", TypePeriodical, got)
	}
	if set.Kind != KindPeriodical {
		t.Fatalf("expected periodical widgets, got %s", set.Kind)
	}

	back, digital := ctrl.Switch(next, TypeDigital)
	for _, box := range digital.Checkboxes {
		if box.Checked {
			t.Fatalf("expected fresh checkboxes after switching back, %q was checked", box.Value)
		}
	}
	if back.Has(SpecsField) {
		t.Fatalf("expected specs to be cleared")
	}
}

func TestSpecsValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		variant Variant
		values  url.Values
		want    string
	}{
		{
			name:    "digital joined",
			variant: VariantFor(TypeDigital),
			values:  url.Values{DigitalField: {"800x600px", "820x312px"}},
			want:    "800x600px, 820x312px",
		},
		{
			name:    "digital none",
			variant: VariantFor(TypeDigital),
			values:  url.Values{},
			want:    NoDigitalSelected,
		},
		{
			name:    "periodical preset",
			variant: VariantFor(TypePeriodical),
			values:  url.Values{SpecsField: {"21x28cm"}, CustomField: {"ignored"}},
			want:    "21x28cm",
		},
		{
			name:    "one-time custom filled",
			variant: VariantFor(TypeOneTime),
			values:  url.Values{SpecsField: {CustomValue}, CustomField: {" 30x40cm "}},
			want:    "30x40cm",
		},
		{
			name:    "custom blank",
			variant: VariantFor(TypePeriodical),
			values:  url.Values{SpecsField: {CustomValue}, CustomField: {"  "}},
			want:    CustomNotFilled,
		},
		{
			name:    "default verbatim",
			variant: Default{},
			values:  url.Values{SpecsField: {""}},
			want:    "",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := SpecsValue(tc.variant, model.NewState(tc.values)); got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	state := model.NewState(url.Values{
		SpecsField:   {"21x28cm"},
		CustomField:  {"stale"},
		DigitalField: {"800x600px"},
	})

	if got := Discard(VariantFor(TypeDigital), state).Names(); !cmp.Equal(got, []string{DigitalField}) {
		t.Fatalf("digital discard kept %v", got)
	}
	if got := Discard(VariantFor(TypePeriodical), state).Names(); !cmp.Equal(got, []string{SpecsField}) {
		t.Fatalf("periodical discard kept %v", got)
	}
	if got := Discard(Default{}, state).Names(); !cmp.Equal(got, []string{SpecsField}) {
		t.Fatalf("default discard kept %v", got)
	}
}
