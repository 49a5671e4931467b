package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formrelay/pkg/render"
	"github.com/goliatone/go-formrelay/pkg/submission"
)

var (
	_ submission.Translator = (*Localizer)(nil)
	_ render.Translator     = (*Translations)(nil)
)

func newTranslations(t *testing.T) *Translations {
	t.Helper()
	tr, err := NewTranslations("")
	if err != nil {
		t.Fatalf("NewTranslations: %v", err)
	}
	return tr
}

func TestNewTranslationsRejectsUnknownDefault(t *testing.T) {
	if _, err := NewTranslations("fr"); err == nil {
		t.Fatalf("expected error for unsupported default language")
	}
}

func TestLanguagesDefaultFirst(t *testing.T) {
	got := newTranslations(t).Languages()
	want := []string{"zh-TW", "en"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("languages mismatch (-want +got):\n%s", diff)
	}
}

func TestMatch(t *testing.T) {
	tr := newTranslations(t)
	cases := map[string]string{
		"":                     "zh-TW",
		"en-US,en;q=0.9":       "en",
		"zh-TW,zh;q=0.8":       "zh-TW",
		"fr-FR":                "zh-TW",
		"not a language tag!!": "zh-TW",
	}
	for accept, want := range cases {
		if got := tr.Match(accept); got != want {
			t.Errorf("Match(%q) = %q, want %q", accept, got, want)
		}
	}
}

func TestLocalizerTranslate(t *testing.T) {
	tr := newTranslations(t)

	zh := tr.For("zh-TW")
	if got := zh.Translate("register.failure", map[string]any{"Reason": "未知錯誤"}, "x"); got != "註冊失敗: 未知錯誤" {
		t.Fatalf("unexpected zh failure text %q", got)
	}
	if got := zh.Translate("validation.required", map[string]any{"Label": "姓名"}, "x"); got != "請填寫姓名欄位" {
		t.Fatalf("unexpected required text %q", got)
	}

	en := tr.For("en")
	if en.Lang() != "en" {
		t.Fatalf("expected en localizer, got %q", en.Lang())
	}
	if got := en.Translate("design.httpError", map[string]any{"Status": 500, "Message": "boom"}, "x"); got != "HTTP error! status: 500, message: boom" {
		t.Fatalf("unexpected en http error %q", got)
	}
	if got := en.Translate("missing.id", nil, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestTranslateFormKeys(t *testing.T) {
	tr := newTranslations(t)

	got, err := tr.Translate("en", "forms.registerForm.fields.mobile.label", map[string]any{"default": "行動電話"})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "Mobile" {
		t.Fatalf("expected Mobile, got %q", got)
	}

	// zh-TW keeps the labels declared on the form model.
	if _, err := tr.Translate("zh-TW", "forms.registerForm.fields.mobile.label"); err == nil {
		t.Fatalf("expected missing key error for zh-TW form label")
	}
}

func TestLoadDirOverrides(t *testing.T) {
	tr := newTranslations(t)
	dir := t.TempDir()
	body := "[register.success]\nother = \"done\"\n"
	if err := os.WriteFile(filepath.Join(dir, "active.en.toml"), []byte(body), 0o600); err != nil {
		t.Fatalf("write locale: %v", err)
	}
	if err := tr.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if got := tr.For("en").Translate("register.success", nil, "x"); got != "done" {
		t.Fatalf("expected override, got %q", got)
	}
	if got := tr.For("en").Translate("register.unknown", nil, "x"); got != "Unknown error" {
		t.Fatalf("expected embedded message to survive, got %q", got)
	}
}
