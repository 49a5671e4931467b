package html_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-formrelay/pkg/forms"
	"github.com/goliatone/go-formrelay/pkg/hydrate"
	"github.com/goliatone/go-formrelay/pkg/model"
	"github.com/goliatone/go-formrelay/pkg/render"
	"github.com/goliatone/go-formrelay/pkg/renderers/html"
	"github.com/goliatone/go-formrelay/pkg/specs"
)

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing")
}

func newRenderer(t *testing.T) *html.Renderer {
	t.Helper()
	renderer, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func assertContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(output, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, output)
		}
	}
}

func TestRender_DesignPageHydratedAndDigital(t *testing.T) {
	renderer := newRenderer(t)
	def := forms.Design()

	state := def.Hydrator.Apply(model.StateFromMap(map[string]string{
		specs.TypeField: specs.TypeDigital,
	}), hydrate.Identity{UserID: "U1"})
	widgets := specs.NewController().Initial(state)

	out, err := renderer.Render(context.Background(), def.Model, render.RenderOptions{
		State:   state,
		Specs:   &widgets,
		MinDate: "2026-10-18",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(out)

	assertContains(t, page,
		`<form id="projectForm"`,
		`name="submitter_id" value="U1"`,
		`name="submitter_name" value="U1"`,
		` readonly`,
		`<option value="數位" selected>`,
		`id="spec-800x600px"`,
		`name="digitalSpecs[]"`,
		`min="2026-10-18"`,
		`"specsURL":"/design/specs"`,
	)
	if strings.Contains(page, `id="specsSelect"`) {
		t.Fatalf("digital variant must not render the dropdown")
	}
}

func TestRender_RegistrationWithErrorAndMessage(t *testing.T) {
	renderer := newRenderer(t)
	def := forms.Registration()

	state := model.StateFromMap(map[string]string{"mobile": "12345", "line_id": "U9"})
	out, err := renderer.Render(context.Background(), def.Model, render.RenderOptions{
		State:   state,
		Errors:  map[string][]string{"mobile": {"行動電話格式不正確，請輸入09開頭的10位數字"}},
		Message: &render.Message{Kind: render.MessageError, Text: "註冊失敗: <b>x</b>"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(out)

	assertContains(t, page,
		`name="line_id" value="U9"`,
		`data-mask="mobile"`,
		`data-mask="extension"`,
		`maxlength="10"`,
		`@bwnet.com.tw`,
		`<p class="field-error">行動電話格式不正確，請輸入09開頭的10位數字</p>`,
		`class="error-message"`,
		`註冊失敗: &lt;b&gt;x&lt;/b&gt;`,
	)
}

func TestRender_RedirectCarriedToPage(t *testing.T) {
	renderer := newRenderer(t)
	def := forms.Registration()

	out, err := renderer.Render(context.Background(), def.Model, render.RenderOptions{
		Message:  &render.Message{Kind: render.MessageSuccess, Text: "註冊成功！您現在可以使用所有功能。"},
		Redirect: &render.Redirect{URL: def.RedirectURL, Delay: 3 * time.Second},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, string(out),
		`class="success-message"`,
		`data-redirect="https://line.me/R/"`,
		`data-redirect-delay="3000"`,
	)
}

func TestRender_Localized(t *testing.T) {
	renderer := newRenderer(t)
	def := forms.Registration()

	out, err := renderer.Render(context.Background(), def.Model, render.RenderOptions{
		Locale: "en",
		Translator: stubTranslator{
			"forms.registerForm.title":             "Registration",
			"forms.registerForm.fields.name.label": "Name",
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, string(out), `<html lang="en">`, `<title>Registration</title>`, `>Name <span class="required">`)
}

func TestRenderSpecs_Fragments(t *testing.T) {
	renderer := newRenderer(t)

	state := model.StateFromMap(map[string]string{
		specs.TypeField:   specs.TypePeriodical,
		specs.SpecsField:  specs.CustomValue,
		specs.CustomField: "30x40cm",
	})
	out, err := renderer.RenderSpecs(context.Background(), specs.NewController().Initial(state))
	if err != nil {
		t.Fatalf("render specs: %v", err)
	}
	fragment := string(out)
	assertContains(t, fragment,
		`data-specs-kind="periodical"`,
		`<option value="custom" selected>自訂</option>`,
		`id="customSpecsInput" value="30x40cm">`,
	)
	if strings.Contains(fragment, "<html") {
		t.Fatalf("fragment must not contain page chrome")
	}

	out, err = renderer.RenderSpecs(context.Background(), specs.Render(specs.Default{}, model.FormState{}))
	if err != nil {
		t.Fatalf("render specs: %v", err)
	}
	if strings.Contains(string(out), "customSpecsInput") {
		t.Fatalf("default variant must not render the custom input")
	}
}

func TestRender_InlinesScriptThatLocksSubmit(t *testing.T) {
	renderer := newRenderer(t)
	def := forms.Registration()

	out, err := renderer.Render(context.Background(), def.Model, render.RenderOptions{
		State: def.Hydrator.Apply(model.NewState(nil), hydrate.Identity{}),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	assertContains(t, string(out),
		`window.formrelay = {`,
		`submit.disabled = true;`,
		`submit.disabled = false;`,
	)
}
