package specs

import (
	"strings"

	"github.com/goliatone/go-formrelay/pkg/model"
)

// Field names owned by the specs controller.
const (
	TypeField    = "type"
	SpecsField   = "specs"
	CustomField  = "customSpecs"
	DigitalField = "digitalSpecs[]"
)

// Publication types that select a non-default variant.
const (
	TypeDigital    = "數位"
	TypePeriodical = "期刊"
	TypeOneTime    = "一次刊"
)

const (
	// CustomValue is the dropdown value that reveals the free-text override.
	CustomValue = "custom"
	// CustomLabel is the dropdown label for CustomValue.
	CustomLabel = "自訂"
	// PlaceholderLabel is shown as the empty first dropdown entry.
	PlaceholderLabel = "請選擇規格"

	// NoDigitalSelected replaces specs when the digital variant has no
	// checked size.
	NoDigitalSelected = "未選擇任何數位尺寸"
	// CustomNotFilled replaces specs when custom was chosen with a blank
	// override.
	CustomNotFilled = "未填寫自訂尺寸"
	// Delimiter joins checked digital sizes.
	Delimiter = ", "
)

// DigitalSizes lists the checkbox options of the digital variant in display
// order.
var DigitalSizes = []model.Option{
	{Value: "800x600px", Label: "800x600 像素 (通用)"},
	{Value: "1200x628px", Label: "1200x628 像素 (FB 推薦)"},
	{Value: "1080x1080px", Label: "1080x1080 像素 (方形/IG)"},
	{Value: "1080x1920px", Label: "1080x1920 像素 (限時動態)"},
	{Value: "820x312px", Label: "820x312 像素 (FB 封面)"},
}

// PaperSizes lists the dropdown options of the periodical variant, before the
// trailing custom entry.
var PaperSizes = []model.Option{
	{Value: "A4 (21x29.7cm)", Label: "A4 (21x29.7cm)"},
	{Value: "21x28cm", Label: "21x28cm"},
}

// Kind names a variant for logging and markup.
type Kind string

const (
	KindDefault    Kind = "default"
	KindDigital    Kind = "digital"
	KindPeriodical Kind = "periodical"
)

// Variant is the closed set of type-dependent field sets. Only the three
// types in this package implement it.
type Variant interface {
	Kind() Kind
	variant()
}

// Digital renders one checkbox per size; zero or more may be checked.
type Digital struct {
	Sizes []model.Option
}

// Periodical renders a paper-size dropdown with a custom override. It covers
// both the periodical and the one-time publication types.
type Periodical struct {
	Type  string
	Sizes []model.Option
}

// Default renders a dropdown holding only the placeholder.
type Default struct{}

func (Digital) Kind() Kind    { return KindDigital }
func (Periodical) Kind() Kind { return KindPeriodical }
func (Default) Kind() Kind    { return KindDefault }

func (Digital) variant()    {}
func (Periodical) variant() {}
func (Default) variant()    {}

// VariantFor maps a type selector value onto its variant.
func VariantFor(typeValue string) Variant {
	switch strings.TrimSpace(typeValue) {
	case TypeDigital:
		return Digital{Sizes: DigitalSizes}
	case TypePeriodical, TypeOneTime:
		return Periodical{Type: strings.TrimSpace(typeValue), Sizes: PaperSizes}
	default:
		return Default{}
	}
}

// Discard drops every input that does not belong to the active variant, so
// values typed before a type switch never leak into the payload.
func Discard(v Variant, state model.FormState) model.FormState {
	switch v.(type) {
	case Digital:
		return state.Without(SpecsField, CustomField)
	case Periodical:
		state = state.Without(DigitalField)
		if state.Get(SpecsField) != CustomValue {
			state = state.Without(CustomField)
		}
		return state
	default:
		return state.Without(DigitalField, CustomField)
	}
}

// SpecsValue resolves the single specs string the payload carries for the
// active variant.
func SpecsValue(v Variant, state model.FormState) string {
	switch v.(type) {
	case Digital:
		selected := nonEmpty(state.Values(DigitalField))
		if len(selected) == 0 {
			return NoDigitalSelected
		}
		return strings.Join(selected, Delimiter)
	case Periodical:
		value := state.Get(SpecsField)
		if value != CustomValue {
			return value
		}
		if custom := strings.TrimSpace(state.Get(CustomField)); custom != "" {
			return custom
		}
		return CustomNotFilled
	default:
		return state.Get(SpecsField)
	}
}

func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}
		out = append(out, value)
	}
	return out
}
