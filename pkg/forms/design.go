package forms

import (
	"time"

	"github.com/goliatone/go-formrelay/pkg/hydrate"
	"github.com/goliatone/go-formrelay/pkg/model"
	"github.com/goliatone/go-formrelay/pkg/payload"
	"github.com/goliatone/go-formrelay/pkg/specs"
	"github.com/goliatone/go-formrelay/pkg/validation"
)

// DesignEndpoint is the default webhook receiving design requests.
const DesignEndpoint = "https://bwe.app.n8n.cloud/webhook-test/3dd8e0e0-b591-40d9-8ad9-d037cd750c32"

// Design form field names.
const (
	DesignProjectName   = "project_name"
	DesignColorDraft    = "colorDraftDate"
	DesignPrintDate     = "printDate"
	DesignRequirements  = "requirements"
	DesignSubmitterID   = "submitter_id"
	DesignSubmitterName = "submitter_name"
)

// MetadataSpecsEndpoint is the form metadata key holding the URL that serves
// the specs fragment for a type.
const MetadataSpecsEndpoint = "specsEndpoint"

// TypeOptions are the publication types offered by the design form. Only
// the first three switch the specs slot away from the default dropdown.
var TypeOptions = []model.Option{
	{Value: specs.TypeDigital, Label: specs.TypeDigital},
	{Value: specs.TypePeriodical, Label: specs.TypePeriodical},
	{Value: specs.TypeOneTime, Label: specs.TypeOneTime},
	{Value: "其他", Label: "其他"},
}

// Design builds the design request form.
func Design(opts ...Option) Definition {
	fields := []model.Field{
		{Name: DesignProjectName, Type: model.FieldTypeText, Label: "專案名稱", Required: true},
		{Name: specs.TypeField, Type: model.FieldTypeSelect, Label: "類型", Required: true, Placeholder: "請選擇類型", Options: TypeOptions},
		{Name: specs.SpecsField, Type: model.FieldTypeSpecs, Label: "規格"},
		{Name: DesignColorDraft, Type: model.FieldTypeDate, Label: "色稿時間"},
		{Name: DesignPrintDate, Type: model.FieldTypeDate, Label: "印製時間", Metadata: map[string]string{"requires": DesignColorDraft}},
		{Name: DesignRequirements, Type: model.FieldTypeTextarea, Label: "需求說明"},
		{Name: DesignSubmitterID, Type: model.FieldTypeHidden},
		{Name: DesignSubmitterName, Type: model.FieldTypeText, Label: "提交人", ReadOnly: true},
		{Name: payload.TimestampField, Type: model.FieldTypeHidden},
	}

	def := Definition{
		Name: NameDesign,
		Model: model.FormModel{
			ID:          "projectForm",
			Title:       "設計需求單",
			Action:      "/design",
			Method:      "POST",
			SubmitLabel: "送出",
			Fields:      fields,
			Metadata:    map[string]string{MetadataSpecsEndpoint: "/design/specs"},
		},
		Hydrator: hydrate.Hydrator{IDField: DesignSubmitterID, DisplayField: DesignSubmitterName},
		Schema:   payload.DesignSchema,
		Allowed:  append(fieldNames(fields), specs.CustomField, specs.DigitalField),
		Endpoint: DesignEndpoint,
		Messages: Messages{
			SuccessID:   "design.success",
			Success:     "表單已成功提交到 n8n！",
			FailureID:   "design.failure",
			Failure:     "提交到 n8n 失敗: %s",
			HTTPErrorID: "design.httpError",
			HTTPError:   "HTTP error! status: %d, message: %s",
			UnknownID:   "design.unknown",
			Unknown:     "Unknown error",
		},
		ResetFields: []string{
			DesignProjectName, specs.TypeField, specs.SpecsField, specs.CustomField, specs.DigitalField,
			DesignColorDraft, DesignPrintDate, DesignRequirements, payload.TimestampField,
		},
	}
	def = apply(def, opts)

	allowed := def.Allowed
	def.Build = func(state model.FormState, timestamp string) any {
		return payload.BuildDesign(state, allowed, timestamp)
	}

	tomorrow := func() time.Time { return payload.Tomorrow(def.Now()) }
	def.Validator = validation.New(
		validation.Required(
			validation.RequiredField{Name: DesignProjectName, Label: "專案名稱"},
			validation.RequiredField{Name: specs.TypeField, Label: "類型"},
		),
		validation.DateNotBefore(DesignColorDraft, "色稿時間", tomorrow),
		validation.DateNotBefore(DesignPrintDate, "印製時間", tomorrow),
		validation.DateOrder(DesignColorDraft, DesignPrintDate, "色稿時間", "印製時間"),
	)
	return def
}

// MinDate is the earliest date the design form accepts, as the date input's
// min attribute.
func MinDate(now time.Time) string {
	return payload.Tomorrow(now).Format(validation.DateLayout)
}
