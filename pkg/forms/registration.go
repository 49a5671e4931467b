package forms

import (
	"regexp"
	"time"

	"github.com/goliatone/go-formrelay/pkg/hydrate"
	"github.com/goliatone/go-formrelay/pkg/masking"
	"github.com/goliatone/go-formrelay/pkg/model"
	"github.com/goliatone/go-formrelay/pkg/payload"
	"github.com/goliatone/go-formrelay/pkg/validation"
)

const (
	// RegistrationEndpoint is the default registration API.
	RegistrationEndpoint = "https://bweline.zeabur.app/api/register"
	// RegistrationRedirect is where the browser goes after a successful
	// registration.
	RegistrationRedirect = "https://line.me/R/"
	// RegistrationRedirectDelay is the pause before the redirect.
	RegistrationRedirectDelay = 3000 * time.Millisecond
)

var (
	mobilePattern    = regexp.MustCompile(`^09\d{8}$`)
	extensionPattern = regexp.MustCompile(`^#\d{3,4}$`)
)

// Validation message ids of the registration form.
const (
	NameTooLongMessageID      = "validation.name.cjk"
	MobileInvalidMessageID    = "validation.mobile"
	ExtensionInvalidMessageID = "validation.extension"
)

// RegistrationRequired lists the required registration fields and their
// labels, in the order they are checked.
var RegistrationRequired = []validation.RequiredField{
	{Name: payload.FieldName, Label: "姓名"},
	{Name: payload.FieldEnglishName, Label: "英文名"},
	{Name: payload.FieldDepartment, Label: "單位"},
	{Name: payload.FieldEmailPrefix, Label: "電子郵件"},
	{Name: payload.FieldMobile, Label: "行動電話"},
	{Name: payload.FieldExtension, Label: "分機號碼"},
}

// Registration builds the registration form.
func Registration(opts ...Option) Definition {
	fields := []model.Field{
		{Name: payload.FieldLineID, Type: model.FieldTypeHidden},
		{
			Name: payload.FieldName, Type: model.FieldTypeText, Label: "姓名", Required: true, Description: "中文字元最多 5 個",
			Metadata: map[string]string{"mask": "name"},
		},
		{Name: payload.FieldEnglishName, Type: model.FieldTypeText, Label: "英文名", Required: true},
		{Name: payload.FieldDepartment, Type: model.FieldTypeText, Label: "單位", Required: true},
		{
			Name: payload.FieldEmailPrefix, Type: model.FieldTypeText, Label: "電子郵件", Required: true,
			Metadata: map[string]string{"suffix": masking.EmailDomain},
		},
		{
			Name: payload.FieldMobile, Type: model.FieldTypeTel, Label: "行動電話", Required: true, Placeholder: "0912345678",
			Metadata: map[string]string{"mask": "mobile", "maxlength": "10"},
		},
		{
			Name: payload.FieldExtension, Type: model.FieldTypeText, Label: "分機號碼", Required: true, Placeholder: "#123",
			Metadata: map[string]string{"mask": "extension", "maxlength": "5"},
		},
		{Name: payload.TimestampField, Type: model.FieldTypeHidden},
	}

	def := Definition{
		Name: NameRegister,
		Model: model.FormModel{
			ID:          "registerForm",
			Title:       "用戶註冊",
			Action:      "/register",
			Method:      "POST",
			SubmitLabel: "註冊",
			Fields:      fields,
		},
		Hydrator:      hydrate.Hydrator{IDField: payload.FieldLineID},
		Schema:        payload.RegistrationSchema,
		Allowed:       fieldNames(fields),
		Endpoint:      RegistrationEndpoint,
		RedirectURL:   RegistrationRedirect,
		RedirectDelay: RegistrationRedirectDelay,
		Messages: Messages{
			SuccessID:   "register.success",
			Success:     "註冊成功！您現在可以使用所有功能。",
			FailureID:   "register.failure",
			Failure:     "註冊失敗: %s",
			HTTPErrorID: "register.httpError",
			HTTPError:   "HTTP 錯誤! 狀態: %d, 訊息: %s",
			UnknownID:   "register.unknown",
			Unknown:     "未知錯誤",
		},
		Validator: validation.New(
			validation.MaxCJK(payload.FieldName, masking.MaxCJKChars, NameTooLongMessageID, "姓名中的中文字元不能超過5個"),
			validation.Pattern(payload.FieldMobile, mobilePattern, MobileInvalidMessageID, "行動電話格式不正確，請輸入09開頭的10位數字"),
			validation.Pattern(payload.FieldExtension, extensionPattern, ExtensionInvalidMessageID, "分機號碼格式不正確，請使用 #加上3-4位數字 格式"),
			validation.Required(RegistrationRequired...),
		),
		Build: func(state model.FormState, timestamp string) any {
			return payload.BuildRegistration(state, timestamp)
		},
	}
	return apply(def, opts)
}
