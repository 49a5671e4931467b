package payload

import (
	"github.com/goliatone/go-formrelay/pkg/masking"
	"github.com/goliatone/go-formrelay/pkg/model"
)

// Registration form field names.
const (
	FieldLineID      = "line_id"
	FieldName        = "name"
	FieldEnglishName = "english_name"
	FieldDepartment  = "department"
	FieldEmailPrefix = "email_prefix"
	FieldMobile      = "mobile"
	FieldExtension   = "extension"
)

// Registration is the exact body the registration API accepts.
type Registration struct {
	LineID      string `json:"line_id"`
	Name        string `json:"name"`
	EnglishName string `json:"english_name"`
	Department  string `json:"department"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
	Extension   string `json:"extension"`
	Timestamp   string `json:"timestamp"`
}

// BuildRegistration maps the registration form state onto the API body. The
// email is always recomposed from the prefix.
func BuildRegistration(state model.FormState, timestamp string) Registration {
	return Registration{
		LineID:      state.Get(FieldLineID),
		Name:        state.Get(FieldName),
		EnglishName: state.Get(FieldEnglishName),
		Department:  state.Get(FieldDepartment),
		Email:       masking.Email(state.Get(FieldEmailPrefix)),
		Mobile:      state.Get(FieldMobile),
		Extension:   state.Get(FieldExtension),
		Timestamp:   timestamp,
	}
}
