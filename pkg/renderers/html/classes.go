package html

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassPage    ChromeClass = "formrelay-page"
	ClassForm    ChromeClass = "formrelay-form"
	ClassHeader  ChromeClass = "formrelay-header"
	ClassField   ChromeClass = "formrelay-field"
	ClassActions ChromeClass = "formrelay-actions"
	ClassErrors  ChromeClass = "formrelay-errors"
	ClassSpecs   ChromeClass = "formrelay-specs"
)

func defaultClasses() map[string]string {
	return map[string]string{
		"page":    string(ClassPage),
		"form":    string(ClassForm),
		"header":  string(ClassHeader),
		"field":   string(ClassField),
		"actions": string(ClassActions),
		"errors":  string(ClassErrors),
		"specs":   string(ClassSpecs),
	}
}
