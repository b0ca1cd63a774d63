package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Custom formats understood by schemas in this package. They leave empty
// strings to minLength so optional fields may be blank.
const (
	FormatEmail = "mailbox"
	FormatURL   = "http-url"
	FormatPhone = "phone"
)

func init() {
	gojsonschema.FormatCheckers.Add(FormatEmail, stringFormat(ValidateEmail))
	gojsonschema.FormatCheckers.Add(FormatURL, stringFormat(ValidateURL))
	gojsonschema.FormatCheckers.Add(FormatPhone, stringFormat(ValidatePhone))
}

type stringFormat func(string) bool

func (f stringFormat) IsFormat(input interface{}) bool {
	s, ok := input.(string)
	if !ok || s == "" {
		return true
	}
	return f(s)
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Compile parses a schema document.
func Compile(doc map[string]interface{}) (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
}

// ValidateDocument checks doc against schema and reports errors keyed by
// field path, e.g. "currentWebPresence.websiteQuality" or "tags[1]".
func ValidateDocument(schema *gojsonschema.Schema, doc interface{}) (*ValidationResult, error) {
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate document: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, re := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   fieldPath(re),
			Message: re.Description(),
			Code:    strings.ToUpper(re.Type()),
		})
	}
	return out, nil
}

// fieldPath converts gojsonschema's "(root).tags.1" contexts to "tags[1]".
// Required and additional-property errors point at the parent object, so the
// property name is appended from the error details.
func fieldPath(re gojsonschema.ResultError) string {
	var parts []string
	if re.Context() != nil {
		parts = strings.Split(re.Context().String("."), ".")
	}
	if prop, ok := re.Details()["property"].(string); ok {
		switch re.Type() {
		case "required", "additional_property_not_allowed":
			parts = append(parts, prop)
		}
	}

	var b strings.Builder
	for _, p := range parts {
		if p == "" || p == gojsonschema.STRING_CONTEXT_ROOT {
			continue
		}
		if _, err := strconv.Atoi(p); err == nil {
			b.WriteString("[" + p + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// GetErrorsForField returns errors for a specific field and its children.
func (vr *ValidationResult) GetErrorsForField(field string) []ValidationError {
	var fieldErrors []ValidationError
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") || strings.HasPrefix(err.Field, field+"[") {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]{7,}$`)
	urlPattern   = regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)
)

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhone validates basic phone number format
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidateURL validates URL format
func ValidateURL(url string) bool {
	return urlPattern.MatchString(url)
}
