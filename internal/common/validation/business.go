package validation

import (
	"github.com/xeipuuv/gojsonschema"

	"outreach-campaigns/internal/models"
)

type object = map[string]interface{}

func str(extra object) object {
	out := object{"type": "string"}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// BusinessSchema describes a directory record as it is stored on disk.
var BusinessSchema = object{
	"type":                 "object",
	"additionalProperties": false,
	"required":             []interface{}{"name", "type", "address"},
	"properties": object{
		"name":        str(object{"minLength": 1, "maxLength": 200}),
		"type":        str(object{"minLength": 1, "maxLength": 100}),
		"address":     str(object{"minLength": 1}),
		"website":     str(object{"format": FormatURL}),
		"phone":       str(object{"format": FormatPhone}),
		"email":       str(object{"format": FormatEmail}),
		"description": str(object{"maxLength": 2000}),
		"tags": object{
			"type":  "array",
			"items": str(object{"minLength": 1}),
		},
		"socialMedia": object{
			"type": "object",
			"properties": object{
				"facebook":  str(nil),
				"instagram": str(nil),
				"twitter":   str(nil),
			},
		},
		"currentWebPresence": object{
			"type":     "object",
			"required": []interface{}{"hasWebsite", "hasSocialMedia"},
			"properties": object{
				"hasWebsite":     object{"type": "boolean"},
				"hasSocialMedia": object{"type": "boolean"},
				"websiteQuality": str(object{"enum": []interface{}{
					models.WebsiteQualityNone,
					models.WebsiteQualityBasic,
					models.WebsiteQualityOutdated,
					models.WebsiteQualityModern,
				}}),
				"onlineReviews": object{"type": "number", "minimum": 0},
			},
		},
	},
}

var businessSchema = mustCompile(BusinessSchema)

func mustCompile(doc map[string]interface{}) *gojsonschema.Schema {
	s, err := Compile(doc)
	if err != nil {
		panic("validation: invalid schema: " + err.Error())
	}
	return s
}

// ValidateBusiness checks a record against BusinessSchema.
func ValidateBusiness(b models.Business) (*ValidationResult, error) {
	return ValidateDocument(businessSchema, b)
}
