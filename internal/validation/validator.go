// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

// Package validation wraps go-playground/validator v10 behind one shared
// instance used by configuration loading and the HTTP API request decoders.
//
// Field names in errors are the json (API) or koanf (config) names, dotted
// for nested structs: "backend.url", "host_id".
//
// Custom tags:
//   - alignak_id: a backend object id (24 lowercase hexadecimal characters)
//   - resource: a polled resource type name (host, service, livesynthesis, ...)
//
//	type AckRequest struct {
//	    HostID  string `json:"host_id" validate:"required,alignak_id"`
//	    Comment string `json:"comment" validate:"required,max=512"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    apiErr := err.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/alignak-watch/internal/models"
)

// CodeValidation is the envelope error code for rejected input.
const CodeValidation = "VALIDATION_ERROR"

var alignakIDPattern = regexp.MustCompile(`^[0-9a-f]{24}$`)

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Value   interface{}
	Message string
}

// Error is the set of rules a value failed.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Fields))
	for i := range e.Fields {
		msgs[i] = e.Fields[i].Message
	}
	return strings.Join(msgs, "; ")
}

// ToAPIError converts e to the envelope error. A single failure reports
// field, tag and value; several failures are listed under "fields".
func (e *Error) ToAPIError() *models.APIError {
	apiErr := &models.APIError{Code: CodeValidation, Message: e.Error()}

	switch len(e.Fields) {
	case 0:
		apiErr.Message = "Validation failed"
	case 1:
		f := e.Fields[0]
		apiErr.Details = map[string]interface{}{
			"field": f.Field,
			"tag":   f.Tag,
			"value": f.Value,
		}
	default:
		fields := make([]map[string]interface{}, len(e.Fields))
		for i, f := range e.Fields {
			fields[i] = map[string]interface{}{
				"field":   f.Field,
				"tag":     f.Tag,
				"message": f.Message,
			}
		}
		apiErr.Details = map[string]interface{}{"fields": fields}
	}
	return apiErr
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the shared validator, registering the custom tags
// on first use.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(tagName)

		_ = validate.RegisterValidation("alignak_id", func(fl validator.FieldLevel) bool {
			return alignakIDPattern.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("resource", func(fl validator.FieldLevel) bool {
			_, ok := models.ParseResourceType(fl.Field().String())
			return ok
		})
	})
	return validate
}

// tagName reports the json name, else the koanf name, else the Go name.
func tagName(fld reflect.StructField) string {
	for _, key := range []string{"json", "koanf"} {
		name, _, _ := strings.Cut(fld.Tag.Get(key), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		default:
			return name
		}
	}
	return fld.Name
}

// ValidateStruct returns nil when s passes every rule.
func ValidateStruct(s interface{}) *Error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError: s was not a struct.
		return &Error{Fields: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}}}
	}

	out := &Error{Fields: make([]FieldError, len(fieldErrs))}
	for i, fe := range fieldErrs {
		path := fieldPath(fe)
		out.Fields[i] = FieldError{
			Field:   path,
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: message(path, fe),
		}
	}
	return out
}

// fieldPath drops the root struct name: Config.Backend.URL -> backend.url.
func fieldPath(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		return rest
	}
	return fe.Field()
}

// messages are formatted with the field path as %[1]s and the tag
// parameter as %[2]s.
var messages = map[string]string{
	"required":         "%[1]s is required",
	"url":              "%[1]s must be a valid URL",
	"http_url":         "%[1]s must be an http(s) URL",
	"alignak_id":       "%[1]s must be a backend object id (24 hex characters)",
	"resource":         "%[1]s must be a known resource type",
	"oneof":            "%[1]s must be one of: %[2]s",
	"gte":              "%[1]s must be greater than or equal to %[2]s",
	"lte":              "%[1]s must be less than or equal to %[2]s",
	"gt":               "%[1]s must be greater than %[2]s",
	"lt":               "%[1]s must be less than %[2]s",
	"required_with":    "%[1]s is required when %[2]s is set",
	"required_without": "%[1]s is required when %[2]s is not set",
}

func message(path string, fe validator.FieldError) string {
	if tmpl, ok := messages[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, path, fe.Param())
	}

	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", path, fe.Param(), unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", path, fe.Param(), unit)
	default:
		return fmt.Sprintf("%s failed %s validation", path, fe.Tag())
	}
}
