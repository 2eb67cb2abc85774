package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"task-dashboard.com/task-dashboard/internal/constants"
	dto "task-dashboard.com/task-dashboard/internal/data_models"
	apperrors "task-dashboard.com/task-dashboard/internal/errors"
)

const validationFailed = "Validation failed"

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("timestamp", validateTimestamp)
	_ = validate.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		return constants.Priority(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return constants.TaskStatus(fl.Field().String()).Valid()
	})
}

// timestampLayouts are tried in order. Layouts without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}

func validateTimestamp(fl validator.FieldLevel) bool {
	_, err := ParseTimestamp(fl.Field().String())
	return err == nil
}

// field describes how one input field is checked and reported.
type field struct {
	name     string
	tag      string
	messages map[string]string
	// trim strips surrounding whitespace before the value is checked.
	trim bool
}

func (f field) message(tag string) string {
	if msg, ok := f.messages[tag]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", f.name)
}

// check runs the field's validator tag against value and records the first
// failure in ve.
func (f field) check(ve *apperrors.ValidationError, value string) bool {
	err := validate.Var(value, f.tag)
	if err == nil {
		return true
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		ve.Add(f.name, apperrors.InvalidValue, f.message(""))
		return false
	}

	tag := fieldErrs[0].Tag()
	ve.Add(f.name, codeForTag(tag), f.message(tag))
	return false
}

func codeForTag(tag string) apperrors.ValidationCode {
	switch tag {
	case "required":
		return apperrors.MissingRequiredField
	case "oneof", "priority", "status":
		return apperrors.InvalidEnumValue
	default:
		return apperrors.InvalidValue
	}
}

// readString decodes a string field. JSON null counts as absent; any other
// non-string value is recorded as InvalidType.
func readString(body dto.Payload, ve *apperrors.ValidationError, name, typeMessage string) (string, bool) {
	raw, ok := body[name]
	if !ok || isNull(raw) {
		return "", false
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		ve.Add(name, apperrors.InvalidType, typeMessage)
		return "", false
	}
	return value, true
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

// required reads a mandatory string field and runs its checks.
func required(body dto.Payload, ve *apperrors.ValidationError, f field, typeMessage string) (string, bool) {
	value, present := readString(body, ve, f.name, typeMessage)
	if ve.Has(f.name) {
		return "", false
	}
	if !present {
		ve.Add(f.name, apperrors.MissingRequiredField, f.message("required"))
		return "", false
	}
	value = f.normalize(value)
	return value, f.check(ve, value)
}

// optional reads a string field that may be omitted.
func optional(body dto.Payload, ve *apperrors.ValidationError, f field, typeMessage string) (string, bool) {
	value, present := readString(body, ve, f.name, typeMessage)
	if !present {
		return "", false
	}
	value = f.normalize(value)
	return value, f.check(ve, value)
}

func (f field) normalize(value string) string {
	if f.trim {
		return strings.TrimSpace(value)
	}
	return value
}
