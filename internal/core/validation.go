package core

// validation.go validates submitted form values against an entity's FieldSpecs.
//
// Every field is checked; errors are collected rather than short-circuited so
// the form can show all problems at once. The first failing field's message
// doubles as the summary message.

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// priceRegex matches a non-negative decimal with at most two fraction digits.
var priceRegex = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// maxAmountCents is the largest amount an int64 cent column holds.
var maxAmountCents = decimal.NewFromInt(math.MaxInt64)

var validate = validator.New()

// ValidationResult contains the outcome of validating a form.
type ValidationResult struct {
	Valid       bool
	Data        Record              // Typed values, set when Valid
	FieldErrors map[string][]string // Field name -> messages
	Message     string              // First failing field's message
}

func (r *ValidationResult) addError(field, msg string) {
	if r.FieldErrors == nil {
		r.FieldErrors = make(map[string][]string)
	}
	if r.Message == "" {
		r.Message = msg
	}
	r.Valid = false
	r.FieldErrors[field] = append(r.FieldErrors[field], msg)
}

// Validate checks raw form values against specs and produces a typed record.
func Validate(specs []FieldSpec, form map[string]string) ValidationResult {
	result := ValidationResult{Valid: true}

	for _, spec := range specs {
		raw := strings.TrimSpace(form[spec.Name])

		if raw == "" {
			if spec.Required {
				result.addError(spec.Name, messageFor(spec))
				continue
			}
			if spec.Default != "" || spec.Type == FieldText {
				result.Data.Set(spec.Column(), spec.Default)
			} else {
				result.Data.Set(spec.Column(), nil)
			}
			continue
		}

		value, ok := convertField(spec, raw)
		if !ok {
			result.addError(spec.Name, messageFor(spec))
			continue
		}
		result.Data.Set(spec.Column(), value)
	}

	if !result.Valid {
		result.Data = Record{}
	}
	return result
}

// convertField parses a non-empty raw value into the type stored for spec.
func convertField(spec FieldSpec, raw string) (any, bool) {
	switch spec.Type {
	case FieldEmail:
		if validate.Var(raw, "email") != nil {
			return nil, false
		}
		return raw, true

	case FieldURL:
		if validate.Var(raw, "url") != nil {
			return nil, false
		}
		return raw, true

	case FieldEnum:
		for _, ev := range spec.EnumValues {
			if ev == raw {
				return raw, true
			}
		}
		return nil, false

	case FieldPrice:
		if !priceRegex.MatchString(raw) {
			return nil, false
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, false
		}
		return ToPgNumeric(d), true

	case FieldAmount:
		d, err := decimal.NewFromString(raw)
		if err != nil || !d.IsPositive() {
			return nil, false
		}
		shifted := d.Shift(2).Round(0)
		if shifted.GreaterThan(maxAmountCents) {
			return nil, false
		}
		cents := shifted.IntPart()
		if cents <= 0 {
			return nil, false
		}
		return cents, true

	case FieldUUID:
		if _, err := uuid.Parse(raw); err != nil {
			return nil, false
		}
		return ToPgUUID(raw), true

	case FieldRef:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			return nil, false
		}
		return n, true

	default:
		return raw, true
	}
}

// messageFor returns the configured message or a generic one for the field type.
func messageFor(spec FieldSpec) string {
	if spec.Message != "" {
		return spec.Message
	}

	label := spec.Label
	if label == "" {
		label = spec.Name
	}

	switch spec.Type {
	case FieldEmail:
		return label + " must be a valid email address"
	case FieldURL:
		return label + " must be a valid URL"
	case FieldPrice, FieldAmount:
		return label + " must be a valid number"
	case FieldEnum:
		return label + " must be one of: " + strings.Join(spec.EnumValues, ", ")
	default:
		return label + " is required"
	}
}
