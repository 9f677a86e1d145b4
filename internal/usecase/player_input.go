package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// playerFieldOrder fixes the order violations are reported in.
var playerFieldOrder = []string{"name", "number", "position", "team_id", "photo_url"}

type createPlayerInput struct {
	Name     *string `json:"name" validate:"required,min=1,max=255"`
	Number   *int64  `json:"number" validate:"required,gte=0,lte=2147483647"`
	Position *string `json:"position" validate:"required,min=1,max=10"`
	TeamID   *int64  `json:"team_id" validate:"required,gte=1"`
	PhotoURL *string `json:"photo_url" validate:"omitnil"`
}

type updatePlayerInput struct {
	Name     *string `json:"name" validate:"omitnil,min=1,max=255"`
	Number   *int64  `json:"number" validate:"omitnil,gte=0,lte=2147483647"`
	Position *string `json:"position" validate:"omitnil,min=1,max=10"`
	TeamID   *int64  `json:"team_id" validate:"omitnil,gte=1"`
	PhotoURL *string `json:"photo_url" validate:"omitnil"`

	photoURLSet bool
}

func newPlayerValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// playerDecoder converts loosely typed payload values and records type violations.
type playerDecoder struct {
	violations map[string]string
}

func newPlayerDecoder() *playerDecoder {
	return &playerDecoder{violations: make(map[string]string)}
}

func (d *playerDecoder) decodeCreate(fields map[string]any) createPlayerInput {
	return createPlayerInput{
		Name:     d.text(fields, "name"),
		Number:   d.integer(fields, "number"),
		Position: d.text(fields, "position"),
		TeamID:   d.integer(fields, "team_id"),
		PhotoURL: d.nullableText(fields, "photo_url"),
	}
}

func (d *playerDecoder) decodeUpdate(fields map[string]any) updatePlayerInput {
	in := updatePlayerInput{
		Name:     d.text(fields, "name"),
		Number:   d.integer(fields, "number"),
		Position: d.text(fields, "position"),
		TeamID:   d.integer(fields, "team_id"),
		PhotoURL: d.nullableText(fields, "photo_url"),
	}
	_, in.photoURLSet = fields["photo_url"]
	for _, key := range []string{"name", "number", "position", "team_id"} {
		if value, ok := fields[key]; ok && isBlank(value) {
			d.reject(key, fmt.Sprintf("The %s field is required.", label(key)))
		}
	}
	return in
}

func (d *playerDecoder) text(fields map[string]any, key string) *string {
	value, ok := fields[key]
	if !ok || value == nil {
		return nil
	}
	text, ok := value.(string)
	if !ok {
		d.reject(key, fmt.Sprintf("The %s field must be a string.", label(key)))
		return nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return &text
}

func (d *playerDecoder) nullableText(fields map[string]any, key string) *string {
	value, ok := fields[key]
	if !ok || value == nil {
		return nil
	}
	if _, ok := value.(string); !ok {
		d.reject(key, fmt.Sprintf("The %s field must be a string.", label(key)))
		return nil
	}
	return d.text(fields, key)
}

func (d *playerDecoder) integer(fields map[string]any, key string) *int64 {
	value, ok := fields[key]
	if !ok || value == nil {
		return nil
	}

	parsed, ok := toInteger(value)
	if !ok {
		if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
			return nil
		}
		d.reject(key, fmt.Sprintf("The %s field must be an integer.", label(key)))
		return nil
	}
	return &parsed
}

func (d *playerDecoder) reject(field, message string) {
	if _, exists := d.violations[field]; !exists {
		d.violations[field] = message
	}
}

// result merges type violations with validator errors; type violations take precedence.
func (d *playerDecoder) result(err error) error {
	var validationErrs validator.ValidationErrors
	if err != nil && !errors.As(err, &validationErrs) {
		return fmt.Errorf("validate player: %w", err)
	}
	for _, fe := range validationErrs {
		d.reject(fe.Field(), violationMessage(fe))
	}
	if len(d.violations) == 0 {
		return nil
	}

	out := &ValidationError{Violations: make([]FieldViolation, 0, len(d.violations))}
	for _, field := range playerFieldOrder {
		if message, ok := d.violations[field]; ok {
			out.Violations = append(out.Violations, FieldViolation{Field: field, Message: message})
		}
	}
	return out
}

func violationMessage(fe validator.FieldError) string {
	name := label(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s field is required.", name)
		}
		return fmt.Sprintf("The %s field must be at least %s.", name, fe.Param())
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", name, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s field must be at least %s.", name, fe.Param())
	case "lte":
		return fmt.Sprintf("The %s field must not be greater than %s.", name, fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", name)
	}
}

func label(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func isBlank(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && strings.TrimSpace(s) == ""
}

// toInteger accepts integral JSON numbers and base-10 integer strings.
func toInteger(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > math.MaxInt64/2 {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		parsed, err := v.Int64()
		return parsed, err == nil
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}
