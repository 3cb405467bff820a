// Package validation checks request payloads and reports failures in the
// {"detail": [...]} shape the product API has always returned.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"produk/internal/models"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one failed rule on one input location.
type FieldError struct {
	Type  string                 `json:"type"`
	Loc   []interface{}          `json:"loc"`
	Msg   string                 `json:"msg"`
	Input interface{}            `json:"input,omitempty"`
	Ctx   map[string]interface{} `json:"ctx,omitempty"`
}

// Errors is returned whenever a request is rejected before reaching storage.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", locString(fe.Loc), fe.Msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func locString(loc []interface{}) string {
	parts := make([]string, len(loc))
	for i, l := range loc {
		parts[i] = fmt.Sprint(l)
	}
	return strings.Join(parts, ".")
}

var categoryType = reflect.TypeOf(models.Category(""))

// Validator wraps validator.Validate with the product rules registered.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports fields by their JSON names.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		return models.Category(field.String()).IsValid()
	})
	return &Validator{validate: v}
}

// Struct validates a body payload. It returns Errors when any rule fails.
func (v *Validator) Struct(payload interface{}) error {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := make(Errors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, translate(fe))
	}
	return out
}

func translate(fe validator.FieldError) FieldError {
	loc := []interface{}{"body", fe.Field()}
	input := fe.Value()
	switch fe.Tag() {
	case "required":
		return FieldError{Type: "missing", Loc: loc, Msg: "Field required"}
	case "min":
		n := paramInt(fe.Param())
		return FieldError{
			Type:  "string_too_short",
			Loc:   loc,
			Msg:   fmt.Sprintf("String should have at least %d %s", n, plural(n, "character")),
			Input: input,
			Ctx:   map[string]interface{}{"min_length": n},
		}
	case "max":
		n := paramInt(fe.Param())
		return FieldError{
			Type:  "string_too_long",
			Loc:   loc,
			Msg:   fmt.Sprintf("String should have at most %d %s", n, plural(n, "character")),
			Input: input,
			Ctx:   map[string]interface{}{"max_length": n},
		}
	case "gte":
		n := paramInt(fe.Param())
		return FieldError{
			Type:  "greater_than_equal",
			Loc:   loc,
			Msg:   fmt.Sprintf("Input should be greater than or equal to %d", n),
			Input: input,
			Ctx:   map[string]interface{}{"ge": n},
		}
	case "category":
		return enumError(loc, input)
	}
	return FieldError{
		Type:  "value_error",
		Loc:   loc,
		Msg:   fmt.Sprintf("Value error, failed on the '%s' rule", fe.Tag()),
		Input: input,
	}
}

func enumError(loc []interface{}, input interface{}) FieldError {
	choices := models.CategoryChoices()
	return FieldError{
		Type:  "enum",
		Loc:   loc,
		Msg:   "Input should be " + choices,
		Input: input,
		Ctx:   map[string]interface{}{"expected": choices},
	}
}

func paramInt(param string) int {
	n, err := strconv.Atoi(param)
	if err != nil {
		return 0
	}
	return n
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// PathInt parses an integer path parameter.
func PathInt(name, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, Errors{{
			Type:  "int_parsing",
			Loc:   []interface{}{"path", name},
			Msg:   "Input should be a valid integer, unable to parse string as an integer",
			Input: raw,
		}}
	}
	return n, nil
}
