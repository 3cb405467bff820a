package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

const (
	msgIntType      = "Input should be a valid integer"
	msgIntFromFloat = "Input should be a valid integer, got a number with a fractional part"
	msgIntParsing   = "Input should be a valid integer, unable to parse string as an integer"
	msgIntTooLarge  = "Input should be a valid integer, unable to parse string as an integer, exceeded maximum size"
	msgStringType   = "Input should be a valid string"
)

// Decode reads a JSON object into dst and checks its validate rules.
// Every failing field is reported, in field declaration order.
func (v *Validator) Decode(body []byte, dst interface{}) error {
	var decodeErrs Errors
	if err := DecodeJSON(body, dst); err != nil {
		if !errors.As(err, &decodeErrs) {
			return err
		}
		for _, fe := range decodeErrs {
			if fe.Type == "json_invalid" || len(fe.Loc) < 2 {
				return decodeErrs
			}
		}
	}

	failed := make(map[string]bool, len(decodeErrs))
	for _, fe := range decodeErrs {
		failed[fieldOf(fe)] = true
	}
	out := append(Errors{}, decodeErrs...)

	if err := v.Struct(dst); err != nil {
		var ruleErrs Errors
		if !errors.As(err, &ruleErrs) {
			return err
		}
		for _, fe := range ruleErrs {
			// A field that could not be decoded is left nil and would show up as missing.
			if !failed[fieldOf(fe)] {
				out = append(out, fe)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}

	order := fieldOrder(reflect.TypeOf(dst).Elem())
	sort.SliceStable(out, func(i, j int) bool {
		return order[fieldOf(out[i])] < order[fieldOf(out[j])]
	})
	return out
}

func fieldOf(fe FieldError) string {
	if len(fe.Loc) < 2 {
		return ""
	}
	return fmt.Sprint(fe.Loc[1])
}

func fieldOrder(t reflect.Type) map[string]int {
	order := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		order[jsonName(t.Field(i))] = i
	}
	return order
}

func jsonName(sf reflect.StructField) string {
	name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return sf.Name
	}
	return name
}

// DecodeJSON decodes a JSON object into the struct pointed to by dst one
// field at a time. Absent keys leave the field untouched; a key that is
// present but cannot be converted, null included, is reported against that
// field. Integers are read leniently: integral floats and numeric strings
// are accepted.
func DecodeJSON(body []byte, dst interface{}) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return Errors{{Type: "missing", Loc: []interface{}{"body"}, Msg: "Field required"}}
	}

	var probe interface{}
	if err := json.Unmarshal(body, &probe); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return Errors{{
				Type: "json_invalid",
				Loc:  []interface{}{"body", syntaxErr.Offset},
				Msg:  "JSON decode error",
				Ctx:  map[string]interface{}{"error": syntaxErr.Error()},
			}}
		}
		return err
	}

	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	if raw == nil {
		return Errors{{Type: "missing", Loc: []interface{}{"body"}, Msg: "Field required"}}
	}
	fields, ok := raw.(map[string]interface{})
	if !ok {
		return Errors{{
			Type:  "model_attributes_type",
			Loc:   []interface{}{"body"},
			Msg:   "Input should be a valid dictionary or object to extract fields from",
			Input: raw,
		}}
	}

	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("validation: decode target must be a struct pointer, got %T", dst)
	}
	rv = rv.Elem()
	rt := rv.Type()

	var errs Errors
	for i := 0; i < rt.NumField(); i++ {
		name := jsonName(rt.Field(i))
		if name == "" {
			continue
		}
		value, present := fields[name]
		if !present {
			continue
		}
		if fe := setField(rv.Field(i), value, []interface{}{"body", name}); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func setField(field reflect.Value, value interface{}, loc []interface{}) *FieldError {
	target := field.Type()
	if target.Kind() == reflect.Ptr {
		target = target.Elem()
	}

	converted := reflect.New(target).Elem()
	switch target.Kind() {
	case reflect.String:
		s, ok := value.(string)
		if !ok {
			if target == categoryType {
				fe := enumError(loc, value)
				return &fe
			}
			return &FieldError{Type: "string_type", Loc: loc, Msg: msgStringType, Input: value}
		}
		converted.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, fe := toInt(value, loc)
		if fe != nil {
			return fe
		}
		if converted.OverflowInt(n) {
			return &FieldError{Type: "int_parsing_size", Loc: loc, Msg: msgIntTooLarge, Input: value}
		}
		converted.SetInt(n)
	default:
		return &FieldError{
			Type:  "type_error",
			Loc:   loc,
			Msg:   fmt.Sprintf("Input should be a valid %s", target.Kind()),
			Input: value,
		}
	}

	if field.Kind() == reflect.Ptr {
		ptr := reflect.New(target)
		ptr.Elem().Set(converted)
		field.Set(ptr)
		return nil
	}
	field.Set(converted)
	return nil
}

func toInt(value interface{}, loc []interface{}) (int64, *FieldError) {
	switch v := value.(type) {
	case json.Number:
		if n, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
			return n, nil
		}
		f, err := v.Float64()
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, &FieldError{Type: "int_type", Loc: loc, Msg: msgIntType, Input: v}
		}
		if f != math.Trunc(f) {
			return 0, &FieldError{Type: "int_from_float", Loc: loc, Msg: msgIntFromFloat, Input: v}
		}
		n, ok := floatToInt(f)
		if !ok {
			return 0, &FieldError{Type: "int_parsing_size", Loc: loc, Msg: msgIntTooLarge, Input: v}
		}
		return n, nil
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) {
			if n, ok := floatToInt(f); ok {
				return n, nil
			}
		}
		return 0, &FieldError{Type: "int_parsing", Loc: loc, Msg: msgIntParsing, Input: v}
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	}
	return 0, &FieldError{Type: "int_type", Loc: loc, Msg: msgIntType, Input: value}
}

// floatToInt converts an integral float, rejecting values outside int64.
func floatToInt(f float64) (int64, bool) {
	if math.IsInf(f, 0) || math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
