package binder

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
)

// Path returns a binder that fills struct fields tagged `path:"name"` from
// extractor, typically chi.URLParam. Supported field kinds are string, signed
// and unsigned integers and bool. Missing parameters leave the field as is.
// Targets without any path tag yield ErrBinderNotApplicable.
func Path(extractor func(r *http.Request, key string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrFailedToParsePath)
		}

		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() {
			return fmt.Errorf("%w: target must be a non-nil pointer", ErrFailedToParsePath)
		}
		rv = rv.Elem()
		if rv.Kind() != reflect.Struct {
			return ErrBinderNotApplicable
		}

		rt := rv.Type()
		tagged := false
		for i := range rt.NumField() {
			sf := rt.Field(i)
			name, ok := sf.Tag.Lookup("path")
			if !ok || name == "" || name == "-" || !sf.IsExported() {
				continue
			}
			tagged = true

			value := extractor(r, name)
			if value == "" {
				continue
			}
			if err := setField(rv.Field(i), value); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrFailedToParsePath, name, err)
			}
		}

		if !tagged {
			return ErrBinderNotApplicable
		}
		return nil
	}
}

func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}
