// Package validator checks struct fields against rules declared in
// `validate` tags. Rules are separated by semicolons, parameters follow a
// colon: `validate:"required;min:3;max:64"`.
//
// Failed rules are collected into ValidationErrors rather than stopping at
// the first failure, so callers can report every problem at once.
package validator

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// ValidatorFunc builds a Rule for a field value given the rule parameters.
type ValidatorFunc func(field string, value reflect.Value, params []string) Rule

var (
	registryMu sync.RWMutex
	registry   = map[string]ValidatorFunc{
		"required": requiredValidator,
		"min":      minValidator,
		"max":      maxValidator,
		"len":      lenValidator,
		"email":    emailValidator,
		"uuid":     uuidValidator,
		"alphanum": alphanumValidator,
		"numeric":  numericValidator,
		"in":       inValidator,
		"regex":    regexValidator,
		"prefix":   prefixValidator,
		"suffix":   suffixValidator,
		"positive": positiveValidator,
		"nonzero":  nonZeroValidator,
	}
)

// Register adds a custom rule to the registry, replacing any rule with the
// same name.
func Register(name string, fn ValidatorFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// ValidateStruct validates a struct based on its field tags. v must be a
// non-nil pointer to struct. It returns ValidationErrors when any rule
// fails, nil otherwise.
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("validator: must pass a pointer to struct")
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("validator: must pass a pointer to struct")
	}

	var errs ValidationErrors
	validateStructRecursive(rv, "", &errs)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateStructRecursive(rv reflect.Value, prefix string, errs *ValidationErrors) {
	rt := rv.Type()

	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		structField := rt.Field(i)
		tag := structField.Tag.Get("validate")
		if tag == "-" {
			continue
		}

		fieldPath := structField.Name
		if prefix != "" {
			fieldPath = prefix + "." + structField.Name
		}

		// Untagged nested structs are always descended into.
		if field.Kind() == reflect.Struct && tag == "" {
			validateStructRecursive(field, fieldPath, errs)
			continue
		}

		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				if tag != "" {
					validateField(fieldPath, field, tag, errs)
				}
				continue
			}
			elem := field.Elem()
			if elem.Kind() == reflect.Struct && tag == "" {
				validateStructRecursive(elem, fieldPath, errs)
			} else if tag != "" {
				validateField(fieldPath, elem, tag, errs)
			}
			continue
		}

		if tag == "" {
			continue
		}

		validateField(fieldPath, field, tag, errs)
	}
}

func validateField(fieldPath string, field reflect.Value, tag string, errs *ValidationErrors) {
	rules := strings.Split(tag, ";")

	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, ruleStr := range rules {
		ruleStr = strings.TrimSpace(ruleStr)
		if ruleStr == "" {
			continue
		}

		name, paramStr, _ := strings.Cut(ruleStr, ":")
		name = strings.TrimSpace(name)

		var params []string
		if paramStr = strings.TrimSpace(paramStr); paramStr != "" {
			params = strings.Split(paramStr, ",")
			for i := range params {
				params[i] = strings.TrimSpace(params[i])
			}
		}

		fn, ok := registry[name]
		if !ok {
			continue
		}
		rule := fn(fieldPath, field, params)
		if rule.Check != nil && !rule.Check() {
			*errs = append(*errs, rule.Error)
		}
	}
}
