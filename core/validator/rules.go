package validator

import (
	"fmt"
	"net/mail"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

func passRule() Rule {
	return Rule{Check: func() bool { return true }}
}

func requiredValidator(field string, value reflect.Value, _ []string) Rule {
	return Rule{
		Check: func() bool {
			switch value.Kind() {
			case reflect.String:
				return strings.TrimSpace(value.String()) != ""
			case reflect.Slice, reflect.Map, reflect.Array:
				return value.Len() > 0
			case reflect.Pointer, reflect.Interface:
				return !value.IsNil()
			default:
				return !value.IsZero()
			}
		},
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
			Code:    "required",
		},
	}
}

func minValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return passRule()
	}

	switch value.Kind() {
	case reflect.String:
		min, _ := strconv.Atoi(params[0])
		return Rule{
			Check: func() bool { return len(value.String()) >= min },
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be at least %d characters", min),
				Code:    "min",
			},
		}
	case reflect.Slice, reflect.Array:
		min, _ := strconv.Atoi(params[0])
		return Rule{
			Check: func() bool { return value.Len() >= min },
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must have at least %d items", min),
				Code:    "min",
			},
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		min, _ := strconv.ParseInt(params[0], 10, 64)
		return Rule{
			Check: func() bool { return value.Int() >= min },
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be at least %d", min),
				Code:    "min",
			},
		}
	case reflect.Float32, reflect.Float64:
		min, _ := strconv.ParseFloat(params[0], 64)
		return Rule{
			Check: func() bool { return value.Float() >= min },
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be at least %g", min),
				Code:    "min",
			},
		}
	default:
		return passRule()
	}
}

func maxValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return passRule()
	}

	switch value.Kind() {
	case reflect.String:
		max, _ := strconv.Atoi(params[0])
		return Rule{
			Check: func() bool { return len(value.String()) <= max },
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be at most %d characters", max),
				Code:    "max",
			},
		}
	case reflect.Slice, reflect.Array:
		max, _ := strconv.Atoi(params[0])
		return Rule{
			Check: func() bool { return value.Len() <= max },
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must have at most %d items", max),
				Code:    "max",
			},
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		max, _ := strconv.ParseInt(params[0], 10, 64)
		return Rule{
			Check: func() bool { return value.Int() <= max },
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be at most %d", max),
				Code:    "max",
			},
		}
	case reflect.Float32, reflect.Float64:
		max, _ := strconv.ParseFloat(params[0], 64)
		return Rule{
			Check: func() bool { return value.Float() <= max },
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be at most %g", max),
				Code:    "max",
			},
		}
	default:
		return passRule()
	}
}

func lenValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return passRule()
	}
	want, _ := strconv.Atoi(params[0])

	switch value.Kind() {
	case reflect.String:
		return Rule{
			Check: func() bool { return len(value.String()) == want },
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must be exactly %d characters", want),
				Code:    "len",
			},
		}
	case reflect.Slice, reflect.Array, reflect.Map:
		return Rule{
			Check: func() bool { return value.Len() == want },
			Error: ValidationError{
				Field:   field,
				Message: fmt.Sprintf("must have exactly %d items", want),
				Code:    "len",
			},
		}
	default:
		return passRule()
	}
}

func emailValidator(field string, value reflect.Value, _ []string) Rule {
	if value.Kind() != reflect.String {
		return passRule()
	}
	return Rule{
		Check: func() bool {
			s := value.String()
			if s == "" {
				return true // empty is "required"'s business
			}
			addr, err := mail.ParseAddress(s)
			return err == nil && addr.Address == s
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid email address",
			Code:    "email",
		},
	}
}

func uuidValidator(field string, value reflect.Value, _ []string) Rule {
	if value.Kind() != reflect.String {
		return passRule()
	}
	return Rule{
		Check: func() bool {
			s := value.String()
			if s == "" {
				return true
			}
			_, err := uuid.Parse(s)
			return err == nil
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid UUID",
			Code:    "uuid",
		},
	}
}

var alphanumRe = regexp.MustCompile(`^[a-zA-Z0-9]*$`)

func alphanumValidator(field string, value reflect.Value, _ []string) Rule {
	if value.Kind() != reflect.String {
		return passRule()
	}
	return Rule{
		Check: func() bool { return alphanumRe.MatchString(value.String()) },
		Error: ValidationError{
			Field:   field,
			Message: "must contain only letters and digits",
			Code:    "alphanum",
		},
	}
}

func numericValidator(field string, value reflect.Value, _ []string) Rule {
	if value.Kind() != reflect.String {
		return passRule()
	}
	return Rule{
		Check: func() bool {
			s := value.String()
			if s == "" {
				return true
			}
			_, err := strconv.ParseFloat(s, 64)
			return err == nil
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be numeric",
			Code:    "numeric",
		},
	}
}

func inValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) == 0 {
		return passRule()
	}
	return Rule{
		Check: func() bool {
			var s string
			switch value.Kind() {
			case reflect.String:
				s = value.String()
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				s = strconv.FormatInt(value.Int(), 10)
			default:
				return true
			}
			if s == "" {
				return true
			}
			for _, p := range params {
				if s == p {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be one of: " + strings.Join(params, ", "),
			Code:    "in",
		},
	}
}

func regexValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 || value.Kind() != reflect.String {
		return passRule()
	}
	re, err := regexp.Compile(params[0])
	if err != nil {
		return Rule{
			Check: func() bool { return false },
			Error: ValidationError{
				Field:   field,
				Message: "invalid regex pattern in validation tag",
				Code:    "regex",
			},
		}
	}
	return Rule{
		Check: func() bool {
			s := value.String()
			return s == "" || re.MatchString(s)
		},
		Error: ValidationError{
			Field:   field,
			Message: "has an invalid format",
			Code:    "regex",
		},
	}
}

func prefixValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 || value.Kind() != reflect.String {
		return passRule()
	}
	return Rule{
		Check: func() bool {
			s := value.String()
			return s == "" || strings.HasPrefix(s, params[0])
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must start with %q", params[0]),
			Code:    "prefix",
		},
	}
}

func suffixValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 || value.Kind() != reflect.String {
		return passRule()
	}
	return Rule{
		Check: func() bool {
			s := value.String()
			return s == "" || strings.HasSuffix(s, params[0])
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must end with %q", params[0]),
			Code:    "suffix",
		},
	}
}

func positiveValidator(field string, value reflect.Value, _ []string) Rule {
	return Rule{
		Check: func() bool {
			switch value.Kind() {
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				return value.Int() > 0
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				return value.Uint() > 0
			case reflect.Float32, reflect.Float64:
				return value.Float() > 0
			default:
				return true
			}
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be positive",
			Code:    "positive",
		},
	}
}

func nonZeroValidator(field string, value reflect.Value, _ []string) Rule {
	return Rule{
		Check: func() bool { return !value.IsZero() },
		Error: ValidationError{
			Field:   field,
			Message: "must not be zero",
			Code:    "nonzero",
		},
	}
}
