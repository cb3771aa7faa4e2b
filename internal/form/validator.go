package form

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	gerr "github.com/zero2prod/newsletter/internal/errors"
)

// Analog of validation.ValidateStruct that joins every field violation
// into a single ErrBadForm.
func ValidateStruct(structField interface{}, rules ...*validation.FieldRules) error {
	var violations []string

	for _, rule := range rules {
		err := validation.ValidateStruct(structField, rule)
		if err == nil {
			continue
		}
		var ve validation.Errors
		if !errors.As(err, &ve) {
			return err
		}
		for field, fieldErr := range ve {
			violations = append(violations, formatErrMsg(field+": "+fieldErr.Error()))
		}
	}
	if len(violations) == 0 {
		return nil
	}

	sort.Strings(violations)
	return fmt.Errorf("%w: %s", gerr.ErrBadForm, strings.Join(violations, " "))
}

func formatErrMsg(s string) string {
	return ucfirst(strings.Trim(s, " .")) + "."
}

func ucfirst(str string) string {
	for i, v := range str {
		return string(unicode.ToUpper(v)) + str[i+1:]
	}
	return ""
}
