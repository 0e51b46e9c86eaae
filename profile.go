package main

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// computeBMI returns weight / height(m)^2 rounded to one decimal. Ties on the
// exact binary value round to even, the same rule the model was trained with.
func computeBMI(weightKG, heightCM float64) float64 {
	h := heightCM / 100.0
	v, _ := strconv.ParseFloat(strconv.FormatFloat(weightKG/(h*h), 'f', 1, 64), 64)
	return v
}

// bmi returns the caller's override when present, otherwise the derived value.
func (p userProfile) bmi() float64 {
	if p.BMI != nil {
		return *p.BMI
	}
	return computeBMI(p.WeightKG, p.HeightCM)
}

var registerTagNames sync.Once

// useJSONFieldNames makes validation errors report "weight_kg" instead of "WeightKG".
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// bindingMessage turns a ShouldBindJSON error into a single readable line.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request body"
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return field + " is invalid"
	}
}
