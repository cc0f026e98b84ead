package api

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"

	"github.com/kingrain94/realty-api/pkg/utils"
)

var localePattern = regexp.MustCompile(`^[a-z]{2,3}(-[a-z0-9]{2,8})?$`)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags and makes field errors
// report JSON names. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("unexpected gin validator engine")
		}
		v.RegisterTagNameFunc(jsonFieldName)
		if err := v.RegisterValidation("locale", validateLocale); err != nil {
			panic(err)
		}
		if err := v.RegisterValidation("slug", validateSlug); err != nil {
			panic(err)
		}
	})
}

func jsonFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// validateLocale accepts lowercase BCP 47 tags such as "en" or "pt-br".
func validateLocale(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !localePattern.MatchString(value) {
		return false
	}
	_, err := language.Parse(value)
	return err == nil
}

func validateSlug(fl validator.FieldLevel) bool {
	return utils.IsSlug(fl.Field().String())
}

// fieldPath drops the struct name from the namespace: "ListingRequest.price" → "price".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "locale":
		return "is not a valid locale"
	case "slug":
		return "must contain only lowercase letters, digits and dashes"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be %s characters long", fe.Param())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "hostname":
		return "must be a valid hostname"
	default:
		return "is invalid"
	}
}
