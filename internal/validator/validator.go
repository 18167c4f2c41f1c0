// Package validator provides custom validation functions for Gin's binding
// engine and a standalone validator for decoded backup files.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"continuum/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	standalone     *validator.Validate
	standaloneOnce sync.Once
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonTagName)
		registerCustom(v)
	}
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func registerCustom(v *validator.Validate) {
	_ = v.RegisterValidation("billing_cycle", validateBillingCycle)
	_ = v.RegisterValidation("subscription_category", validateSubscriptionCategory)
	_ = v.RegisterValidation("asset_category", validateAssetCategory)
}

// Struct validates s with the standalone validator. Field names in errors
// are the json keys, so a missing key reads "subscriptions[0].amount".
func Struct(s any) error {
	standaloneOnce.Do(func() {
		standalone = validator.New(validator.WithRequiredStructEnabled())
		standalone.RegisterTagNameFunc(jsonTagName)
		registerCustom(standalone)
	})
	return standalone.Struct(s)
}

// Describe turns a validation error into one readable sentence naming the
// first offending field. Other errors are returned as their message.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	field := fe.Namespace()
	// Drop the root struct name.
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	default:
		return fmt.Sprintf("%s failed the %s check", field, fe.Tag())
	}
}

func validateBillingCycle(fl validator.FieldLevel) bool {
	_, ok := models.ParseBillingCycle(fl.Field().String())
	return ok
}

func validateSubscriptionCategory(fl validator.FieldLevel) bool {
	_, ok := models.ParseSubscriptionCategory(fl.Field().String())
	return ok
}

func validateAssetCategory(fl validator.FieldLevel) bool {
	_, ok := models.ParseAssetCategory(fl.Field().String())
	return ok
}
