package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/taskhub/backend/pkg/response"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func enumValidator(set []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return contains(set, fl.Field().String())
	}
}

// Validator returns the shared schema validator with the domain enums registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("task_status", enumValidator(TaskStatuses))
		_ = v.RegisterValidation("priority", enumValidator(Priorities))
		_ = v.RegisterValidation("user_role", enumValidator(UserRoles))
		_ = v.RegisterValidation("project_role", enumValidator(ProjectRoles))
		_ = v.RegisterValidation("project_status", enumValidator(ProjectStatuses))
		_ = v.RegisterValidation("notification_type", enumValidator(NotificationTypes))
		validate = v
	})
	return validate
}

// Validate checks an entity against its schema tags. Failures come back as a
// ValidationError naming the first offending field.
func Validate(entity interface{}) error {
	err := Validator().Struct(entity)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return response.NewBadRequest(describe(fieldErrs[0]))
	}
	return response.NewBadRequest(err.Error())
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "required_without":
		return fmt.Sprintf("%s is required", field)
	case "excluded_with":
		return fmt.Sprintf("%s cannot be combined with %s", field, lowerFirst(fe.Param()))
	case "task_status":
		return fmt.Sprintf("%s must be one of %s", field, strings.Join(TaskStatuses, ", "))
	case "priority":
		return fmt.Sprintf("%s must be one of %s", field, strings.Join(Priorities, ", "))
	case "user_role":
		return fmt.Sprintf("%s must be one of %s", field, strings.Join(UserRoles, ", "))
	case "project_role":
		return fmt.Sprintf("%s must be one of %s", field, strings.Join(ProjectRoles, ", "))
	case "project_status":
		return fmt.Sprintf("%s must be one of %s", field, strings.Join(ProjectStatuses, ", "))
	case "notification_type":
		return fmt.Sprintf("%s must be one of %s", field, strings.Join(NotificationTypes, ", "))
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "hexcolor":
		return fmt.Sprintf("%s must be a hex color such as #1f6feb", field)
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at most %s items", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
