package controllers

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"todo-be/internal/apperror"
	"todo-be/internal/dates"
	"todo-be/internal/middleware"
)

var registerOnce sync.Once

// RegisterValidators adds the iso8601 and notpast tags to gin's validator and
// makes field errors report JSON names. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "uri", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})
		_ = v.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
			return dates.Valid(fl.Field().String())
		})
		_ = v.RegisterValidation("notpast", func(fl validator.FieldLevel) bool {
			return dates.NotPast(fl.Field().String(), time.Now())
		})
	})
}

// fieldMessages holds client-facing messages keyed by "field.tag"
var fieldMessages = map[string]string{
	"email.required":    "Invalid email format",
	"email.email":       "Invalid email format",
	"password.required": "Password is required",
	"password.min":      "Password must be at least 6 characters long",
	"content.required":  "Content is required",
	"dueDate.required":  "Invalid due date",
	"dueDate.iso8601":   "Invalid due date format",
	"dueDate.notpast":   "Due date cannot be in the past",
	"status.oneof":      "Invalid status",
	"id.required":       "Invalid todo ID",
	"id.uuid":           "Invalid todo ID",
}

// bindError converts a gin binding failure into a typed error
func bindError(err error) error {
	if middleware.IsBodyTooLarge(err) {
		return middleware.PayloadTooLarge()
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperror.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
		}
		return apperror.Validation("Validation failed", fields...)
	}

	if errors.Is(err, io.EOF) {
		return apperror.Validation("Request body is required")
	}
	return apperror.Validation("Invalid request body")
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("%s failed the %s check", fe.Field(), fe.Tag())
}
