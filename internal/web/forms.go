package web

import (
	"github.com/go-playground/validator/v10"
)

type RegisterForm struct {
	Username string `validate:"required,alphanum,min=3,max=30"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Confirm  string `validate:"required,eqfield=Password"`
}

type AuthorForm struct {
	Name string `validate:"required,min=2,max=120"`
	Bio  string `validate:"max=2000"`
}

type QuoteForm struct {
	Text     string `validate:"required,max=2000"`
	Tags     string `validate:"max=500"`
	AuthorID int64  `validate:"required,gt=0"`
}

type ResetRequestForm struct {
	Email string `validate:"required,email"`
}

type ResetConfirmForm struct {
	Token    string `validate:"required"`
	Password string `validate:"required,min=8"`
	Confirm  string `validate:"required,eqfield=Password"`
}

var fieldMessages = map[string]string{
	"required": "This field is required.",
	"alphanum": "Only letters and digits are allowed.",
	"min":      "This value is too short.",
	"max":      "This value is too long.",
	"email":    "Enter a valid email address.",
	"eqfield":  "The two values do not match.",
	"gt":       "Choose a value from the list.",
}

// formErrors turns validator output into a field name to message map the
// templates can render next to each input.
func formErrors(err error) map[string]string {
	errs := make(map[string]string)

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs[""] = "Invalid form submission."
		return errs
	}

	for _, fieldErr := range validationErrs {
		msg, ok := fieldMessages[fieldErr.Tag()]
		if !ok {
			msg = "This value is invalid."
		}
		errs[fieldErr.Field()] = msg
	}

	return errs
}
