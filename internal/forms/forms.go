// Package forms declares the dashboard's input forms and validates them.
package forms

import (
	"errors"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
)

// Errors maps a form field name to its first failing message.
type Errors map[string]string

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field failed.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// SignIn is the sign-in form.
type SignIn struct {
	Email    string `form:"email" validate:"email"`
	Password string `form:"password" validate:"min=1"`
}

// SignUp is the account creation form.
type SignUp struct {
	Name            string `form:"name" validate:"min=2"`
	Email           string `form:"email" validate:"email"`
	Password        string `form:"password" validate:"min=8"`
	ConfirmPassword string `form:"confirmPassword" validate:"eqfield=Password"`
	Terms           bool   `form:"terms" validate:"required"`
}

// Profile is the public profile form.
type Profile struct {
	Name              string `form:"name" validate:"min=2"`
	Email             string `form:"email" validate:"email"`
	Phone             string `form:"phone"`
	Address           string `form:"address"`
	City              string `form:"city"`
	State             string `form:"state"`
	ZipCode           string `form:"zipCode"`
	Bio               string `form:"bio" validate:"max=500"`
	Occupation        string `form:"occupation"`
	Organization      string `form:"organization"`
	PreferredLanguage string `form:"preferredLanguage"`
}

// Password is the password change form.
type Password struct {
	CurrentPassword string `form:"currentPassword" validate:"min=1"`
	NewPassword     string `form:"newPassword" validate:"min=8"`
	ConfirmPassword string `form:"confirmPassword" validate:"min=8,eqfield=NewPassword"`
}

// Feedback is the assistant feedback card.
type Feedback struct {
	Rating  string `form:"rating" validate:"oneof=positive negative"`
	Comment string `form:"comment" validate:"max=2000"`
}

// messages holds the user-facing text per form field and rule.
var messages = map[string]map[string]string{
	"email": {
		"email": "Please enter a valid email address.",
	},
	"password": {
		"min": "Password must be at least 8 characters.",
	},
	"name": {
		"min": "Name must be at least 2 characters.",
	},
	"confirmPassword": {
		"eqfield": "Passwords do not match.",
		"min":     "Password must be at least 8 characters.",
	},
	"terms": {
		"required": "You must accept the terms and conditions.",
	},
	"bio": {
		"max": "Bio must not be longer than 500 characters.",
	},
	"currentPassword": {
		"min": "Please enter your current password.",
	},
	"newPassword": {
		"min": "Password must be at least 8 characters.",
	},
	"rating": {
		"oneof": "Please choose whether the answer was helpful.",
	},
	"comment": {
		"max": "Comment must not be longer than 2000 characters.",
	},
}

// Validator checks form structs against their tags.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report errors under the form field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// Validate returns Errors when form violates a rule, nil otherwise.
func (val *Validator) Validate(form any) error {
	err := val.v.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	// The sign-in password only needs to be present.
	if fe.Field() == "password" && fe.Tag() == "min" && fe.Param() == "1" {
		return "Password is required."
	}
	if byTag, ok := messages[fe.Field()]; ok {
		if msg, ok := byTag[fe.Tag()]; ok {
			return msg
		}
	}
	return "Invalid value."
}

var (
	decoder = form.NewDecoder()
	encoder = form.NewEncoder()
)

// Decode fills dst from posted values using its form tags. Fields that do
// not convert are reported as Errors.
func Decode(values url.Values, dst any) error {
	err := decoder.Decode(dst, values)
	if err == nil {
		return nil
	}
	var derrs form.DecodeErrors
	if !errors.As(err, &derrs) {
		return err
	}
	out := make(Errors, len(derrs))
	for field := range derrs {
		out[field] = "Invalid value."
	}
	return out
}

// Encode is the inverse of Decode.
func Encode(src any) url.Values {
	values, err := encoder.Encode(src)
	if err != nil {
		return url.Values{}
	}
	return values
}
