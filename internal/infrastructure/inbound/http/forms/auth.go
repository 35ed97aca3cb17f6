package forms

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	model "blogicum/internal/domain/models"
)

type RegisterForm struct {
	Username  string `form:"username" validate:"required,max=150,username"`
	Email     string `form:"email" validate:"omitempty,max=254,email"`
	Password1 string `form:"password1" validate:"required,min=8"`
	Password2 string `form:"password2" validate:"required,eqfield=Password1"`
}

func ParseRegisterForm(r *http.Request, validate *validator.Validate) (*RegisterForm, FieldErrors) {
	form := &RegisterForm{}
	if err := bind(r, form); err != nil {
		return &RegisterForm{}, FieldErrors{NonField: "The submitted data was not valid."}
	}
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)
	return form, check(validate, form)
}

func (f *RegisterForm) DTO() *model.RegisterUserDTO {
	return &model.RegisterUserDTO{
		Username: f.Username,
		Email:    f.Email,
		Password: f.Password1,
	}
}

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next"`
}

func ParseLoginForm(r *http.Request, validate *validator.Validate) (*LoginForm, FieldErrors) {
	form := &LoginForm{}
	if err := bind(r, form); err != nil {
		return &LoginForm{}, FieldErrors{NonField: "The submitted data was not valid."}
	}
	form.Username = strings.TrimSpace(form.Username)
	return form, check(validate, form)
}

// SafeNext returns next when it is a local absolute path and fallback
// otherwise.
func SafeNext(next, fallback string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}
