package forms

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	model "blogicum/internal/domain/models"
)

type ProfileForm struct {
	Username  string `form:"username" validate:"required,max=150,username"`
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
	Email     string `form:"email" validate:"omitempty,max=254,email"`
}

func ProfileFormFrom(user *model.User) *ProfileForm {
	return &ProfileForm{
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}

func ParseProfileForm(r *http.Request, validate *validator.Validate) (*ProfileForm, FieldErrors) {
	form := &ProfileForm{}
	if err := bind(r, form); err != nil {
		return &ProfileForm{}, FieldErrors{NonField: "The submitted data was not valid."}
	}
	form.Username = strings.TrimSpace(form.Username)
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	form.Email = strings.TrimSpace(form.Email)
	return form, check(validate, form)
}

func (f *ProfileForm) DTO() *model.UpdateProfileDTO {
	return &model.UpdateProfileDTO{
		Username:  f.Username,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
	}
}
