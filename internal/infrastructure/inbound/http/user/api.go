package user_http

import (
	"net/url"

	"github.com/go-playground/validator/v10"

	user_service "blogicum/internal/domain/ports/input/user"
	ports "blogicum/internal/domain/ports/output"
	"blogicum/internal/infrastructure/config"
	"blogicum/internal/infrastructure/inbound/http/view"
)

type UserHandlers struct {
	Register *RegisterHandler
	Login    *LoginHandler
	Profile  *EditProfileHandler
}

func NewUserHandlers(
	userService user_service.Service,
	auth config.Auth,
	renderer view.Renderer,
	validate *validator.Validate,
	log ports.Logger,
) *UserHandlers {
	return &UserHandlers{
		Register: NewRegisterHandler(userService, renderer, validate, log),
		Login:    NewLoginHandler(userService, auth.CookieName, auth.SecureCookie, renderer, validate, log),
		Profile:  NewEditProfileHandler(userService, renderer, validate, log),
	}
}

func profileURL(username string) string {
	return "/profile/" + url.PathEscape(username)
}
