package view

import (
	model "blogicum/internal/domain/models"
	"blogicum/internal/infrastructure/inbound/http/forms"
)

type IndexPage struct {
	Base
	Page *model.PostPage
}

type CategoryPage struct {
	Base
	Category *model.Category
	Page     *model.PostPage
}

type ProfilePage struct {
	Base
	Profile *model.User
	Page    *model.PostPage
	IsOwner bool
}

type PostDetailPage struct {
	Base
	Post     *model.PostDetailed
	Comments []*model.CommentDetailed
	Form     *forms.CommentForm
	Errors   forms.FieldErrors
	CanEdit  bool
}

// PostFormPage serves the create, edit and delete confirmation views. Post is
// set for edit and delete, Delete switches the page to confirmation.
type PostFormPage struct {
	Base
	Form       *forms.PostForm
	Errors     forms.FieldErrors
	Categories []*model.Category
	Locations  []*model.Location
	Post       *model.PostDetailed
	Comments   []*model.CommentDetailed
	Delete     bool
}

type CommentFormPage struct {
	Base
	PostID  int64
	Comment *model.Comment
	Form    *forms.CommentForm
	Errors  forms.FieldErrors
	Delete  bool
}

type ProfileFormPage struct {
	Base
	Form   *forms.ProfileForm
	Errors forms.FieldErrors
}

type RegistrationPage struct {
	Base
	Form   *forms.RegisterForm
	Errors forms.FieldErrors
}

type LoginPage struct {
	Base
	Form   *forms.LoginForm
	Errors forms.FieldErrors
}

type NotFoundPage struct {
	Base
}

type CSRFFailurePage struct {
	Base
	Reason string
}

type ServerErrorPage struct {
	Base
}
