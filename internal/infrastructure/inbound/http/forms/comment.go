package forms

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	model "blogicum/internal/domain/models"
)

type CommentForm struct {
	Text string `form:"text" validate:"required"`
}

func CommentFormFrom(comment *model.Comment) *CommentForm {
	return &CommentForm{Text: comment.Text}
}

func ParseCommentForm(r *http.Request, validate *validator.Validate) (*CommentForm, FieldErrors) {
	form := &CommentForm{}
	if err := bind(r, form); err != nil {
		return &CommentForm{}, FieldErrors{NonField: "The submitted data was not valid."}
	}
	form.Text = strings.TrimSpace(form.Text)
	return form, check(validate, form)
}
