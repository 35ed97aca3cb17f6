package forms

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	model "blogicum/internal/domain/models"
)

// DateTimeLayout is the value format of an HTML datetime-local input.
const DateTimeLayout = "2006-01-02T15:04"

type PostForm struct {
	Title      string `form:"title" validate:"required,max=256"`
	Text       string `form:"text" validate:"required"`
	PubDate    string `form:"pub_date" validate:"required,datetime=2006-01-02T15:04"`
	CategoryID string `form:"category" validate:"omitempty,choice"`
	LocationID string `form:"location" validate:"omitempty,choice"`
	ClearImage bool   `form:"image_clear"`

	// CurrentImage is the stored image of the post being edited.
	CurrentImage string             `form:"-"`
	Image        *model.ImageUpload `form:"-"`
	file         multipart.File
}

// PostFormFrom fills the form with the current values of a post.
func PostFormFrom(post *model.Post) *PostForm {
	form := &PostForm{
		Title:   post.Title,
		Text:    post.Text,
		PubDate: post.PubDate.Local().Format(DateTimeLayout),
	}
	if post.CategoryID != nil {
		form.CategoryID = strconv.FormatInt(*post.CategoryID, 10)
	}
	if post.LocationID != nil {
		form.LocationID = strconv.FormatInt(*post.LocationID, 10)
	}
	if post.Image != nil {
		form.CurrentImage = *post.Image
	}
	return form
}

// ParsePostForm reads a urlencoded or multipart post form. The returned form
// must be closed once the upload has been consumed.
func ParsePostForm(r *http.Request, validate *validator.Validate) (*PostForm, FieldErrors) {
	errs := FieldErrors{}
	form := &PostForm{}
	if err := bind(r, form); err != nil {
		errs.Add(NonField, "The submitted data was not valid.")
		return &PostForm{}, errs
	}
	form.Title = strings.TrimSpace(form.Title)
	form.Text = strings.TrimSpace(form.Text)
	form.PubDate = strings.TrimSpace(form.PubDate)
	form.CategoryID = strings.TrimSpace(form.CategoryID)
	form.LocationID = strings.TrimSpace(form.LocationID)

	for field, msg := range check(validate, form) {
		errs.Add(field, msg)
	}

	if r.MultipartForm != nil {
		file, header, err := r.FormFile("image")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			errs.Add("image", "Upload a valid image.")
		case header.Size == 0:
			_ = file.Close()
		default:
			form.file = file
			form.Image = &model.ImageUpload{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
				Content:     file,
			}
		}
	}
	if form.Image != nil && form.ClearImage {
		errs.Add("image", "Please either submit a file or check the clear checkbox, not both.")
	}

	return form, errs
}

func (f *PostForm) Close() error {
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}

func (f *PostForm) CreateDTO() *model.CreatePostDTO {
	return &model.CreatePostDTO{
		Title:      f.Title,
		Text:       f.Text,
		PubDate:    f.pubDate(),
		CategoryID: optionalID(f.CategoryID),
		LocationID: optionalID(f.LocationID),
		Image:      f.Image,
	}
}

func (f *PostForm) UpdateDTO() *model.UpdatePostDTO {
	return &model.UpdatePostDTO{
		Title:      f.Title,
		Text:       f.Text,
		PubDate:    f.pubDate(),
		CategoryID: optionalID(f.CategoryID),
		LocationID: optionalID(f.LocationID),
		Image:      f.Image,
		ClearImage: f.ClearImage,
	}
}

// Selected reports whether id is the chosen category or location value.
func (f *PostForm) Selected(value string, id int64) bool {
	return value == strconv.FormatInt(id, 10)
}

func (f *PostForm) pubDate() time.Time {
	t, err := time.ParseInLocation(DateTimeLayout, f.PubDate, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// optionalID converts a validated choice; an empty choice means none.
func optionalID(raw string) *int64 {
	id, ok := parseChoice(raw)
	if !ok {
		return nil
	}
	return &id
}
