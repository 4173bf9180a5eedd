// Package form validates user input before anything is sent to the backend.
package form

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"blogger-web/internal/model"
)

var loginPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]*$`)

// Messages are catalog keys; the view layer translates them.
var required = validation.Required.Error("form.required")

// Errors maps a field name (its JSON name) to the first problem found:
// a message key for local checks, the backend's text for its rejections.
type Errors map[string]string

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e Errors) Get(field string) string {
	return e[field]
}

// AsErrors extracts the field errors carried by err, if any.
func AsErrors(err error) (Errors, bool) {
	var fe Errors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

func fromOzzo(err error) error {
	if err == nil {
		return nil
	}

	var ve validation.Errors
	if !errors.As(err, &ve) {
		return err
	}

	out := Errors{}
	for field, fieldErr := range ve {
		if fieldErr != nil {
			out[field] = fieldErr.Error()
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func ValidateBlog(in *model.BlogInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.WebsiteURL = strings.TrimSpace(in.WebsiteURL)

	return fromOzzo(validation.ValidateStruct(in,
		validation.Field(&in.Name, required, validation.RuneLength(1, 15).Error("form.blog_name_length")),
		validation.Field(&in.Description, required, validation.RuneLength(1, 500).Error("form.blog_description_length")),
		validation.Field(&in.WebsiteURL,
			required,
			validation.RuneLength(1, 100).Error("form.website_length"),
			is.URL.Error("form.website_url"),
		),
	))
}

// ValidatePost covers both the nested and the standalone post forms; the
// target blog is always part of the input.
func ValidatePost(in *model.PostInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.ShortDescription = strings.TrimSpace(in.ShortDescription)
	in.Content = strings.TrimSpace(in.Content)
	in.BlogID = strings.TrimSpace(in.BlogID)

	return fromOzzo(validation.ValidateStruct(in,
		validation.Field(&in.Title, required, validation.RuneLength(2, 30).Error("form.post_title_length")),
		validation.Field(&in.ShortDescription, required, validation.RuneLength(3, 50).Error("form.post_short_length")),
		validation.Field(&in.Content, required, validation.RuneLength(5, 1000).Error("form.post_content_length")),
		validation.Field(&in.BlogID, validation.Required.Error("form.blog_required")),
	))
}

func ValidateComment(in *model.CommentInput) error {
	in.Content = strings.TrimSpace(in.Content)

	return fromOzzo(validation.ValidateStruct(in,
		validation.Field(&in.Content,
			validation.Required.Error("form.comment_required"),
			validation.RuneLength(20, 300).Error("form.comment_length"),
		),
	))
}

// ValidateUser covers both admin user creation and self registration.
func ValidateUser(in *model.UserInput) error {
	in.Login = strings.TrimSpace(in.Login)
	in.Email = strings.TrimSpace(in.Email)

	return fromOzzo(validation.ValidateStruct(in,
		validation.Field(&in.Login,
			required,
			validation.RuneLength(3, 10).Error("form.login_length"),
			validation.Match(loginPattern).Error("form.login_pattern"),
		),
		validation.Field(&in.Email, required, is.Email.Error("form.email")),
		validation.Field(&in.Password,
			required,
			validation.RuneLength(6, 20).Error("form.password_length"),
		),
	))
}

func ValidateLogin(in *model.LoginInput) error {
	in.LoginOrEmail = strings.TrimSpace(in.LoginOrEmail)

	return fromOzzo(validation.ValidateStruct(in,
		validation.Field(&in.LoginOrEmail, required),
		validation.Field(&in.Password, required),
	))
}

func ValidateRole(raw string) (model.Role, error) {
	err := validation.Validate(raw,
		required,
		validation.In(string(model.RoleUser), string(model.RoleAdmin)).Error("form.role"),
	)
	if err != nil {
		return "", Errors{"role": err.Error()}
	}
	return model.Role(raw), nil
}
