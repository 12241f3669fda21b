package services

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/dmitrijs2005/gophsocial/internal/client/models"
)

const (
	maxUsernameLen = 100
	minPasswordLen = 3
	maxPasswordLen = 72
	maxTitleLen    = 100
	maxContentLen  = 1000
)

var errPasswordMismatch = errors.New("passwords do not match")

func validateCredentials(c models.Credentials) error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, is.Email),
		validation.Field(&c.Password, validation.Required),
	)
}

func validateRegistration(r models.RegisterRequest) error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, maxUsernameLen)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(minPasswordLen, maxPasswordLen)),
	)
	if err != nil {
		return err
	}
	if r.ConfirmPassword != r.Password {
		return errPasswordMismatch
	}
	return nil
}

func validatePost(p models.NewPost) error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, maxTitleLen)),
		validation.Field(&p.Content, validation.Required, validation.Length(1, maxContentLen)),
	)
}

func validateComment(content string) error {
	return validation.Validate(content, validation.Required, validation.Length(1, maxContentLen))
}
