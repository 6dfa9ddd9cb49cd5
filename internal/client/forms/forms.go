// Package forms validates user input before it reaches the stores. The
// stores deliberately do not re-validate field formats — that contract puts
// the responsibility here, in the view layer, and keeps server-side
// rejections the exception path. The rules mirror the server's own checks.
package forms

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"profilehub/internal/client/api"
	"profilehub/internal/client/models"
)

// LoginForm is the credential pair for an authentication attempt.
type LoginForm struct {
	Email    string
	Password string
}

func (f LoginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, validation.Required, is.Email),
		validation.Field(&f.Password, validation.Required),
	)
}

// RegisterForm is the full registration payload as entered by the user.
// DateOfBirth is the raw YYYY-MM-DD string; ToRequest parses it.
type RegisterForm struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
	PhoneNumber     string
	DateOfBirth     string
	Gender          string
	Interests       []string
	Bio             string
}

func (f RegisterForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.FullName, validation.Required, validation.Length(1, 100)),
		validation.Field(&f.Email, validation.Required, is.Email),
		validation.Field(&f.Password, validation.Required, validation.Length(6, 100)),
		validation.Field(
			&f.ConfirmPassword,
			validation.Required,
			validation.By(stringEquals(f.Password, "passwords do not match")),
		),
		validation.Field(&f.PhoneNumber, validation.Length(7, 20)),
		validation.Field(&f.DateOfBirth, validation.Required, validation.By(validDate)),
		validation.Field(&f.Gender, validation.Required, validation.By(validGender)),
		validation.Field(&f.Bio, validation.Length(0, 500)),
	)
}

// ToRequest converts the validated form into the wire request.
func (f RegisterForm) ToRequest() (api.RegisterRequest, error) {
	dob, err := models.ParseDate(f.DateOfBirth)
	if err != nil {
		return api.RegisterRequest{}, err
	}
	return api.RegisterRequest{
		FullName:        f.FullName,
		Email:           f.Email,
		Password:        f.Password,
		ConfirmPassword: f.ConfirmPassword,
		PhoneNumber:     f.PhoneNumber,
		DateOfBirth:     dob,
		Gender:          models.Gender(f.Gender),
		Interests:       models.TagSet(f.Interests),
		Bio:             f.Bio,
	}, nil
}

// ProfileEditForm holds profile changes; empty fields mean "keep as is".
type ProfileEditForm struct {
	FullName    string
	Email       string
	PhoneNumber string
	DateOfBirth string
	Gender      string
	Interests   []string
	Bio         string
}

// Validate checks formats of the fields that were actually provided; blank
// fields are skipped.
func (f ProfileEditForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.FullName, validation.Length(1, 100)),
		validation.Field(&f.Email, is.Email),
		validation.Field(&f.PhoneNumber, validation.Length(7, 20)),
		validation.Field(&f.DateOfBirth, validation.By(validDateOrBlank)),
		validation.Field(&f.Gender, validation.By(validGenderOrBlank)),
		validation.Field(&f.Bio, validation.Length(0, 500)),
	)
}

// ToUpdate builds a partial update carrying only the provided fields.
func (f ProfileEditForm) ToUpdate() (api.ProfileUpdate, error) {
	var upd api.ProfileUpdate

	if f.FullName != "" {
		upd.FullName = &f.FullName
	}
	if f.Email != "" {
		upd.Email = &f.Email
	}
	if f.PhoneNumber != "" {
		upd.PhoneNumber = &f.PhoneNumber
	}
	if f.DateOfBirth != "" {
		dob, err := models.ParseDate(f.DateOfBirth)
		if err != nil {
			return api.ProfileUpdate{}, err
		}
		upd.DateOfBirth = &dob
	}
	if f.Gender != "" {
		g := models.Gender(f.Gender)
		upd.Gender = &g
	}
	if len(f.Interests) > 0 {
		tags := models.TagSet(f.Interests)
		upd.Interests = &tags
	}
	if f.Bio != "" {
		upd.Bio = &f.Bio
	}
	return upd, nil
}

func stringEquals(expected, message string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != expected {
			return errors.New(message)
		}
		return nil
	}
}

func validDate(value interface{}) error {
	s, _ := value.(string)
	if _, err := models.ParseDate(s); err != nil {
		return errors.New("must be a date in YYYY-MM-DD format")
	}
	return nil
}

func validDateOrBlank(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	return validDate(value)
}

func validGender(value interface{}) error {
	s, _ := value.(string)
	if !models.Gender(s).Valid() {
		return errors.New("must be one of Male, Female, Other")
	}
	return nil
}

func validGenderOrBlank(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	return validGender(value)
}
