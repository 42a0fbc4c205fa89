package project

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/folio-cms/folio/internal/db/models"
	"github.com/folio-cms/folio/internal/slug"
)

// Input holds every mutable project field. It is the body of create and update requests.
type Input struct {
	Title        string               `json:"title"        validate:"required"`
	Slug         string               `json:"slug"         validate:"required,slug"`
	Description  string               `json:"description"  validate:"required"`
	Content      *string              `json:"content"`
	ImageURL     *string              `json:"imageUrl"     validate:"omitempty,url"`
	LiveURL      *string              `json:"liveUrl"      validate:"omitempty,url"`
	GithubURL    *string              `json:"githubUrl"    validate:"omitempty,url"`
	Technologies []string             `json:"technologies" validate:"dive,required"`
	Featured     bool                 `json:"featured"`
	Status       models.ProjectStatus `json:"status"       validate:"omitempty,oneof=draft published"`
	Order        int                  `json:"order"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slug.Valid(fl.Field().String())
	})

	return v
}

// normalize trims the required text fields and turns empty optional fields into nil.
func (in *Input) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	in.Description = strings.TrimSpace(in.Description)

	for _, p := range []**string{&in.Content, &in.ImageURL, &in.LiveURL, &in.GithubURL} {
		if *p != nil && strings.TrimSpace(**p) == "" {
			*p = nil
		}
	}

	in.Technologies = lo.Map(in.Technologies, func(t string, _ int) string { return strings.TrimSpace(t) })

	if in.Status == "" {
		in.Status = models.ProjectStatusDraft
	}
}

// Validate normalizes in and checks it. Errors wrap ErrInvalidProject.
func (in *Input) Validate() error {
	in.normalize()

	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %s", ErrInvalidProject, err.Error())
	}

	msgs := lo.Map(verrs, func(fe validator.FieldError, _ int) string {
		switch fe.Tag() {
		case "required":
			return fe.Field() + " is required"
		case "slug":
			return fe.Field() + " must contain only lowercase letters, digits and single hyphens"
		case "url":
			return fe.Field() + " must be a valid URL"
		case "oneof":
			return fe.Field() + " must be one of: " + fe.Param()
		default:
			return fe.Field() + " is invalid"
		}
	})

	return fmt.Errorf("%w: %s", ErrInvalidProject, strings.Join(msgs, "; "))
}

func (in *Input) apply(p *models.Project) {
	p.Title = in.Title
	p.Slug = in.Slug
	p.Description = in.Description
	p.Content = in.Content
	p.ImageURL = in.ImageURL
	p.LiveURL = in.LiveURL
	p.GithubURL = in.GithubURL
	p.Technologies = in.Technologies
	p.Featured = in.Featured
	p.Status = in.Status
	p.Order = in.Order
}
