package setting

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Key names a setting with a known value shape.
type Key string

const (
	KeySiteTitle   Key = "site_title"
	KeyName        Key = "name"
	KeyTitle       Key = "title"
	KeyBio         Key = "bio"
	KeyEmail       Key = "email"
	KeySocialLinks Key = "social_links"
	KeySkills      Key = "skills"
)

// SocialLinks is the value of KeySocialLinks.
type SocialLinks struct {
	Github   string `json:"github"   validate:"omitempty,url"`
	Linkedin string `json:"linkedin" validate:"omitempty,url"`
	Twitter  string `json:"twitter"  validate:"omitempty,url"`
}

// Skill is one element of the KeySkills value.
type Skill struct {
	Name  string `json:"name"  validate:"required"`
	Level int    `json:"level" validate:"min=0,max=100"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Defaults returns the settings seeded into an empty store.
func Defaults() map[Key]any {
	return map[Key]any{
		KeySiteTitle: "Portfolio",
		KeyName:      "John Doe",
		KeyTitle:     "Full Stack Developer",
		KeyBio: "I build modern web applications with cutting-edge technologies. " +
			"Passionate about creating elegant solutions to complex problems.",
		KeyEmail: "hello@example.com",
		KeySocialLinks: SocialLinks{
			Github:   "https://github.com",
			Linkedin: "https://linkedin.com",
			Twitter:  "https://twitter.com",
		},
		KeySkills: []Skill{
			{Name: "JavaScript", Level: 90},
			{Name: "TypeScript", Level: 85},
			{Name: "React", Level: 90},
			{Name: "Next.js", Level: 85},
			{Name: "Node.js", Level: 80},
			{Name: "Python", Level: 75},
			{Name: "SQL", Level: 80},
			{Name: "Docker", Level: 70},
		},
	}
}

// Validate checks raw against the shape of key. Unknown keys accept any JSON value.
func Validate(key string, raw json.RawMessage) error {
	if key == "" {
		return ErrSettingKeyEmpty
	}

	if !json.Valid(raw) {
		return fmt.Errorf("%w: %s is not valid JSON", ErrInvalidValue, key)
	}

	switch Key(key) {
	case KeySiteTitle, KeyName, KeyTitle, KeyBio:
		var s string
		return decodeStrict(key, raw, &s)
	case KeyEmail:
		var s string
		if err := decodeStrict(key, raw, &s); err != nil {
			return err
		}

		if s != "" {
			return check(key, validate.Var(s, "email"))
		}
	case KeySocialLinks:
		var links SocialLinks
		if err := decodeStrict(key, raw, &links); err != nil {
			return err
		}

		return check(key, validate.Struct(links))
	case KeySkills:
		var skills []Skill
		if err := decodeStrict(key, raw, &skills); err != nil {
			return err
		}

		for _, skill := range skills {
			if err := check(key, validate.Struct(skill)); err != nil {
				return err
			}
		}
	}

	return nil
}

func decodeStrict(key string, raw json.RawMessage, v any) error {
	// null decodes into anything without an error
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return fmt.Errorf("%w: %s must not be null", ErrInvalidValue, key)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrInvalidValue, key, err.Error())
	}

	return nil
}

func check(key string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrInvalidValue, key, err.Error())
	}

	return nil
}
