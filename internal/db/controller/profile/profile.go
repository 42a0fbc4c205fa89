// Package profile reads and writes the known site settings as one typed value.
package profile

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/db/controller/setting"
)

// Profile is the typed view of the known settings keys.
type Profile struct {
	SiteTitle   string              `json:"site_title"`
	Name        string              `json:"name"`
	Title       string              `json:"title"`
	Bio         string              `json:"bio"`
	Email       string              `json:"email"`
	SocialLinks setting.SocialLinks `json:"social_links"`
	Skills      []setting.Skill     `json:"skills"`
}

// Default returns the profile built from setting.Defaults.
func Default() Profile {
	d := setting.Defaults()

	return Profile{
		SiteTitle:   d[setting.KeySiteTitle].(string),
		Name:        d[setting.KeyName].(string),
		Title:       d[setting.KeyTitle].(string),
		Bio:         d[setting.KeyBio].(string),
		Email:       d[setting.KeyEmail].(string),
		SocialLinks: d[setting.KeySocialLinks].(setting.SocialLinks),
		Skills:      d[setting.KeySkills].([]setting.Skill),
	}
}

func (p *Profile) fields() map[setting.Key]any {
	return map[setting.Key]any{
		setting.KeySiteTitle:   &p.SiteTitle,
		setting.KeyName:        &p.Name,
		setting.KeyTitle:       &p.Title,
		setting.KeyBio:         &p.Bio,
		setting.KeyEmail:       &p.Email,
		setting.KeySocialLinks: &p.SocialLinks,
		setting.KeySkills:      &p.Skills,
	}
}

// Load reads every known key in one query. Absent or malformed values keep their default.
func (p *Profile) Load(db *gorm.DB) error {
	all, err := setting.GetAll(db)
	if err != nil {
		return err
	}

	*p = Default()

	for key, dst := range p.fields() {
		raw, ok := all[string(key)]
		if !ok {
			continue
		}

		if err = setting.Validate(string(key), raw); err != nil {
			log.Warn().Err(err).Str("key", string(key)).Msg("ignoring malformed setting")
			continue
		}

		// decode into a scratch value so a failed decode leaves the default in place
		if err = decodeInto(raw, dst); err != nil {
			log.Warn().Err(err).Str("key", string(key)).Msg("ignoring malformed setting")
		}
	}

	return nil
}

// Save writes every field of p.
func (p *Profile) Save(db *gorm.DB) error {
	if p.Skills == nil {
		p.Skills = []setting.Skill{}
	}

	values := make(map[string]json.RawMessage, len(p.fields()))

	for key, src := range p.fields() {
		raw, err := json.Marshal(src)
		if err != nil {
			return err
		}

		values[string(key)] = raw
	}

	return setting.SetMany(db, values)
}

func decodeInto(raw json.RawMessage, dst any) error {
	switch v := dst.(type) {
	case *string:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}

		*v = s
	case *setting.SocialLinks:
		var links setting.SocialLinks
		if err := json.Unmarshal(raw, &links); err != nil {
			return err
		}

		*v = links
	case *[]setting.Skill:
		var skills []setting.Skill
		if err := json.Unmarshal(raw, &skills); err != nil {
			return err
		}

		*v = skills
	}

	return nil
}
