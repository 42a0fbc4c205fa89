package profile_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-cms/folio/internal/db/controller/profile"
	"github.com/folio-cms/folio/internal/db/controller/setting"
	"github.com/folio-cms/folio/internal/db/dbtest"
	"github.com/folio-cms/folio/internal/db/models"
)

func TestLoadEmptyStoreUsesDefaults(t *testing.T) {
	db := dbtest.New(t)

	var p profile.Profile
	require.NoError(t, p.Load(db))

	assert.Equal(t, profile.Default(), p)
	assert.Equal(t, "John Doe", p.Name)
	assert.Len(t, p.Skills, 8)
}

func TestLoadFallsBackPerKey(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, setting.Set(db, "name", "Alice"))
	// written around the validation layer to simulate a corrupted row
	require.NoError(t, db.Create(&models.Setting{Key: "skills", Value: `{"not":"a list"}`}).Error)

	var p profile.Profile
	require.NoError(t, p.Load(db))

	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, profile.Default().Skills, p.Skills)
	assert.Equal(t, "Portfolio", p.SiteTitle)
}

func TestLoadIgnoresNullValues(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, db.Create(&models.Setting{Key: "name", Value: `null`}).Error)
	require.NoError(t, db.Create(&models.Setting{Key: "social_links", Value: `null`}).Error)

	var p profile.Profile
	require.NoError(t, p.Load(db))

	assert.Equal(t, profile.Default().Name, p.Name)
	assert.Equal(t, profile.Default().SocialLinks, p.SocialLinks)
}

func TestSaveWithoutSkills(t *testing.T) {
	db := dbtest.New(t)

	p := profile.Default()
	p.Skills = nil

	require.NoError(t, p.Save(db))

	raw, err := setting.Get(db, "skills")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestSaveRoundTrip(t *testing.T) {
	db := dbtest.New(t)

	want := profile.Default()
	want.Name = "Alice"
	want.Skills = []setting.Skill{{Name: "Go", Level: 99}}
	want.SocialLinks.Twitter = ""

	require.NoError(t, want.Save(db))

	var got profile.Profile
	require.NoError(t, got.Load(db))
	assert.Equal(t, want, got)

	raw, err := setting.Get(db, "skills")
	require.NoError(t, err)

	var skills []setting.Skill
	require.NoError(t, json.Unmarshal(raw, &skills))
	assert.Equal(t, want.Skills, skills)
}

func TestSaveRejectsInvalidProfile(t *testing.T) {
	db := dbtest.New(t)

	p := profile.Default()
	p.Email = "not-an-email"

	require.ErrorIs(t, p.Save(db), setting.ErrInvalidValue)
}
