package setting

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/folio-cms/folio/internal/db/dbtest"
	"github.com/folio-cms/folio/internal/db/models"
)

// seedSettings inserts test data into the database.
func seedSettings(t *testing.T, db *gorm.DB, settings []models.Setting) {
	t.Helper()

	for _, setting := range settings {
		require.NoError(t, db.Create(&setting).Error, "failed to seed test data")
	}
}

func countRows(t *testing.T, db *gorm.DB, key string) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.Setting{}).Where(&models.Setting{Key: key}).Count(&count).Error)

	return count
}

func TestGet(t *testing.T) {
	db := dbtest.New(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		key           string
		seedData      []models.Setting
		expectedError error
		expectedValue json.RawMessage
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			key:           "test",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty key",
			dbParam:       db,
			key:           "",
			expectedError: ErrSettingKeyEmpty,
		},
		{
			name:    "missing key is not an error",
			dbParam: db,
			key:     "nonexistent",
		},
		{
			name:    "successful get",
			dbParam: db,
			key:     "site_title",
			seedData: []models.Setting{
				{Key: "site_title", Value: `"My Site"`},
			},
			expectedValue: json.RawMessage(`"My Site"`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM settings")
			}

			if tc.seedData != nil {
				seedSettings(t, tc.dbParam, tc.seedData)
			}

			value, err := Get(tc.dbParam, tc.key)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, value)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedValue, value)
		})
	}
}

func TestGetAll(t *testing.T) {
	db := dbtest.New(t)

	_, err := GetAll(nil)
	require.ErrorIs(t, err, ErrDBNil)

	all, err := GetAll(db)
	require.NoError(t, err)
	assert.Empty(t, all)

	seedSettings(t, db, []models.Setting{
		{Key: "name", Value: `"Alice"`},
		{Key: "skills", Value: `[]`},
		{Key: "custom", Value: `{"a":1}`},
	})

	all, err = GetAll(db)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.JSONEq(t, `"Alice"`, string(all["name"]))
	assert.JSONEq(t, `{"a":1}`, string(all["custom"]))
}

func TestSet(t *testing.T) {
	testCases := []struct {
		name          string
		key           string
		values        []any
		expectedError error
		expectedJSON  string
	}{
		{
			name:         "set then get returns the value",
			key:          "name",
			values:       []any{"Alice"},
			expectedJSON: `"Alice"`,
		},
		{
			name:         "second set overwrites the first",
			key:          "name",
			values:       []any{"Alice", "Bob"},
			expectedJSON: `"Bob"`,
		},
		{
			name:         "raw json is stored as is",
			key:          "custom",
			values:       []any{json.RawMessage(`{"nested":[1,2,3]}`)},
			expectedJSON: `{"nested":[1,2,3]}`,
		},
		{
			name:         "structured known key",
			key:          string(KeySkills),
			values:       []any{[]Skill{{Name: "Go", Level: 95}}},
			expectedJSON: `[{"name":"Go","level":95}]`,
		},
		{
			name:          "empty key",
			key:           "",
			values:        []any{"x"},
			expectedError: ErrSettingKeyEmpty,
		},
		{
			name:          "wrong shape for known key",
			key:           string(KeyName),
			values:        []any{42},
			expectedError: ErrInvalidValue,
		},
		{
			name:          "invalid raw json",
			key:           "custom",
			values:        []any{json.RawMessage(`{`)},
			expectedError: ErrInvalidValue,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := dbtest.New(t)

			var err error
			for _, v := range tc.values {
				err = Set(db, tc.key, v)
			}

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)

			got, err := Get(db, tc.key)
			require.NoError(t, err)
			assert.JSONEq(t, tc.expectedJSON, string(got))
			assert.Equal(t, int64(1), countRows(t, db, tc.key))
		})
	}

	require.ErrorIs(t, Set(nil, "name", "x"), ErrDBNil)
}

func TestSetConcurrentWritersKeepOneRow(t *testing.T) {
	db := dbtest.New(t)

	var wg sync.WaitGroup

	for i := range 10 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			assert.NoError(t, Set(db, "counter", i))
		}()
	}

	wg.Wait()

	assert.Equal(t, int64(1), countRows(t, db, "counter"))
}

func TestSetMany(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, Initialize(db))

	err := SetMany(db, map[string]json.RawMessage{
		"name":  json.RawMessage(`"Alice"`),
		"extra": json.RawMessage(`true`),
	})
	require.NoError(t, err)

	all, err := GetAll(db)
	require.NoError(t, err)
	assert.JSONEq(t, `"Alice"`, string(all["name"]))
	assert.JSONEq(t, `true`, string(all["extra"]))
	assert.JSONEq(t, `"Portfolio"`, string(all["site_title"]))

	// one bad entry leaves the store untouched
	err = SetMany(db, map[string]json.RawMessage{
		"name":   json.RawMessage(`"Carol"`),
		"skills": json.RawMessage(`"not a list"`),
	})
	require.ErrorIs(t, err, ErrInvalidValue)

	got, err := Get(db, "name")
	require.NoError(t, err)
	assert.JSONEq(t, `"Alice"`, string(got))

	require.ErrorIs(t, SetMany(nil, nil), ErrDBNil)
}

func TestInitialize(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, Set(db, "name", "Alice"))

	require.NoError(t, Initialize(db))

	once, err := GetAll(db)
	require.NoError(t, err)

	require.NoError(t, Initialize(db))

	twice, err := GetAll(db)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	assert.Len(t, twice, len(Defaults()))
	assert.JSONEq(t, `"Alice"`, string(twice["name"]), "existing values are kept")
	assert.JSONEq(t, `"Portfolio"`, string(twice["site_title"]))

	var skills []Skill
	require.NoError(t, json.Unmarshal(twice["skills"], &skills))
	assert.Len(t, skills, 8)
	assert.Equal(t, Skill{Name: "JavaScript", Level: 90}, skills[0])

	require.ErrorIs(t, Initialize(nil), ErrDBNil)
}

func TestGetInto(t *testing.T) {
	db := dbtest.New(t)

	var links SocialLinks

	found, err := GetInto(db, string(KeySocialLinks), &links)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, Initialize(db))

	found, err = GetInto(db, string(KeySocialLinks), &links)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "https://github.com", links.Github)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		key     Key
		raw     string
		wantErr bool
	}{
		{key: KeySiteTitle, raw: `"Site"`},
		{key: KeySiteTitle, raw: `1`, wantErr: true},
		{key: KeyEmail, raw: `"hello@example.com"`},
		{key: KeyEmail, raw: `""`},
		{key: KeyEmail, raw: `"nope"`, wantErr: true},
		{key: KeySocialLinks, raw: `{"github":"https://github.com/me"}`},
		{key: KeySocialLinks, raw: `{"github":"not a url"}`, wantErr: true},
		{key: KeySocialLinks, raw: `{"myspace":"https://myspace.com"}`, wantErr: true},
		{key: KeySocialLinks, raw: `[]`, wantErr: true},
		{key: KeySkills, raw: `[{"name":"Go","level":100}]`},
		{key: KeySkills, raw: `[]`},
		{key: KeySkills, raw: `[{"name":"Go","level":101}]`, wantErr: true},
		{key: KeySkills, raw: `[{"name":"","level":50}]`, wantErr: true},
		{key: KeyName, raw: `null`, wantErr: true},
		{key: KeyEmail, raw: ` null `, wantErr: true},
		{key: KeySocialLinks, raw: `null`, wantErr: true},
		{key: KeySkills, raw: `null`, wantErr: true},
		{key: "anything", raw: `null`},
		{key: "anything", raw: `[1,"two",{"three":3}]`},
		{key: "anything", raw: `{broken`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s %s", tc.key, tc.raw), func(t *testing.T) {
			err := Validate(string(tc.key), json.RawMessage(tc.raw))
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidValue)
				return
			}

			require.NoError(t, err)
		})
	}

	require.ErrorIs(t, Validate("", json.RawMessage(`1`)), ErrSettingKeyEmpty)
}
