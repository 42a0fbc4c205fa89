package contact_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	messageController "github.com/folio-cms/folio/internal/db/controller/message"
	"github.com/folio-cms/folio/internal/db/dbtest"
	"github.com/folio-cms/folio/internal/db/models"
	"github.com/folio-cms/folio/internal/web/handler/api/contact"
	"github.com/folio-cms/folio/internal/web/webtest"
)

func TestPost(t *testing.T) {
	db := dbtest.New(t)
	cfg := webtest.Config()
	app := webtest.NewApp()

	var s contact.Service
	require.NoError(t, s.Init(app, cfg, db, webtest.NewManager(t, cfg, db)))

	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{name: "valid", body: map[string]string{"name": "Ann", "email": "ann@example.com", "message": "Hello"}, wantStatus: fiber.StatusCreated},
		{name: "missing message", body: map[string]string{"name": "Ann", "email": "ann@example.com"}, wantStatus: fiber.StatusBadRequest},
		{name: "bad email", body: map[string]string{"name": "Ann", "email": "ann", "message": "Hello"}, wantStatus: fiber.StatusBadRequest},
		{name: "blank name", body: map[string]string{"name": "  ", "email": "ann@example.com", "message": "Hello"}, wantStatus: fiber.StatusBadRequest},
		{name: "malformed", body: `{"name":`, wantStatus: fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := webtest.Do(t, app, fiber.MethodPost, contact.Path, tt.body, nil)
			require.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus != fiber.StatusCreated {
				return
			}

			var m models.Message
			webtest.Decode(t, resp, &m)
			assert.NotZero(t, m.ID)
			assert.False(t, m.Read)
			assert.Equal(t, "Ann", m.Name)
		})
	}

	all, err := messageController.GetAll(db)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
