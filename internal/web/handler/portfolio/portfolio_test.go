package portfolio

import (
	"html/template"
	"io"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	messageController "github.com/folio-cms/folio/internal/db/controller/message"
	"github.com/folio-cms/folio/internal/db/controller/profile"
	projectController "github.com/folio-cms/folio/internal/db/controller/project"
	"github.com/folio-cms/folio/internal/db/controller/setting"
	"github.com/folio-cms/folio/internal/db/dbtest"
	"github.com/folio-cms/folio/internal/db/models"
	"github.com/folio-cms/folio/internal/web/handler"
	"github.com/folio-cms/folio/internal/web/webtest"
)

// recordingViews keeps the binding of the last rendered template.
type recordingViews struct {
	webtest.NoOpViews

	mu     sync.Mutex
	name   string
	layout string
	data   fiber.Map
}

func (v *recordingViews) Render(w io.Writer, name string, data any, layout ...string) error {
	v.mu.Lock()
	v.name = name
	v.data, _ = data.(fiber.Map)

	if len(layout) > 0 {
		v.layout = layout[0]
	}
	v.mu.Unlock()

	return v.NoOpViews.Render(w, name, data)
}

func (v *recordingViews) last() (string, fiber.Map) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.name, v.data
}

func setup(t *testing.T) (*fiber.App, *gorm.DB, *recordingViews) {
	t.Helper()

	db := dbtest.New(t)
	require.NoError(t, setting.Initialize(db))

	cfg := webtest.Config()
	views := &recordingViews{}
	app := fiber.New(fiber.Config{Views: views})

	var s Service
	require.NoError(t, s.Init(app, cfg, db, webtest.NewManager(t, cfg, db)))

	return app, db, views
}

func createProject(t *testing.T, db *gorm.DB, slug string, status models.ProjectStatus, featured bool, content string) *models.Project {
	t.Helper()

	in := projectController.Input{
		Title:       strings.ToUpper(slug),
		Slug:        slug,
		Description: "about " + slug,
		Status:      status,
		Featured:    featured,
	}
	if content != "" {
		in.Content = &content
	}

	p, err := projectController.Create(db, in)
	require.NoError(t, err)

	return p
}

func slugs(projects []models.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Slug)
	}

	return out
}

func TestHome(t *testing.T) {
	app, db, views := setup(t)

	createProject(t, db, "shown", models.ProjectStatusPublished, true, "")
	createProject(t, db, "hidden-draft", models.ProjectStatusDraft, true, "")
	createProject(t, db, "not-featured", models.ProjectStatusPublished, false, "")

	require.NoError(t, setting.Set(db, string(setting.KeySiteTitle), "Alice's Folio"))

	resp := webtest.Do(t, app, fiber.MethodGet, "/", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, HomeTemplate, webtest.Body(t, resp))

	name, data := views.last()
	assert.Equal(t, HomeTemplate, name)
	assert.Equal(t, handler.BaseLayout, views.layout)
	assert.Equal(t, []string{"shown"}, slugs(data["Projects"].([]models.Project)))
	assert.Equal(t, "Alice's Folio", data["SiteTitle"])
}

func TestAbout(t *testing.T) {
	app, _, views := setup(t)

	resp := webtest.Do(t, app, fiber.MethodGet, "/about", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, data := views.last()
	p := data["Profile"].(*profile.Profile)
	assert.Equal(t, profile.Default().Bio, p.Bio)
	assert.NotEmpty(t, p.Skills)
}

func TestProjects(t *testing.T) {
	app, db, views := setup(t)

	createProject(t, db, "one", models.ProjectStatusPublished, false, "")
	createProject(t, db, "draft", models.ProjectStatusDraft, false, "")

	resp := webtest.Do(t, app, fiber.MethodGet, "/projects", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, data := views.last()
	assert.Equal(t, []string{"one"}, slugs(data["Projects"].([]models.Project)))
}

func TestProject(t *testing.T) {
	app, db, views := setup(t)

	createProject(t, db, "live", models.ProjectStatusPublished, false, "# Heading\n\nSome **bold** text")
	createProject(t, db, "plain", models.ProjectStatusPublished, false, "")
	createProject(t, db, "wip", models.ProjectStatusDraft, false, "secret")

	tests := []struct {
		path       string
		wantStatus int
		wantName   string
	}{
		{path: "/projects/live", wantStatus: fiber.StatusOK, wantName: ProjectTemplate},
		{path: "/projects/plain", wantStatus: fiber.StatusOK, wantName: ProjectTemplate},
		{path: "/projects/wip", wantStatus: fiber.StatusNotFound, wantName: NotFoundTemplate},
		{path: "/projects/unknown", wantStatus: fiber.StatusNotFound, wantName: NotFoundTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := webtest.Do(t, app, fiber.MethodGet, tt.path, nil, nil)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			name, _ := views.last()
			assert.Equal(t, tt.wantName, name)
		})
	}

	webtest.Do(t, app, fiber.MethodGet, "/projects/live", nil, nil)

	_, data := views.last()
	content, ok := data["Content"].(template.HTML)
	require.True(t, ok)
	assert.Contains(t, string(content), "<strong>bold</strong>")
	assert.Contains(t, string(content), "Heading</h1>")
}

func TestContact(t *testing.T) {
	app, db, views := setup(t)

	resp := webtest.Do(t, app, fiber.MethodGet, "/contact", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, data := views.last()
	assert.Equal(t, false, data["Sent"])

	form := url.Values{"name": {"Ann"}, "email": {"ann@example.com"}, "message": {"Hello"}}
	resp = webtest.PostForm(t, app, "/contact", form.Encode(), nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/contact?sent=1", resp.Header.Get(fiber.HeaderLocation))

	webtest.Do(t, app, fiber.MethodGet, "/contact?sent=1", nil, nil)

	_, data = views.last()
	assert.Equal(t, true, data["Sent"])

	form = url.Values{"name": {"Ann"}, "email": {"nope"}, "message": {"Hello"}}
	resp = webtest.PostForm(t, app, "/contact", form.Encode(), nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Please provide your name, a valid email and a message", webtest.Body(t, resp))

	unread, err := messageController.UnreadCount(db)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)
}
