package components

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opengov/views/models"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestStatusBadgeEscapes(t *testing.T) {
	out := render(t, StatusBadge(models.Badge{Label: `<script>"x"</script>`, Class: `badge-red" onclick="x`}))
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, `" onclick="`)
}

func TestDecisionListSanitizesDocumentLinks(t *testing.T) {
	out := render(t, DecisionList(models.Table[models.DecisionView]{
		Rows: []models.DecisionView{{
			Title: "Transit plan",
			Documents: []models.DocumentLink{
				{Name: "Minutes", URL: "/docs/minutes.pdf"},
				{Name: "Bad", URL: "javascript:alert(1)"},
			},
		}},
		Pager: models.Pager{Target: "decision-results", Page: 1, TotalPages: 1},
	}))
	assert.Contains(t, out, `href="/docs/minutes.pdf"`)
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, string(templ.FailedSanitizationURL))
}

func TestInputHidesPasswordValue(t *testing.T) {
	form := models.Form{
		Values: map[string]string{"password": "hunter22", "email": "a@b.com"},
		Errors: map[string]string{"email": "Please enter a valid email address."},
	}
	out := render(t, Input(Field{Name: "password", Label: "Password", Type: "password"}, form))
	assert.NotContains(t, out, "hunter22")
	assert.Contains(t, out, `type="password"`)

	out = render(t, Input(Field{Name: "email", Label: "Email"}, form))
	assert.Contains(t, out, `type="text"`)
	assert.Contains(t, out, `value="a@b.com"`)
	assert.Contains(t, out, `aria-invalid="true"`)
	assert.Contains(t, out, "Please enter a valid email address.")
}

func TestWithToast(t *testing.T) {
	fragment := templ.Raw(`<form id="privacy-form"></form>`)

	out := render(t, WithToast(fragment, nil))
	assert.Equal(t, `<form id="privacy-form"></form>`, out)

	out = render(t, WithToast(fragment, &models.Toast{Title: "Saved"}))
	assert.True(t, strings.HasPrefix(out, `<form id="privacy-form"></form>`))
	assert.Equal(t, 1, strings.Count(out, `hx-swap-oob="beforeend"`))
}

func TestRenderStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	err := Loading().Render(ctx, &buf)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestOOBToast(t *testing.T) {
	out := render(t, OOBToast(models.Toast{Title: "Saved", Description: "Done", Error: true}))
	assert.Contains(t, out, `hx-swap-oob="beforeend"`)
	assert.Contains(t, out, "toast-error")
	assert.Contains(t, out, "Saved")
}

func TestTabs(t *testing.T) {
	out := render(t, Tabs([]models.Tab{
		{Label: "Map", URL: "/projects?tab=map", Active: true},
		{Label: "List", URL: "/projects?tab=list"},
	}))
	assert.Contains(t, out, `class="tab active" aria-selected="true">Map`)
	assert.Contains(t, out, `class="tab" aria-selected="false">List`)
}
