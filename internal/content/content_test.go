package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Spring Lawn Care":              "spring-lawn-care",
		"  Hedges & Borders!  ":         "hedges-borders",
		"Crème brûlée garden":           "creme-brulee-garden",
		"10 tips -- for   winter":       "10-tips-for-winter",
		"already-a-slug":                "already-a-slug",
		"---":                           "",
		"Tree Surgery: What to Expect?": "tree-surgery-what-to-expect",
		"Über große Gärten":             "uber-groe-garten",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("spring-lawn-care"))
	assert.False(t, IsValidSlug(""))
	assert.False(t, IsValidSlug("Spring"))
	assert.False(t, IsValidSlug("-leading"))
	assert.False(t, IsValidSlug("double--hyphen"))
}

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("# Mulching\n\nKeep **moisture** in.\n\n- bark\n- straw")
	require.NoError(t, err)

	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<strong>moisture</strong>")
	assert.Contains(t, html, "<li>bark</li>")
}

func TestRenderMarkdown_StripsScripts(t *testing.T) {
	html, err := RenderMarkdown("hello <script>alert(1)</script> [x](javascript:alert(1))")
	require.NoError(t, err)

	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "javascript:")
}
