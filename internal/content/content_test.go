package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbout(t *testing.T) {
	html, err := About()
	require.NoError(t, err)

	s := string(html)
	assert.Contains(t, s, "<strong>Arda</strong>")
	assert.True(t, strings.HasPrefix(s, "<p>"))
}

func TestRenderMarkdown_DropsRawHTML(t *testing.T) {
	html, err := RenderMarkdown([]byte("hello <script>alert(1)</script>"))
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>")
}

func TestDefaultSite(t *testing.T) {
	s := DefaultSite("devraikou")
	assert.Equal(t, "Arda Gulez | Full Stack Developer", s.Title)
	assert.Equal(t, "https://github.com/devraikou", s.GitHubURL)
	assert.Contains(t, s.Keywords, "devRaikou")
}

func TestSkills(t *testing.T) {
	for _, g := range Skills() {
		require.NotEmpty(t, g.Skills, g.Name)
		for _, s := range g.Skills {
			assert.True(t, s.Level >= 0 && s.Level <= 100, "%s level %d", s.Name, s.Level)
		}
	}
}
