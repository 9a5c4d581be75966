// Package content holds the static copy of the site: page metadata, the
// about text and the skills grid.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"sync"

	"github.com/yuin/goldmark"
)

//go:embed about.md
var aboutMarkdown []byte

// Author is the page author metadata.
type Author struct {
	Name string
	URL  string
}

// Site is the page-level metadata rendered into <head> and the header.
type Site struct {
	Title       string
	Description string
	Author      Author
	Keywords    []string
	Brand       string
	GitHubURL   string
}

// SkillGroup is one column of the skills grid.
type SkillGroup struct {
	Name   string
	Skills []Skill
}

// Skill is a single entry with a self-assessed level from 0 to 100.
type Skill struct {
	Name  string
	Level int
}

// DefaultSite returns the site metadata. githubAccount feeds the
// "View More on GitHub" link.
func DefaultSite(githubAccount string) Site {
	return Site{
		Title:       "Arda Gulez | Full Stack Developer",
		Description: "Portfolio of Arda Gulez - Full Stack Developer",
		Author:      Author{Name: "Arda Gulez", URL: "https://raikou.me"},
		Keywords:    []string{"Arda Gulez", "Full Stack Developer", "Portfolio", "devRaikou", "Web Development"},
		Brand:       "devRaikou",
		GitHubURL:   "https://github.com/" + githubAccount,
	}
}

// Skills returns the skills grid.
func Skills() []SkillGroup {
	return []SkillGroup{
		{
			Name: "Frontend",
			Skills: []Skill{
				{"React", 90},
				{"Next.js", 85},
				{"TypeScript", 85},
				{"Tailwind CSS", 80},
			},
		},
		{
			Name: "Backend",
			Skills: []Skill{
				{"Node.js", 85},
				{"Go", 70},
				{"PostgreSQL", 75},
				{"REST & WebSockets", 80},
			},
		},
		{
			Name: "Tooling",
			Skills: []Skill{
				{"Git", 90},
				{"Docker", 70},
				{"Linux", 75},
				{"CI/CD", 65},
			},
		},
	}
}

var (
	aboutOnce sync.Once
	aboutHTML template.HTML
	aboutErr  error
)

// About returns the about section rendered to HTML. The markdown is
// converted once and cached.
func About() (template.HTML, error) {
	aboutOnce.Do(func() {
		aboutHTML, aboutErr = RenderMarkdown(aboutMarkdown)
	})
	return aboutHTML, aboutErr
}

// RenderMarkdown converts markdown to HTML. Raw HTML in the source is
// dropped by goldmark's default renderer.
func RenderMarkdown(md []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(md, &buf); err != nil {
		return "", fmt.Errorf("content: rendering markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
