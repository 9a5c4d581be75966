package projects

import "github.com/devraikou/portfolio/internal/model"

const (
	sampleCodeURL = "https://github.com/devraikou"
	sampleDemoURL = "https://raikou.me"
)

type sample struct {
	id          int64
	name        string
	description string
	demo        bool
	stars       int
	forks       int
	language    string
	topics      []string
}

var samples = []sample{
	{
		id:          1,
		name:        "Sample Project 1",
		description: "A sample project description to demonstrate the layout and UI features.",
		demo:        true,
		stars:       5,
		forks:       2,
		language:    "JavaScript",
		topics:      []string{"react", "nextjs", "tailwind"},
	},
	{
		id:          2,
		name:        "Sample Project 2",
		description: "A modern web application built with React, Next.js and TypeScript.",
		stars:       8,
		forks:       3,
		language:    "TypeScript",
		topics:      []string{"typescript", "frontend", "api"},
	},
	{
		id:          3,
		name:        "Sample Project 3",
		description: "A responsive mobile-first design template for modern websites.",
		demo:        true,
		stars:       12,
		forks:       5,
		language:    "CSS",
		topics:      []string{"ui", "design", "responsive"},
	},
}

// SampleRepositories returns a fresh copy of the fallback gallery.
func SampleRepositories() []model.RepositorySummary {
	out := make([]model.RepositorySummary, 0, len(samples))
	for _, s := range samples {
		desc := s.description
		lang := s.language
		r := model.RepositorySummary{
			ID:              s.id,
			Name:            s.name,
			Description:     &desc,
			CodeURL:         sampleCodeURL,
			StarCount:       s.stars,
			ForkCount:       s.forks,
			PrimaryLanguage: &lang,
			Topics:          append([]string(nil), s.topics...),
		}
		if s.demo {
			demo := sampleDemoURL
			r.DemoURL = &demo
		}
		out = append(out, r)
	}
	return out
}
