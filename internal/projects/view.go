package projects

import "github.com/devraikou/portfolio/internal/model"

const (
	// TopicsShown is how many topics a card lists before "+N".
	TopicsShown = 3
	// SampleNotice follows LoadError when the sample set is shown.
	SampleNotice = "Showing sample projects instead."
)

// Card is a repository prepared for the gallery template.
type Card struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	CodeURL       string   `json:"codeUrl"`
	DemoURL       string   `json:"demoUrl,omitempty"`
	Stars         int      `json:"stars"`
	Forks         int      `json:"forks"`
	Language      string   `json:"language,omitempty"`
	LanguageColor string   `json:"languageColor,omitempty"`
	Topics        []string `json:"topics"`
	MoreTopics    int      `json:"moreTopics"`
}

// View is the whole gallery: cards plus the error banner and the link to
// the account page.
type View struct {
	Cards    []Card `json:"cards"`
	Err      string `json:"error,omitempty"`
	Notice   string `json:"notice,omitempty"`
	Fallback bool   `json:"fallback"`
	Pending  bool   `json:"pending"`
	// Placeholders is the number of skeleton cards to draw while pending.
	Placeholders int    `json:"placeholders,omitempty"`
	MoreURL      string `json:"moreUrl"`
}

// BuildView turns a fetch Result into the gallery view. placeholders is
// the skeleton count used while the result is pending.
func BuildView(res Result, moreURL string, placeholders int) View {
	v := View{
		Cards:    make([]Card, 0, len(res.Repos)),
		Err:      res.Err,
		Fallback: res.Fallback,
		Pending:  res.Pending,
		MoreURL:  moreURL,
	}
	if res.Pending {
		v.Placeholders = placeholders
		return v
	}
	if res.Fallback {
		v.Notice = SampleNotice
	}
	for _, r := range res.Repos {
		v.Cards = append(v.Cards, newCard(r))
	}
	return v
}

func newCard(r model.RepositorySummary) Card {
	c := Card{
		Name:    r.Name,
		CodeURL: r.CodeURL,
		Stars:   r.StarCount,
		Forks:   r.ForkCount,
	}
	if r.Description != nil {
		c.Description = *r.Description
	}
	if r.DemoURL != nil {
		c.DemoURL = *r.DemoURL
	}
	if r.PrimaryLanguage != nil && *r.PrimaryLanguage != "" {
		c.Language = *r.PrimaryLanguage
		c.LanguageColor = LanguageColor(c.Language)
	}
	c.Topics, c.MoreTopics = TopicsPreview(r.Topics, TopicsShown)
	if c.Topics == nil {
		c.Topics = []string{}
	}
	return c
}
