package model

// RepositorySummary is one entry of the project gallery.
//
// IsFork is only consulted while filtering; it is never rendered.
type RepositorySummary struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	CodeURL         string   `json:"codeUrl"`
	DemoURL         *string  `json:"demoUrl,omitempty"`
	StarCount       int      `json:"starCount"`
	ForkCount       int      `json:"forkCount"`
	PrimaryLanguage *string  `json:"primaryLanguage,omitempty"`
	Topics          []string `json:"topics"`
	IsFork          bool     `json:"-"`
}
