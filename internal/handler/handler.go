// Package handler contains the HTTP handlers of the site.
//
// Handlers parse the request, call a service or widget, and write the
// response. They hold no business rules of their own: validation lives in
// internal/service, widget state in internal/presence and internal/projects.
package handler

import (
	"context"

	"github.com/devraikou/portfolio/internal/presence"
	"github.com/devraikou/portfolio/internal/projects"
)

// PresenceSource is the presence widget as the page sees it.
// *presence.Poller satisfies it.
type PresenceSource interface {
	Card() presence.Card
	State() presence.State
}

// ProjectsSource is the project gallery as the page sees it.
// *projects.Fetcher satisfies it.
type ProjectsSource interface {
	Load(ctx context.Context) projects.Result
	Peek() (projects.Result, bool)
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
