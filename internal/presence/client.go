package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/devraikou/portfolio/internal/apperror"
	"github.com/devraikou/portfolio/internal/model"
)

// Source fetches one presence snapshot. *Client is the production
// implementation; tests substitute fakes.
type Source interface {
	Fetch(ctx context.Context) (*model.PresenceSnapshot, error)
}

// lanyardResponse is the envelope returned by GET /v1/users/{id}.
// Only the fields the card renders are decoded.
type lanyardResponse struct {
	Success bool         `json:"success"`
	Data    *lanyardData `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type lanyardData struct {
	DiscordUser struct {
		ID            string  `json:"id"`
		Username      string  `json:"username"`
		Avatar        *string `json:"avatar"`
		Discriminator string  `json:"discriminator"`
		PublicFlags   *uint64 `json:"public_flags"`
		PremiumType   *int    `json:"premium_type"`
	} `json:"discord_user"`
	DiscordStatus string            `json:"discord_status"`
	Activities    []lanyardActivity `json:"activities"`
}

type lanyardActivity struct {
	Name          string  `json:"name"`
	Type          int     `json:"type"`
	State         *string `json:"state"`
	Details       *string `json:"details"`
	ApplicationID string  `json:"application_id"`
	Timestamps    *struct {
		Start *int64 `json:"start"`
		End   *int64 `json:"end"`
	} `json:"timestamps"`
}

// Client talks to the Lanyard REST API for a single user.
type Client struct {
	http    *http.Client
	baseURL string
	userID  string
	now     func() time.Time
}

// NewClient creates a Client. baseURL is the API root, for example
// "https://api.lanyard.rest/v1". A nil httpClient uses a client with a 10s
// timeout.
func NewClient(httpClient *http.Client, baseURL, userID string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		userID:  userID,
		now:     time.Now,
	}
}

// Fetch retrieves the current presence. Transport failures, non-2xx
// statuses, undecodable bodies and {"success": false} all return an error
// wrapping apperror.ErrUpstream.
func (c *Client) Fetch(ctx context.Context) (*model.PresenceSnapshot, error) {
	url := fmt.Sprintf("%s/users/%s", c.baseURL, c.userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("presence: building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("presence: %w", apperror.Upstream("lanyard", 0, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("presence: %w", apperror.Upstream("lanyard", resp.StatusCode, nil))
	}

	var body lanyardResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("presence: decoding response: %w", apperror.Upstream("lanyard", 0, err))
	}

	if !body.Success || body.Data == nil {
		cause := fmt.Errorf("success=false")
		if body.Error != nil {
			cause = fmt.Errorf("%s: %s", body.Error.Code, body.Error.Message)
		}
		return nil, fmt.Errorf("presence: %w", apperror.Upstream("lanyard", 0, cause))
	}

	return body.Data.snapshot(c.now()), nil
}

func (d *lanyardData) snapshot(fetchedAt time.Time) *model.PresenceSnapshot {
	u := d.DiscordUser

	activities := make([]model.Activity, 0, len(d.Activities))
	for _, a := range d.Activities {
		act := model.Activity{
			Name:          a.Name,
			Kind:          model.ActivityKind(a.Type),
			Details:       a.Details,
			State:         a.State,
			ApplicationID: a.ApplicationID,
		}
		if a.Timestamps != nil {
			act.Start = a.Timestamps.Start
			act.End = a.Timestamps.End
		}
		activities = append(activities, act)
	}

	return &model.PresenceSnapshot{
		UserID:        u.ID,
		Username:      u.Username,
		AvatarHash:    u.Avatar,
		Discriminator: u.Discriminator,
		Status:        model.ParseStatus(d.DiscordStatus),
		PublicFlags:   u.PublicFlags,
		PremiumTier:   u.PremiumType,
		Activities:    activities,
		FetchedAt:     fetchedAt,
	}
}
