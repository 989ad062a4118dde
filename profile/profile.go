// Package profile resolves player profiles against the Mojang API and
// caches them in a local sqlite database.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultAPIBase serves name-to-id lookups.
	DefaultAPIBase = "https://api.mojang.com"
	// DefaultSessionBase serves full profiles with properties.
	DefaultSessionBase = "https://sessionserver.mojang.com"
)

var (
	// ErrNotFound means no profile exists under the name or id.
	ErrNotFound = errors.New("profile: not found")
	// ErrInvalidResponse means the API answered with something other
	// than the documented shape.
	ErrInvalidResponse = errors.New("profile: invalid response")
)

// Profile is a resolved player identity.
type Profile struct {
	ID         uuid.UUID
	Name       string
	Properties []Property
}

// Property is one signed profile attribute, typically the base64
// textures blob.
type Property struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Signature string `json:"signature,omitempty"`
}

// Client queries the profile API. The zero value is not usable; use
// NewClient.
type Client struct {
	apiBase     string
	sessionBase string
	httpClient  *http.Client
}

// NewClient builds a client. Empty bases fall back to the public
// Mojang endpoints.
func NewClient(apiBase, sessionBase string, timeout time.Duration) *Client {
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	if sessionBase == "" {
		sessionBase = DefaultSessionBase
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiBase:     strings.TrimRight(apiBase, "/"),
		sessionBase: strings.TrimRight(sessionBase, "/"),
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Lookup resolves a username to its id. The result carries no
// properties; follow up with Fetch for those.
func (c *Client) Lookup(ctx context.Context, name string) (Profile, error) {
	u := c.apiBase + "/users/profiles/minecraft/" + url.PathEscape(name)
	var body struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := c.getJSON(ctx, u, &body); err != nil {
		return Profile{}, err
	}
	id, err := uuid.Parse(body.ID)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: id %q", ErrInvalidResponse, body.ID)
	}
	return Profile{ID: id, Name: body.Name}, nil
}

// Fetch retrieves the full profile for an id, including signed
// properties.
func (c *Client) Fetch(ctx context.Context, id uuid.UUID) (Profile, error) {
	hexID := strings.ReplaceAll(id.String(), "-", "")
	u := c.sessionBase + "/session/minecraft/profile/" + hexID + "?unsigned=false"
	var body struct {
		ID         string     `json:"id"`
		Name       string     `json:"name"`
		Properties []Property `json:"properties"`
	}
	if err := c.getJSON(ctx, u, &body); err != nil {
		return Profile{}, err
	}
	parsed, err := uuid.Parse(body.ID)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: id %q", ErrInvalidResponse, body.ID)
	}
	return Profile{ID: parsed, Name: body.Name, Properties: body.Properties}, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent, http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: status %d", ErrInvalidResponse, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}
