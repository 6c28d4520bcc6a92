package contentful

import (
	"log/slog"
	"net/http"
)

// DefaultEndpoint is the Contentful GraphQL content API; the space id is
// appended to it.
const DefaultEndpoint = "https://graphql.contentful.com/content/v1/spaces/"

// Config holds the credentials for a single Contentful space.
type Config struct {
	SpaceID            string // CONTENTFUL_SPACE_ID
	AccessToken        string // CONTENTFUL_ACCESS_TOKEN, published content
	PreviewAccessToken string // CONTENTFUL_PREVIEW_ACCESS_TOKEN, drafts
	Endpoint           string // default DefaultEndpoint
}

func (c *Config) setDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
}

// token returns the bearer token for the requested mode, or a
// *ConfigurationError if a credential it needs is missing.
func (c Config) token(preview bool) (string, error) {
	if c.SpaceID == "" {
		return "", &ConfigurationError{Field: "SpaceID"}
	}
	if preview {
		if c.PreviewAccessToken == "" {
			return "", &ConfigurationError{Field: "PreviewAccessToken"}
		}
		return c.PreviewAccessToken, nil
	}
	if c.AccessToken == "" {
		return "", &ConfigurationError{Field: "AccessToken"}
	}
	return c.AccessToken, nil
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests (default http.DefaultClient).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets a fixed logger. Without it the client logs to the logger
// carried in the request context.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}
