package endpoint

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/bigboy/appconfig/internal/buildmode"
)

const (
	// APIVersion is the path segment every API request is rooted at.
	APIVersion = "/api/v1"
	// DefaultDevelopmentURL targets a backend on the developer machine.
	// Physical devices need the machine's LAN address instead (e.g. http://192.168.1.100:4000).
	DefaultDevelopmentURL = "http://localhost:4000"
)

var (
	// ErrInvalidBaseURL indicates the base URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("base URL must be an absolute http or https URL without query or fragment")
	// ErrMissingProductionURL is returned when a production build has no base URL configured.
	ErrMissingProductionURL = errors.New("production base URL is not configured")
)

// Endpoint is the network location of the backend API.
type Endpoint struct {
	BaseURL    string `json:"baseUrl" yaml:"base_url"`
	APIVersion string `json:"apiVersion" yaml:"api_version"`
}

// New validates baseURL and returns an Endpoint rooted at APIVersion.
func New(baseURL string) (Endpoint, error) {
	ep := Endpoint{
		BaseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		APIVersion: APIVersion,
	}
	if err := ep.Validate(); err != nil {
		return Endpoint{}, err
	}
	return ep, nil
}

// Resolve selects the single active endpoint for mode.
func Resolve(mode buildmode.Mode, developmentURL, productionURL string) (Endpoint, error) {
	switch mode {
	case buildmode.Production:
		if strings.TrimSpace(productionURL) == "" {
			return Endpoint{}, ErrMissingProductionURL
		}
		return New(productionURL)
	case buildmode.Development:
		if strings.TrimSpace(developmentURL) == "" {
			developmentURL = DefaultDevelopmentURL
		}
		return New(developmentURL)
	default:
		return Endpoint{}, fmt.Errorf("%w: %q", buildmode.ErrUnknownMode, string(mode))
	}
}

// Validate checks that the endpoint forms a well-formed request prefix.
func (e Endpoint) Validate() error {
	u, err := url.Parse(e.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidBaseURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidBaseURL)
	}
	if u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return fmt.Errorf("%w: %s", ErrInvalidBaseURL, e.BaseURL)
	}
	if !strings.HasPrefix(e.APIVersion, "/") || strings.HasSuffix(e.APIVersion, "/") {
		return fmt.Errorf("api version %q must start and not end with '/'", e.APIVersion)
	}
	return nil
}

// Prefix joins the base URL and the API version with exactly one separator.
func (e Endpoint) Prefix() string {
	return strings.TrimRight(e.BaseURL, "/") + "/" + strings.Trim(e.APIVersion, "/")
}

// URL returns the absolute URL for elem below the API prefix.
func (e Endpoint) URL(elem ...string) (string, error) {
	return url.JoinPath(e.Prefix(), elem...)
}

// RootURL returns the absolute URL for elem below the base URL, outside the versioned API.
func (e Endpoint) RootURL(elem ...string) (string, error) {
	return url.JoinPath(e.BaseURL, elem...)
}
