package types

import "time"

// FetchConfig holds settings for loading input documents over HTTP.
type FetchConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "playcanvas2obj/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// RateLimitRetries is the number of times an HTTP 429 response is retried
	// with exponential backoff. Zero disables retries.
	RateLimitRetries int `json:"rate_limit_retries" yaml:"rate_limit_retries"`

	// Token is an optional bearer token sent with HTTP requests. It is
	// normally loaded from the secrets directory rather than the config file.
	Token string `json:"-" yaml:"-"`
}

// CacheConfig holds settings for the fetched-document cache.
type CacheConfig struct {
	// Path is the SQLite database file. An empty path disables caching.
	Path string `json:"path" yaml:"path"`
}

// NormalIndexScheme selects what goes in the normal slot of OBJ face records.
type NormalIndexScheme string

const (
	// NormalIndexPosition writes the 1-based position of the corner within
	// its face (f a//1 b//2 c//3).
	NormalIndexPosition NormalIndexScheme = "position"

	// NormalIndexVertex writes the vertex index again (f a//a b//b c//c).
	NormalIndexVertex NormalIndexScheme = "vertex"

	// NormalIndexFace writes the 1-based face number for every corner.
	NormalIndexFace NormalIndexScheme = "face"
)

// Valid reports whether s names a known scheme.
func (s NormalIndexScheme) Valid() bool {
	switch s {
	case NormalIndexPosition, NormalIndexVertex, NormalIndexFace:
		return true
	}
	return false
}

// OutputConfig holds settings for OBJ output.
type OutputConfig struct {
	// NormalIndex selects the face normal-index scheme (default "position").
	NormalIndex NormalIndexScheme `json:"normal_index" yaml:"normal_index"`
}

// Config groups all settings for a conversion run.
type Config struct {
	Fetch  FetchConfig  `json:"fetch" yaml:"fetch"`
	Cache  CacheConfig  `json:"cache" yaml:"cache"`
	Output OutputConfig `json:"output" yaml:"output"`
}
