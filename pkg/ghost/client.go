package ghost

import (
	"context"
	"io"
	"time"
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a ghost.Client.
//
// # Credentials
//
// AdminKey ("id:secret", the secret hex encoded) unlocks the admin API;
// requests carry a short-lived signed token derived from it. ContentKey is
// the static token of the public content API, sent as the "key" query
// parameter. At least one of the two is required; a client holding only a
// content key is read-only and fails mutating operations before any
// network call.
//
// # Timeouts and retries
//
// HTTPTimeout bounds each HTTP round trip (default 30s); its expiry
// surfaces as a TransportError. RetryMax/RetryWaitMin/RetryWaitMax tune the
// transport's retries for transient failures (>=500, 429, connection
// errors). The 401 re-sign-and-retry is independent of these and always
// happens exactly once.
type Config struct {
	// SiteURL: base URL of the Ghost site (e.g. "https://blog.example.com").
	// Normalized by trimming a trailing slash and adding "https://" if no
	// scheme is present.
	SiteURL string

	// AdminKey: admin API key in "id:secret" form. Optional.
	AdminKey string
	// ContentKey: content API key. Optional.
	ContentKey string

	// Version: API version tag ("v3", "v4", "v5"). Empty selects the
	// latest supported version. Unsupported values fail at construction.
	Version string

	// HTTPTimeout: per-request timeout. Defaults to 30s.
	HTTPTimeout time.Duration
	// RetryMax: maximum number of transport-level retries. If 0, a sensible
	// default is used.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries.
	RetryWaitMax time.Duration
	// Debug: enables verbose HTTP request/response logging when a Logger is
	// provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
}

// Client is a Ghost API client. Each accessor returns a Resource bound to
// the client; accessors are cached, so repeated calls return the same
// Resource.
//
// A client built from a content key only is read-only: mutating operations
// on any resource fail with a CapabilityError before network I/O.
type Client interface {
	Posts() Resource
	Pages() Resource
	Tags() Resource
	Authors() Resource
	Members() Resource
	Users() Resource

	Images() ImagesResource
	Themes() ThemesResource

	// Site fetches the admin site record (admin surface).
	Site(ctx context.Context) (Record, error)
	// Settings fetches the public settings record (content surface).
	Settings(ctx context.Context) (Record, error)

	Version() Version
}

// Resource is a per-collection accessor. It knows its REST path and which
// operations are permitted; disallowed operations fail with a
// CapabilityError without issuing a request.
type Resource interface {
	Descriptor() Descriptor

	// ReadOnly reports whether the resource can only read, either because
	// its descriptor permits nothing else or because the owning client
	// lacks an admin key.
	ReadOnly() bool

	// Get lists records matching the parameters.
	Get(ctx context.Context, params *QueryParams) (*ResultSet, error)
	// GetByID fetches one record by identifier.
	GetByID(ctx context.Context, id string) (*Result, error)
	// GetBySlug fetches one record by URL slug.
	GetBySlug(ctx context.Context, slug string) (*Result, error)

	// Create stores one or more new records, returning the server's
	// response record for each in order. A failure aborts the remaining
	// creates; the records created so far are still returned.
	Create(ctx context.Context, records ...Record) ([]Record, error)
	// Update applies the field changes to the record with the given id.
	Update(ctx context.Context, id string, fields Record) (Record, error)
	// Delete removes the record with the given id.
	Delete(ctx context.Context, id string) error

	// Paginate returns a lazy iterator over all records matching the
	// parameters, fetching the next page only when the current one is
	// exhausted. A fresh call restarts from page 1.
	Paginate(ctx context.Context, params *QueryParams) *Iterator
}

// ImagesResource uploads images to the admin API.
type ImagesResource interface {
	// Upload stores the image under the given file name and returns the
	// stored image record (url, ref).
	Upload(ctx context.Context, name string, content io.Reader) (Record, error)
}

// ThemesResource uploads and activates themes on the admin API.
type ThemesResource interface {
	// Upload stores a theme zip and returns the theme record.
	Upload(ctx context.Context, name string, zip io.Reader) (Record, error)
	// Activate switches the site to the named theme.
	Activate(ctx context.Context, name string) (Record, error)
}
