package catalog

import (
	"github.com/google/uuid"
	"github.com/venicegeo/geojson-go/geojson"
	"github.com/viventriglia/vesuvius-sentinel/util"
)

var disablePermissionsCheck bool

func init() {
	disablePermissionsCheck, _ = util.IsCatalogPermissionsDisabled()
	if disablePermissionsCheck {
		util.LogInfo(&util.BasicLogContext{}, "Disabling catalog permissions check")
	}
}

// Context is the context for a scene catalog operation
type Context struct {
	BaseCatalogURL string
	BaseWeatherURL string
	CatalogKey     string
	sessionID      string
}

// AppName returns the name of this application
func (c *Context) AppName() string {
	return "vesuvius-sentinel"
}

// SessionID returns a Session ID, creating one if needed
func (c *Context) SessionID() string {
	if c.sessionID == "" {
		c.sessionID = uuid.NewString()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *Context) LogRootDir() string {
	return ""
}

// SearchOptions are the search options for a quick-search request. The area
// of interest is either an explicit Bbox or a Point plus RadiusMeters buffer.
type SearchOptions struct {
	ItemType        string
	Weather         bool
	AcquiredDate    string
	MaxAcquiredDate string
	Bbox            geojson.BoundingBox
	Point           *geojson.Point
	RadiusMeters    float64
	CloudCover      float64
}

// MetadataOptions are the options for single-scene operations
type MetadataOptions struct {
	ID       string
	Weather  bool
	ItemType string
}

type searchResults struct {
	Features []feature `json:"features"`
}

type feature struct {
	Links       Links    `json:"_links"`
	Permissions []string `json:"_permissions"`
}

type request struct {
	ItemTypes []string `json:"item_types"`
	Filter    filter   `json:"filter"`
}

type filter struct {
	Type   string        `json:"type"`
	Config []interface{} `json:"config"`
}

type objectFilter struct {
	Type      string      `json:"type"`
	FieldName string      `json:"field_name"`
	Config    interface{} `json:"config"`
}

type dateConfig struct {
	GTE string `json:"gte,omitempty"`
	LTE string `json:"lte,omitempty"`
	GT  string `json:"gt,omitempty"`
	LT  string `json:"lt,omitempty"`
}

type rangeConfig struct {
	GTE float64 `json:"gte,omitempty"`
	LTE float64 `json:"lte,omitempty"`
	GT  float64 `json:"gt,omitempty"`
	LT  float64 `json:"lt,omitempty"`
}

// Links represents the links JSON structure.
type Links struct {
	Self      string `json:"_self"`
	Thumbnail string `json:"thumbnail"`
	Tiles     string `json:"tiles"`
}

// TileSession represents an upstream map-rendering session for one scene:
// a short-lived XYZ tile URL template plus its required attribution
type TileSession struct {
	Name        string `json:"name"`
	TileURL     string `json:"tile_url"`
	Attribution string `json:"attribution"`
	ExpiresAt   string `json:"expires_at,omitempty"`
}

type catalogRequestInput struct {
	method      string
	inputURL    string // URL may be relative or absolute based on baseURLString
	body        []byte
	contentType string
}
