package localindex

import (
	"database/sql"

	"github.com/google/uuid"
)

// Context is the context for a local scene index operation
type Context struct {
	DB             *sql.DB
	BaseWeatherURL string
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
