package util

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
)

// Severity is a syslog-style message severity
type Severity int

// Syslog-style severities used throughout the broker
const (
	EMERGENCY Severity = iota
	ALERT
	CRITICAL
	ERROR
	WARNING
	NOTICE
	INFO
	DEBUG
)

var severityNames = map[Severity]string{
	EMERGENCY: "EMERGENCY",
	ALERT:     "ALERT",
	CRITICAL:  "CRITICAL",
	ERROR:     "ERROR",
	WARNING:   "WARNING",
	NOTICE:    "NOTICE",
	INFO:      "INFO",
	DEBUG:     "DEBUG",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// LogContext is the context for an operation that emits log messages
type LogContext interface {
	AppName() string
	SessionID() string
	LogRootDir() string
}

// BasicLogContext is a minimal LogContext for operations with no
// richer context of their own
type BasicLogContext struct {
	sessionID string
}

// AppName returns the name of this application
func (c *BasicLogContext) AppName() string {
	return "vesuvius-sentinel"
}

// SessionID returns a Session ID, creating one if needed
func (c *BasicLogContext) SessionID() string {
	if c.sessionID == "" {
		c.sessionID = uuid.NewString()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *BasicLogContext) LogRootDir() string {
	return ""
}

// LogAuditInput is the set of fields for an audit log entry:
// who did what to whom, and how it went
type LogAuditInput struct {
	Actor    string
	Action   string
	Actee    string
	Message  string
	Severity Severity
}

// LogAudit emits an audit-formatted log entry
func LogAudit(ctx LogContext, input LogAuditInput) {
	log.Printf("[%s:%s] %v AUDIT actor=%q action=%q actee=%q %s",
		ctx.AppName(), ctx.SessionID(), input.Severity, input.Actor, input.Action, input.Actee, input.Message)
}

// LogInfo emits an informational log entry
func LogInfo(ctx LogContext, message string) {
	log.Printf("[%s:%s] INFO %s", ctx.AppName(), ctx.SessionID(), message)
}

// LogAlert emits a log entry for a condition that needs operator attention
func LogAlert(ctx LogContext, message string) {
	log.Printf("[%s:%s] ALERT %s", ctx.AppName(), ctx.SessionID(), message)
}

// LogSimpleErr logs a message and its underlying error, and returns a
// single error wrapping both for the caller to propagate
func LogSimpleErr(ctx LogContext, message string, err error) error {
	log.Printf("[%s:%s] ERROR %s %v", ctx.AppName(), ctx.SessionID(), message, err)
	if err == nil {
		return fmt.Errorf("%s", message)
	}
	return fmt.Errorf("%s: %v", message, err)
}

// Error is a richer error for failed upstream operations. LogMsg goes to the
// log stream; SimpleMsg is safe to show to API consumers.
type Error struct {
	LogMsg     string
	SimpleMsg  string
	Response   string
	URL        string
	HTTPStatus int
}

// Error implements the error interface
func (e Error) Error() string {
	if e.SimpleMsg != "" {
		return e.SimpleMsg
	}
	return e.LogMsg
}

// Log writes the full detail of the error to the log stream and returns an
// error suitable for propagation
func (e Error) Log(ctx LogContext, prefix string) error {
	message := e.LogMsg
	if prefix != "" {
		message = prefix + ": " + message
	}
	if e.URL != "" {
		message += fmt.Sprintf(" url=%q", e.URL)
	}
	if e.HTTPStatus != 0 {
		message += fmt.Sprintf(" status=%d", e.HTTPStatus)
	}
	if e.Response != "" {
		message += "\nresponse: " + e.Response
	}
	log.Printf("[%s:%s] ERROR %s", ctx.AppName(), ctx.SessionID(), message)
	return e
}

// HTTPErr is an error that carries an HTTP status code
type HTTPErr struct {
	Status  int
	Message string
}

// Error implements the error interface
func (e HTTPErr) Error() string {
	return e.Message
}

type errorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// HTTPError logs a failed request and writes a JSON error body with the
// given status code
func HTTPError(r *http.Request, w http.ResponseWriter, ctx LogContext, message string, status int) {
	LogAudit(ctx, LogAuditInput{
		Actor:    r.RemoteAddr,
		Action:   r.Method + " response",
		Actee:    r.URL.String(),
		Message:  message,
		Severity: ERROR,
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: message, Status: status})
}
