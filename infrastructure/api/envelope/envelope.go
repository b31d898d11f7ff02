// Package envelope provides the response envelope of the supplier
// order API. Every endpoint responds with {code, message, data}: code
// zero on success, otherwise the HTTP status the failure maps to.
package envelope

import (
	"encoding/json"
	"net/http"
	"time"
)

// Wire layouts for timestamps and dates.
const (
	DateTimeLayout = "2006-01-02 15:04:05"
	DateLayout     = "2006-01-02"
)

// CodeOK is the envelope code of a successful response.
const CodeOK = 0

// Response is the envelope wrapping every supplier order payload.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// OK wraps data in a success envelope.
func OK(data any) Response {
	return Response{Code: CodeOK, Message: "success", Data: data}
}

// Fail builds a failure envelope. The code doubles as the HTTP status
// of the response carrying it.
func Fail(code int, message string) Response {
	return Response{Code: code, Message: message}
}

// Write sends resp as JSON with the given HTTP status.
func Write(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// DateTime serializes a time.Time as "2006-01-02 15:04:05".
type DateTime time.Time

// NewDateTime creates a DateTime from a time.Time.
func NewDateTime(t time.Time) DateTime {
	return DateTime(t)
}

// MarshalJSON serializes to the wire layout, or null when zero.
func (dt DateTime) MarshalJSON() ([]byte, error) {
	t := time.Time(dt)
	if t.IsZero() {
		return json.Marshal(nil)
	}
	return json.Marshal(t.Format(DateTimeLayout))
}

// UnmarshalJSON parses the wire layout.
func (dt *DateTime) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*dt = DateTime{}
		return nil
	}
	t, err := time.Parse(DateTimeLayout, *s)
	if err != nil {
		return err
	}
	*dt = DateTime(t)
	return nil
}

// Time returns the underlying time.Time.
func (dt DateTime) Time() time.Time {
	return time.Time(dt)
}

// Date serializes a time.Time as "2006-01-02".
type Date time.Time

// NewDate creates a Date from a time.Time.
func NewDate(t time.Time) Date {
	return Date(t)
}

// MarshalJSON serializes to the wire layout, or null when zero.
func (d Date) MarshalJSON() ([]byte, error) {
	t := time.Time(d)
	if t.IsZero() {
		return json.Marshal(nil)
	}
	return json.Marshal(t.Format(DateLayout))
}

// UnmarshalJSON parses the wire layout.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		return err
	}
	*d = Date(t)
	return nil
}

// Time returns the underlying time.Time.
func (d Date) Time() time.Time {
	return time.Time(d)
}
