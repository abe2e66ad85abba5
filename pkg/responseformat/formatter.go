// Package responseformat encodes API responses as JSON or MessagePack.
package responseformat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vmihailenco/msgpack/v5"
)

// Supported encodings
const (
	FormatJSON    = "json"
	FormatMsgPack = "msgpack"

	ContentTypeJSON    = "application/json"
	ContentTypeMsgPack = "application/x-msgpack"
)

// Formatter handles encoding and writing responses in JSON or MessagePack format
type Formatter struct{}

// NewFormatter creates a new response formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// ErrorBody is the payload written by WriteError
type ErrorBody struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// Negotiate picks the encoding for a request. MessagePack is used when
// format=msgpack is given or the client accepts only MessagePack.
func Negotiate(req *http.Request) string {
	switch req.URL.Query().Get("format") {
	case FormatMsgPack:
		return FormatMsgPack
	case FormatJSON:
		return FormatJSON
	}
	if req.Header.Get("Accept") == ContentTypeMsgPack {
		return FormatMsgPack
	}
	return FormatJSON
}

// WriteResponse writes data with the given status in the encoding requested by req.
// JSON is the default format. The body is encoded before the status is sent, so a value
// that cannot be encoded produces a 500 error body instead of a truncated response.
func (f *Formatter) WriteResponse(w http.ResponseWriter, req *http.Request, status int, data any) error {
	format := Negotiate(req)

	var buf bytes.Buffer
	if err := Encode(&buf, format, data); err != nil {
		buf.Reset()
		body := ErrorBody{Error: "error encoding response", Status: http.StatusInternalServerError}
		if encErr := Encode(&buf, format, body); encErr != nil {
			return encErr
		}
		w.Header().Set("Content-Type", ContentType(format))
		w.WriteHeader(http.StatusInternalServerError)
		w.Write(buf.Bytes())
		return fmt.Errorf("error encoding %s response: %w", format, err)
	}

	w.Header().Set("Content-Type", ContentType(format))
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteError writes an error body with the given status
func (f *Formatter) WriteError(w http.ResponseWriter, req *http.Request, status int, msg string) error {
	return f.WriteResponse(w, req, status, ErrorBody{Error: msg, Status: status})
}

// ContentType returns the MIME type of an encoding
func ContentType(format string) string {
	if format == FormatMsgPack {
		return ContentTypeMsgPack
	}
	return ContentTypeJSON
}

// Encode writes data to w in the named encoding
func Encode(w io.Writer, format string, data any) error {
	switch format {
	case FormatJSON, "":
		return json.NewEncoder(w).Encode(data)
	case FormatMsgPack:
		encoder := msgpack.NewEncoder(w)
		encoder.SetCustomStructTag("json") // Use json tags for MessagePack
		return encoder.Encode(data)
	}
	return fmt.Errorf("unsupported format: %q", format)
}
