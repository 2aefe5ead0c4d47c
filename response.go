package betterapi

import (
	"encoding/json"
	"net/http"
)

// Handlers normally return plain values and let the pipeline encode them.
// The constructors below build Response values for the cases where the
// handler needs full control over status, headers, or content type; the
// pipeline passes them through unchanged.

type jsonResponse struct {
	data   any
	status int
}

func (resp jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	status := resp.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	switch status {
	case http.StatusNoContent, http.StatusNotModified:
		return nil // no body for 204 or 304
	}
	return json.NewEncoder(w).Encode(resp.data)
}

// JSON creates an application/json response with 200 OK status.
func JSON(v any) Response {
	return jsonResponse{data: v, status: http.StatusOK}
}

// JSONWithStatus creates an application/json response with a custom status
// code.
func JSONWithStatus(v any, status int) Response {
	return jsonResponse{data: v, status: status}
}

type stringResponse struct {
	content     string
	contentType string
	status      int
}

func (resp stringResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", resp.contentType)

	status := resp.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	if resp.content != "" {
		_, err := w.Write([]byte(resp.content))
		return err
	}
	return nil
}

// String creates a text/plain response with 200 OK status.
func String(content string) Response {
	return stringResponse{content: content, contentType: "text/plain; charset=utf-8"}
}

// StringWithStatus creates a text/plain response with a custom status code.
func StringWithStatus(content string, status int) Response {
	return stringResponse{content: content, contentType: "text/plain; charset=utf-8", status: status}
}

type statusResponse int

func (resp statusResponse) Render(w http.ResponseWriter, r *http.Request) error {
	code := int(resp)
	if code == 0 {
		code = http.StatusOK
	}
	w.WriteHeader(code)
	return nil
}

// Status creates an empty response with the specified status code.
func Status(code int) Response {
	return statusResponse(code)
}

// NoContent creates a 204 No Content response.
func NoContent() Response {
	return statusResponse(http.StatusNoContent)
}
