package betterapi

import (
	"net/http"
)

// redirectResponse implements Response for HTTP redirects.
type redirectResponse struct {
	url    string
	status int
}

func (resp redirectResponse) Render(w http.ResponseWriter, r *http.Request) error {
	status := resp.status
	if status < 300 || status >= 400 {
		status = http.StatusFound
	}
	http.Redirect(w, r, resp.url, status)
	return nil
}

// Redirect creates a 302 Found (temporary redirect) response.
func Redirect(url string) Response {
	return redirectResponse{url: url, status: http.StatusFound}
}

// RedirectPermanent creates a 301 Moved Permanently response.
func RedirectPermanent(url string) Response {
	return redirectResponse{url: url, status: http.StatusMovedPermanently}
}

// RedirectSeeOther creates a 303 See Other response, the usual choice after
// a successful POST.
func RedirectSeeOther(url string) Response {
	return redirectResponse{url: url, status: http.StatusSeeOther}
}

// RedirectTemporary creates a 307 Temporary Redirect response. Unlike 302,
// this preserves the request method.
func RedirectTemporary(url string) Response {
	return redirectResponse{url: url, status: http.StatusTemporaryRedirect}
}

// RedirectWithStatus creates a redirect with a custom 3xx status code.
func RedirectWithStatus(url string, status int) Response {
	return redirectResponse{url: url, status: status}
}
