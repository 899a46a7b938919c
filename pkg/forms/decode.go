package forms

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// formDecodable is implemented by every submission type so JSON and
// URL-encoded payloads decode into the same shape.
type formDecodable interface {
	fromForm(url.Values)
}

// Decode reads the request body into dst, dispatching on Content-Type:
// JSON when the type says so, URL-encoded form fields otherwise.
func Decode(r *http.Request, dst formDecodable) error {
	ct := r.Header.Get("Content-Type")
	if strings.Contains(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return ErrMalformedPayload
		}
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return ErrMalformedPayload
	}
	dst.fromForm(r.PostForm)
	return nil
}
