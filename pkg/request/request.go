// Package request builds immutable descriptions of HTTP calls.
//
// A Descriptor is produced either from an Options value via New or by chaining
// a Builder. Both paths validate the target URL and method up front, so every
// Descriptor handed to a transport is dispatchable.
package request

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strings"
)

type Method string

const (
	GET    Method = http.MethodGet
	POST   Method = http.MethodPost
	PUT    Method = http.MethodPut
	DELETE Method = http.MethodDelete
	PATCH  Method = http.MethodPatch
	HEAD   Method = http.MethodHead
)

func (m Method) valid() bool {
	switch m {
	case GET, POST, PUT, DELETE, PATCH, HEAD:
		return true
	}
	return false
}

var (
	ErrEmptyPath     = errors.New("request: empty path")
	ErrInvalidURL    = errors.New("request: path is not an absolute http(s) URL")
	ErrInvalidMethod = errors.New("request: unsupported method")
)

// Options configures New.
//
// Path is MANDATORY and must be an absolute http or https URL. Method defaults
// to GET. Query values are sent in the URL query string; Body, when not empty,
// is sent as a JSON object.
type Options struct {
	Path   string
	Method Method
	Query  map[string]string
	Body   map[string]any
}

// Descriptor is an immutable, validated HTTP request description.
// The zero value is not dispatchable; see IsZero.
type Descriptor struct {
	path   string
	method Method
	query  map[string]string
	body   map[string]any
}

// New validates opts and returns the corresponding Descriptor.
func New(opts Options) (Descriptor, error) {
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		return Descriptor{}, ErrEmptyPath
	}
	u, err := url.Parse(path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrInvalidURL, path)
	}

	method := Method(strings.ToUpper(string(opts.Method)))
	if method == "" {
		method = GET
	}
	if !method.valid() {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrInvalidMethod, opts.Method)
	}

	return Descriptor{
		path:   path,
		method: method,
		query:  maps.Clone(opts.Query),
		body:   maps.Clone(opts.Body),
	}, nil
}

func (d Descriptor) Path() string   { return d.path }
func (d Descriptor) Method() Method { return d.method }
func (d Descriptor) IsZero() bool   { return d.path == "" }
func (d Descriptor) HasBody() bool  { return len(d.body) > 0 }

// Query returns a copy of the query parameters.
func (d Descriptor) Query() map[string]string {
	out := make(map[string]string, len(d.query))
	maps.Copy(out, d.query)
	return out
}

// Body returns a shallow copy of the body parameters.
func (d Descriptor) Body() map[string]any {
	out := make(map[string]any, len(d.body))
	maps.Copy(out, d.body)
	return out
}

// URL renders the path with the query parameters merged into any query the
// path already carries. Keys are encoded in sorted order.
func (d Descriptor) URL() string {
	if len(d.query) == 0 {
		return d.path
	}
	u, err := url.Parse(d.path)
	if err != nil {
		return d.path
	}
	q := u.Query()
	for k, v := range d.query {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (d Descriptor) String() string {
	return string(d.method) + " " + d.URL()
}
