package core

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Query is an ordered list of query parameters. BitoPro does not require a
// particular order, but keeping insertion order makes requests reproducible.
type Query struct {
	keys   []string
	values []string
}

// NewQuery returns an empty query.
func NewQuery() *Query {
	return &Query{}
}

// Set appends key with the formatted value, replacing an existing key in place.
func (q *Query) Set(key string, value any) *Query {
	v := formatParam(value)
	for i, k := range q.keys {
		if k == key {
			q.values[i] = v
			return q
		}
	}
	q.keys = append(q.keys, key)
	q.values = append(q.values, v)
	return q
}

// Get returns the value for key and whether it was set.
func (q *Query) Get(key string) (string, bool) {
	if q == nil {
		return "", false
	}
	for i, k := range q.keys {
		if k == key {
			return q.values[i], true
		}
	}
	return "", false
}

// Len returns the number of parameters.
func (q *Query) Len() int {
	if q == nil {
		return 0
	}
	return len(q.keys)
}

// Encode renders the query as k=v pairs joined with '&' in insertion order.
func (q *Query) Encode() string {
	if q.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for i, k := range q.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(q.values[i]))
	}
	return b.String()
}

func formatParam(value any) string {
	switch val := value.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Request describes one REST call before authentication.
type Request struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Query  *Query `json:"-"`
	// Body is sent as JSON. For signed writes it is also the signed payload.
	Body any `json:"body,omitempty"`
	// Headers are attached to this call only.
	Headers map[string]string `json:"headers,omitempty"`
}

func NewRequest(method, path string) *Request {
	return &Request{
		Method:  method,
		Path:    path,
		Headers: make(map[string]string),
	}
}

func (r *Request) SetQuery(key string, value any) *Request {
	if r.Query == nil {
		r.Query = NewQuery()
	}
	r.Query.Set(key, value)
	return r
}

func (r *Request) SetBody(body any) *Request {
	r.Body = body
	return r
}

func (r *Request) SetHeader(key, value string) *Request {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	r.Headers[key] = value
	return r
}

// SetHeaders copies every entry of headers onto the request.
func (r *Request) SetHeaders(headers map[string]string) *Request {
	for k, v := range headers {
		r.SetHeader(k, v)
	}
	return r
}

// URL joins base, path and the encoded query.
func (r *Request) URL(base string) string {
	u := strings.TrimRight(base, "/") + r.Path
	if q := r.Query.Encode(); q != "" {
		u += "?" + q
	}
	return u
}
