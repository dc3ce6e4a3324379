package shellcache

import (
	"net/http"
	"strconv"
)

// Response is a fully buffered HTTP response as kept in a bucket.
type Response struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

var uncachedHeaders = []string{
	"Set-Cookie", "Connection", "Keep-Alive", "Transfer-Encoding",
	"Proxy-Authenticate", "Upgrade", "Trailer",
}

// Clone returns a deep copy safe to keep while the original is written out.
func (r *Response) Clone() *Response {
	if r == nil {
		return nil
	}
	return &Response{
		Status: r.Status,
		Header: r.Header.Clone(),
		Body:   append([]byte(nil), r.Body...),
	}
}

// storable is the copy put into a bucket, without per-connection headers.
func (r *Response) storable() *Response {
	c := r.Clone()
	if c.Header == nil {
		c.Header = http.Header{}
	}
	for _, h := range uncachedHeaders {
		c.Header.Del(h)
	}
	return c
}

func (r *Response) ok() bool {
	return r.Status >= 200 && r.Status < 300
}

// write sends the response to w, tagging it with how it was resolved.
func (r *Response) write(w http.ResponseWriter, source string) {
	h := w.Header()
	for k, vv := range r.Header {
		for _, v := range vv {
			h.Add(k, v)
		}
	}
	h.Set("Content-Length", strconv.Itoa(len(r.Body)))
	h.Set(SourceHeader, source)
	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write(r.Body)
}

// SourceHeader tells the client where a response came from.
const SourceHeader = "X-Shell-Cache"

const (
	SourceCache    = "cache"
	SourceNetwork  = "network"
	SourceFallback = "fallback"
)
