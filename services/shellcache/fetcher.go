package shellcache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Fetcher is the network. An error means the origin could not be reached;
// an HTTP error status is still a response.
type Fetcher interface {
	Fetch(ctx context.Context, r *http.Request) (*Response, error)
}

// ErrBodyTooLarge is returned when an origin response exceeds MaxBody.
var ErrBodyTooLarge = errors.New("shellcache: response body too large")

// OriginFetcher forwards requests to the frontend origin.
type OriginFetcher struct {
	Client  *http.Client
	Base    *url.URL
	MaxBody int64
}

func NewOriginFetcher(base string, client *http.Client) (*OriginFetcher, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("origin %q must be an absolute URL", base)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &OriginFetcher{Client: client, Base: u, MaxBody: 32 << 20}, nil
}

func (f *OriginFetcher) Fetch(ctx context.Context, r *http.Request) (*Response, error) {
	target := *f.Base
	target.Path = strings.TrimSuffix(f.Base.Path, "/") + r.URL.Path
	target.RawQuery = r.URL.RawQuery

	out, err := http.NewRequestWithContext(ctx, r.Method, target.String(), r.Body)
	if err != nil {
		return nil, err
	}
	out.Header = r.Header.Clone()
	out.Header.Del("Connection")
	out.ContentLength = r.ContentLength

	resp, err := f.Client.Do(out)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.MaxBody+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > f.MaxBody {
		return nil, fmt.Errorf("%s: %w (limit %d bytes)", target.Path, ErrBodyTooLarge, f.MaxBody)
	}
	return &Response{Status: resp.StatusCode, Header: resp.Header.Clone(), Body: body}, nil
}

// HandlerFetcher serves requests from an in-process handler, such as an
// http.FileServer over the built frontend.
type HandlerFetcher struct {
	Handler http.Handler
}

func (f HandlerFetcher) Fetch(ctx context.Context, r *http.Request) (*Response, error) {
	rec := &recorder{header: http.Header{}}
	f.Handler.ServeHTTP(rec, r.Clone(ctx))
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	return &Response{Status: rec.status, Header: rec.header, Body: rec.body.Bytes()}, nil
}

type recorder struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (r *recorder) Header() http.Header { return r.header }

func (r *recorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
}

func (r *recorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.body.Write(p)
}
