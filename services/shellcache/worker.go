package shellcache

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"fupa/services/logger"
)

type State int32

const (
	StateInstalling State = iota
	StateInstalled
	StateActivating
	StateActivated
	StateRedundant
)

func (s State) String() string {
	switch s {
	case StateInstalling:
		return "installing"
	case StateInstalled:
		return "installed"
	case StateActivating:
		return "activating"
	case StateActivated:
		return "activated"
	case StateRedundant:
		return "redundant"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Worker serves requests for one manifest version.
type Worker struct {
	manifest Manifest
	storage  Storage
	network  Fetcher
	log      logger.Logger
	state    atomic.Int32
	// active reports the worker currently in charge, for requests that
	// reach this one after it was replaced.
	active func() *Worker
}

func newWorker(m Manifest, storage Storage, network Fetcher, log logger.Logger, active func() *Worker) *Worker {
	w := &Worker{manifest: m, storage: storage, network: network, log: log, active: active}
	w.state.Store(int32(StateInstalling))
	return w
}

func (w *Worker) State() State {
	return State(w.state.Load())
}

func (w *Worker) Manifest() Manifest {
	return w.manifest
}

func (w *Worker) setState(s State) {
	w.state.Store(int32(s))
}

// install fetches every manifest path and stores them only if all succeeded.
func (w *Worker) install(ctx context.Context) error {
	entries := make(map[string]*Response, len(w.manifest.Paths))
	for _, path := range w.manifest.Paths {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
		if err != nil {
			w.setState(StateRedundant)
			return fmt.Errorf("shell resource %s: %w", path, err)
		}
		resp, err := w.network.Fetch(ctx, req)
		if err != nil {
			w.setState(StateRedundant)
			return fmt.Errorf("shell resource %s: %w", path, err)
		}
		if !resp.ok() {
			w.setState(StateRedundant)
			return fmt.Errorf("shell resource %s: status %d", path, resp.Status)
		}
		entries[path] = resp.storable()
	}

	bucket, err := w.storage.Open(ctx, w.manifest.BucketName())
	if err != nil {
		w.setState(StateRedundant)
		return fmt.Errorf("open bucket %s: %w", w.manifest.BucketName(), err)
	}
	if err := bucket.PutAll(ctx, entries); err != nil {
		w.setState(StateRedundant)
		return fmt.Errorf("fill bucket %s: %w", w.manifest.BucketName(), err)
	}
	w.setState(StateInstalled)
	return nil
}

// activate drops every bucket that does not belong to this version.
func (w *Worker) activate(ctx context.Context) error {
	w.setState(StateActivating)
	keys, err := w.storage.Keys(ctx)
	if err != nil {
		return fmt.Errorf("list buckets: %w", err)
	}
	current := w.manifest.BucketName()
	for _, k := range keys {
		if k == current {
			continue
		}
		if _, err := w.storage.Delete(ctx, k); err != nil {
			return fmt.Errorf("delete bucket %s: %w", k, err)
		}
		w.log.Info("shell cache: deleted stale bucket %s", k)
	}
	w.setState(StateActivated)
	return nil
}

func (w *Worker) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// A replaced worker's bucket is gone; it must not read or recreate it.
	if w.State() == StateRedundant {
		if next := w.successor(); next != nil {
			next.ServeHTTP(rw, r)
			return
		}
		w.passThrough(rw, r)
		return
	}

	if r.Method != http.MethodGet {
		w.passThrough(rw, r)
		return
	}

	key := r.URL.RequestURI()

	if w.manifest.Contains(r.URL.Path) {
		w.cacheFirst(ctx, rw, r, key)
		return
	}

	resp, err := w.network.Fetch(ctx, r)
	if err == nil {
		resp.write(rw, SourceNetwork)
		return
	}
	w.log.Debug("shell cache: network failed for %s: %v", key, err)

	fallbackKey := key
	if isNavigation(r) {
		fallbackKey = "/"
	}
	cached, cerr := w.match(ctx, fallbackKey)
	if cerr != nil {
		w.log.Error("shell cache: match %s: %v", fallbackKey, cerr)
	}
	if cached == nil {
		http.Error(rw, "offline and not cached", http.StatusGatewayTimeout)
		return
	}
	cached.write(rw, SourceFallback)
}

func (w *Worker) cacheFirst(ctx context.Context, rw http.ResponseWriter, r *http.Request, key string) {
	cached, err := w.match(ctx, key)
	if err != nil {
		w.log.Error("shell cache: match %s: %v", key, err)
	}
	if cached != nil {
		cached.write(rw, SourceCache)
		return
	}

	// Always fetch the whole resource so a partial body is never stored
	// under the full key.
	full := r.Clone(ctx)
	full.Header.Del("Range")
	full.Header.Del("If-Range")
	resp, err := w.network.Fetch(ctx, full)
	if err != nil {
		http.Error(rw, "offline and not cached", http.StatusGatewayTimeout)
		return
	}
	if resp.Status == http.StatusOK {
		if err := w.put(ctx, key, resp.storable()); err != nil {
			w.log.Error("shell cache: put %s: %v", key, err)
		}
	}
	resp.write(rw, SourceNetwork)
}

func (w *Worker) passThrough(rw http.ResponseWriter, r *http.Request) {
	resp, err := w.network.Fetch(r.Context(), r)
	if err != nil {
		http.Error(rw, "origin unreachable", http.StatusBadGateway)
		return
	}
	resp.write(rw, SourceNetwork)
}

func (w *Worker) successor() *Worker {
	if w.active == nil {
		return nil
	}
	next := w.active()
	if next == nil || next == w || next.State() == StateRedundant {
		return nil
	}
	return next
}

func (w *Worker) match(ctx context.Context, key string) (*Response, error) {
	bucket, err := w.storage.Lookup(ctx, w.manifest.BucketName())
	if err != nil || bucket == nil {
		return nil, err
	}
	return bucket.Match(ctx, key)
}

// put stores resp in this worker's bucket. A bucket deleted by a newer
// version is skipped, never recreated.
func (w *Worker) put(ctx context.Context, key string, resp *Response) error {
	bucket, err := w.storage.Lookup(ctx, w.manifest.BucketName())
	if err != nil {
		return err
	}
	if bucket == nil {
		w.log.Debug("shell cache: %s is gone, not storing %s", w.manifest.BucketName(), key)
		return nil
	}
	err = bucket.Put(ctx, key, resp)
	if errors.Is(err, ErrBucketDeleted) {
		w.log.Debug("shell cache: %s deleted while storing %s", w.manifest.BucketName(), key)
		return nil
	}
	return err
}

func isNavigation(r *http.Request) bool {
	if mode := r.Header.Get("Sec-Fetch-Mode"); mode != "" {
		return mode == "navigate"
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
