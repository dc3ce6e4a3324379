package shellcache

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"

	"fupa/services/logger"
)

// Controller owns the active worker and routes every request through it.
type Controller struct {
	storage Storage
	network Fetcher
	log     logger.Logger

	mu     sync.Mutex
	active atomic.Pointer[Worker]
}

func NewController(storage Storage, network Fetcher, log logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop{}
	}
	return &Controller{storage: storage, network: network, log: log}
}

// Register installs a worker for m and, on success, activates it right away
// and makes it serve all requests. On failure the previous worker stays active.
func (c *Controller) Register(ctx context.Context, m Manifest) (*Worker, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w := newWorker(m, c.storage, c.network, c.log, c.Active)
	if err := w.install(ctx); err != nil {
		c.log.Error("shell cache: install %s failed: %v", m.BucketName(), err)
		return w, err
	}
	c.log.Info("shell cache: installed %s (%d resources)", m.BucketName(), len(m.Paths))

	if err := w.activate(ctx); err != nil {
		w.setState(StateRedundant)
		c.log.Error("shell cache: activate %s failed: %v", m.BucketName(), err)
		return w, err
	}

	if old := c.active.Swap(w); old != nil && old != w {
		old.setState(StateRedundant)
	}
	c.log.Info("shell cache: %s active", m.BucketName())
	return w, nil
}

// Active returns the worker serving requests, or nil before the first install.
func (c *Controller) Active() *Worker {
	return c.active.Load()
}

func (c *Controller) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if w := c.active.Load(); w != nil {
		w.ServeHTTP(rw, r)
		return
	}
	resp, err := c.network.Fetch(r.Context(), r)
	if err != nil {
		http.Error(rw, "origin unreachable", http.StatusBadGateway)
		return
	}
	resp.write(rw, SourceNetwork)
}
