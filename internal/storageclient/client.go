// Package storageclient is a stand-in for JULEA's higher-level KV/batch/
// storage client API. It keeps an in-memory namespace of key/value items;
// every operation brackets itself in jtrace.FileBegin/FileEnd so a trace
// of a program using this client shows the same file-operation shape the
// tracing core defines for real storage backends.
package storageclient

import (
	"errors"
	"flag"
	"sync"

	"github.com/Beyney/julea/internal/jtrace"
)

// ErrNotFound is returned by Get when key is absent from the namespace.
var ErrNotFound = errors.New("storageclient: item not found")

// Flags are the command-line/environment-derived settings a binary needs
// to construct a Client, mirroring the ServerURL/Namespace shape of the
// higher-level client this package stands in for.
type Flags struct {
	ServerURL string
	Namespace string
}

// Register wires f's fields to a FlagSet, defaulting ServerURL from
// JULEA_STORAGE_URL the way the original reads its server flag from
// ISOLATE_SERVER.
func (f *Flags) Register(fs *flag.FlagSet, lookupEnv func(string) (string, bool)) {
	def, _ := lookupEnv("JULEA_STORAGE_URL")
	fs.StringVar(&f.ServerURL, "storage-server", def, "storage server to use; defaults to $JULEA_STORAGE_URL")
	fs.StringVar(&f.Namespace, "namespace", "default", "storage namespace")
}

// Parse validates f after flag.Parse has populated it.
func (f *Flags) Parse() error {
	if f.ServerURL == "" {
		return errors.New("storageclient: -storage-server must be specified")
	}
	if f.Namespace == "" {
		return errors.New("storageclient: -namespace must be specified")
	}
	return nil
}

// Client is an in-process stand-in for a KV/batch storage backend, scoped
// to one namespace. It does not talk to a real server: ServerURL is kept
// only so callers and traces can reference where a real deployment would
// point.
type Client struct {
	serverURL string
	namespace string

	mu    sync.RWMutex
	items map[string][]byte
}

// New constructs a Client for the given flags.
func New(f Flags) *Client {
	return &Client{
		serverURL: f.ServerURL,
		namespace: f.Namespace,
		items:     make(map[string][]byte),
	}
}

func (c *Client) key(name string) string {
	return c.namespace + "/" + name
}

// Put stores value under name, tracing it as a Write file operation.
func (c *Client) Put(name string, value []byte) {
	path := c.key(name)
	jtrace.FileBegin(path, jtrace.Write)
	c.mu.Lock()
	c.items[path] = append([]byte(nil), value...)
	c.mu.Unlock()
	jtrace.FileEnd(path, jtrace.Write, int64(len(value)), 0)
}

// Get retrieves the value stored under name, tracing it as a Read file
// operation. It returns ErrNotFound if name was never Put.
func (c *Client) Get(name string) ([]byte, error) {
	path := c.key(name)
	jtrace.FileBegin(path, jtrace.Read)
	c.mu.RLock()
	value, ok := c.items[path]
	c.mu.RUnlock()
	if !ok {
		jtrace.FileEnd(path, jtrace.Read, 0, 0)
		return nil, ErrNotFound
	}
	jtrace.FileEnd(path, jtrace.Read, int64(len(value)), 0)
	return append([]byte(nil), value...), nil
}

// Delete removes name from the namespace, tracing it as a Delete file
// operation. Deleting an absent name is not an error.
func (c *Client) Delete(name string) {
	path := c.key(name)
	jtrace.FileBegin(path, jtrace.Delete)
	c.mu.Lock()
	delete(c.items, path)
	c.mu.Unlock()
	jtrace.FileEnd(path, jtrace.Delete, 0, 0)
}

// BatchPut stores every item, tracing each with its own FileBegin/FileEnd
// pair, matching the dispatcher's per-operation tracing contract rather
// than inventing a batch-level trace event the spec never defines.
func (c *Client) BatchPut(items map[string][]byte) {
	for name, value := range items {
		c.Put(name, value)
	}
}
