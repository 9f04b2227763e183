// Package jexport is an optional, authenticated HTTP exporter for the
// summary sink's dump: Export posts summary entries to the URL given to
// New as a bearer-authenticated POST. This package does not read
// JULEA_TRACE_EXPORT_URL itself (jconfig exposes it as Config.ExportURL),
// and no code in this module constructs an Exporter.
//
// The token machinery is adapted from the shape of a Token/TokenProvider
// pair built on golang.org/x/oauth2: a Token knows how to attach itself to
// a request and whether it has expired, and a TokenSource mints or
// refreshes one. Unlike a full OAuth flow, this port never launches
// interactive user consent — JULEA_TRACE_EXPORT_TOKEN supplies a
// long-lived bearer token directly, since a tracing sidecar has no
// terminal to prompt from.
package jexport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/Beyney/julea/internal/julog"
)

// Entry is one row of the summary dump, mirroring the "# stack
// duration[s] count" lines jtrace.Fini writes to the echo stream.
type Entry struct {
	Stack       string  `json:"stack"`
	DurationSec float64 `json:"duration_sec"`
	Count       uint64  `json:"count"`
}

// Exporter posts summary entries to a remote collector using a bearer
// token minted from a fixed oauth2.Token. It holds no goroutines of its
// own; Export is called synchronously, typically once from jtrace.Fini's
// caller after reading the dump.
type Exporter struct {
	url    string
	source oauth2.TokenSource
	client *http.Client
}

// New builds an Exporter that posts to url using token for authorization.
// token.Expiry may be zero, meaning it never expires (matching a static
// service-account token that the deployment rotates out of band).
func New(url string, token *oauth2.Token) *Exporter {
	return &Exporter{
		url:    url,
		source: oauth2.StaticTokenSource(token),
		client: http.DefaultClient,
	}
}

// Export POSTs entries to the configured URL as a JSON array, with the
// current token's access token as a Bearer Authorization header. A nil
// Exporter is a safe no-op, so callers can hold an optional *Exporter
// without branching on whether export was configured.
//
// The logger used for the success message is pulled off ctx with
// julog.Get, so Export's logging follows whatever Logger the caller's
// context carries rather than one fixed at construction time.
func (e *Exporter) Export(ctx context.Context, entries []Entry) error {
	if e == nil {
		return nil
	}
	logger := julog.Get(ctx)

	tok, err := e.source.Token()
	if err != nil {
		return fmt.Errorf("jexport: minting token: %w", err)
	}

	body, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("jexport: encoding entries: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("jexport: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	tok.SetAuthHeader(req)

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("jexport: posting summary: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("jexport: collector returned %s", resp.Status)
	}
	logger.Infof("jexport: exported %d summary entries to %s", len(entries), e.url)
	return nil
}

// TokenFromEnv builds a static oauth2.Token from JULEA_TRACE_EXPORT_TOKEN,
// or returns nil if that variable is unset (meaning export is configured
// with a URL but no credential — a misconfiguration the caller should
// warn about and treat as export-disabled).
func TokenFromEnv(lookup func(string) (string, bool)) *oauth2.Token {
	raw, ok := lookup("JULEA_TRACE_EXPORT_TOKEN")
	if !ok || raw == "" {
		return nil
	}
	return &oauth2.Token{
		AccessToken: raw,
		TokenType:   "Bearer",
		Expiry:      time.Time{},
	}
}
