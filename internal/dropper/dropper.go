// Package dropper turns a drop payload into a markdown snippet.
package dropper

import (
	"context"

	"mddrop/internal/anchor"
	"mddrop/internal/contextutil"
	"mddrop/internal/locator"
	"mddrop/internal/snippet"
)

// MimeURIList is the transfer key carrying newline separated resource identifiers.
const MimeURIList = "text/uri-list"

// Transfer gives access to the data carried by a drop. Get may block until the
// payload is available and reports false when the key is not present.
type Transfer interface {
	Get(ctx context.Context, mime string) (string, bool, error)
}

// StaticTransfer is a Transfer backed by a map of already available payloads.
type StaticTransfer map[string]string

// Get returns the payload stored under mime.
func (t StaticTransfer) Get(_ context.Context, mime string) (string, bool, error) {
	v, ok := t[mime]
	return v, ok, nil
}

// Provide builds the snippet to insert when transfer is dropped into document.
// It reports false when there is nothing to insert: no payload, a failed
// transfer, cancellation, or no parsable locators.
func Provide(ctx context.Context, document locator.Locator, transfer Transfer, ws anchor.Workspace, opts snippet.Options) (*snippet.Snippet, bool) {
	logger := contextutil.LoggerFromContext(ctx)

	if transfer == nil {
		return nil, false
	}
	raw, ok, err := transfer.Get(ctx, MimeURIList)
	if err != nil {
		logger.DebugContext(ctx, "drop payload unavailable", "mime", MimeURIList, "error", err)
		return nil, false
	}
	if !ok || raw == "" {
		return nil, false
	}

	if ctx.Err() != nil {
		logger.DebugContext(ctx, "drop cancelled before parsing", "error", ctx.Err())
		return nil, false
	}

	locs := locator.ParseList(raw)
	if len(locs) == 0 {
		logger.DebugContext(ctx, "drop payload contained no valid locators")
		return nil, false
	}

	dir, hasDir := anchor.Resolve(document, ws)
	s, ok := snippet.Build(locs, dir, hasDir, opts)
	if !ok {
		return nil, false
	}

	logger.DebugContext(ctx, "drop snippet built",
		"document", document.String(),
		"items", len(locs),
		"relative", hasDir,
	)
	return s, true
}
