package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_drop_service.go -package=mocks -mock_names=DropService=MockDropService mddrop/internal/service DropService

import (
	"context"
	"errors"
	"strings"

	"mddrop/internal/anchor"
	"mddrop/internal/contextutil"
	"mddrop/internal/dropper"
	"mddrop/internal/locator"
	"mddrop/internal/preview"
	"mddrop/internal/snippet"
	"mddrop/internal/storage"
	"mddrop/internal/workspace"
)

// DropRequest describes resources dropped into a document of a workspace.
type DropRequest struct {
	Workspace string
	Document  string
	URIList   string
	Options   snippet.Options
	Preview   bool
}

// DropResponse is the snippet to insert. Inserted is false when there is
// nothing to insert; the other fields are then empty.
type DropResponse struct {
	Inserted     bool
	Text         string
	Template     string
	TabStops     []int
	FinalTabStop int
	HTML         string
	Links        []preview.Link
}

// DropService turns drops into markdown snippets.
type DropService interface {
	// Drop builds the snippet for a drop.
	Drop(ctx context.Context, req DropRequest) (DropResponse, error)
}

// DropSettings holds service-wide drop configuration.
type DropSettings struct {
	// Enabled is the global feature switch.
	Enabled bool
	// Separator overrides the default separator when the request has none.
	Separator *string
}

type dropService struct {
	workspaces *workspace.Manager
	renderer   *preview.Renderer
	settings   DropSettings
}

// NewDropService creates a new DropService.
func NewDropService(workspaces *workspace.Manager, renderer *preview.Renderer, settings DropSettings) DropService {
	return &dropService{
		workspaces: workspaces,
		renderer:   renderer,
		settings:   settings,
	}
}

// Drop validates the request, loads the workspace snapshot once and builds the snippet.
func (s *dropService) Drop(ctx context.Context, req DropRequest) (DropResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Workspace) == "" {
		return DropResponse{}, &ValidationError{Field: "workspace", Message: "cannot be empty"}
	}
	document, ok := locator.Parse(req.Document)
	if !ok {
		logger.WarnContext(ctx, "invalid drop target", "document", req.Document)
		return DropResponse{}, &ValidationError{Field: "document", Message: "must be an absolute URI"}
	}
	// Tab stop 0 is the editor's final cursor position.
	if idx := req.Options.PlaceholderStartIndex; idx != nil && *idx < 1 {
		return DropResponse{}, &ValidationError{Field: "placeholderStartIndex", Message: "must be at least 1"}
	}

	if !s.settings.Enabled {
		return DropResponse{}, ErrDisabled
	}

	snap, err := s.workspaces.Snapshot(ctx, req.Workspace)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return DropResponse{}, WrapError(ErrNotFound, "workspace "+req.Workspace)
		}
		logger.ErrorContext(ctx, "failed to load workspace snapshot", "workspace", req.Workspace, "error", err)
		return DropResponse{}, WrapError(err, "failed to load workspace")
	}
	if !snap.DropEnabled {
		return DropResponse{}, ErrDisabled
	}

	opts := req.Options
	if opts.Separator == nil {
		opts.Separator = s.settings.Separator
	}

	transfer := dropper.StaticTransfer{dropper.MimeURIList: req.URIList}
	sn, ok := dropper.Provide(ctx, document, transfer, snap, opts)
	if !ok {
		logger.InfoContext(ctx, "nothing to insert", "workspace", req.Workspace, "document", req.Document)
		return DropResponse{}, nil
	}

	resp := DropResponse{
		Inserted:     true,
		Text:         sn.String(),
		Template:     sn.Template(),
		TabStops:     sn.TabStops(),
		FinalTabStop: sn.FinalTabStop(),
	}

	if req.Preview && s.renderer != nil {
		html, err := s.renderer.HTML(resp.Text)
		if err != nil {
			return DropResponse{}, WrapError(err, "failed to render preview")
		}
		resp.HTML = html
		resp.Links = s.renderer.Links(resp.Text)
		dir, hasDir := anchor.Resolve(document, snap)
		preview.ResolveTargets(resp.Links, dir, hasDir)
	}

	logger.InfoContext(ctx, "drop processed",
		"workspace", req.Workspace,
		"placeholders", len(sn.Placeholders()),
		"fragments", sn.Len(),
		"composites", snap.Composites(),
	)
	return resp, nil
}
