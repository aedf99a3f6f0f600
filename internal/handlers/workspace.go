package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"mddrop/internal/contextutil"
	"mddrop/internal/locator"
	"mddrop/internal/storage"
	"mddrop/internal/workspace"
)

// WorkspaceHandler manages the open-document state that drops resolve against.
type WorkspaceHandler struct {
	workspaces *workspace.Manager
}

// NewWorkspaceHandler creates a new WorkspaceHandler.
func NewWorkspaceHandler(workspaces *workspace.Manager) *WorkspaceHandler {
	return &WorkspaceHandler{workspaces: workspaces}
}

// WorkspaceRequest creates or updates a workspace.
type WorkspaceRequest struct {
	Name        string   `json:"name"`
	Roots       []string `json:"roots,omitempty"`
	DropEnabled *bool    `json:"dropEnabled,omitempty"`
}

// WorkspaceResponse describes a workspace.
type WorkspaceResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DropEnabled bool   `json:"dropEnabled"`
	CreatedAt   string `json:"createdAt"`
}

// RootsRequest replaces the roots of a workspace.
type RootsRequest struct {
	Roots []string `json:"roots"`
}

// CompositeRequest records an open composite document.
type CompositeRequest struct {
	URI      string   `json:"uri"`
	Children []string `json:"children"`
}

// CompositeResponse describes a stored composite document.
type CompositeResponse struct {
	ID       string   `json:"id"`
	URI      string   `json:"uri"`
	Children []string `json:"children"`
}

func toWorkspaceResponse(ws storage.WorkspaceRecord) WorkspaceResponse {
	return WorkspaceResponse{
		ID:          ws.ID,
		Name:        ws.Name,
		DropEnabled: ws.DropEnabled,
		CreatedAt:   ws.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// List handles GET /api/workspaces.
func (h *WorkspaceHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	all, err := h.workspaces.List(ctx)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to list workspaces", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list workspaces")
		return
	}

	resp := make([]WorkspaceResponse, 0, len(all))
	for _, ws := range all {
		resp = append(resp, toWorkspaceResponse(ws))
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Create handles POST /api/workspaces.
func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req WorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := validateURIs("roots", req.Roots); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ws, err := h.workspaces.Ensure(ctx, req.Name, req.Roots, req.DropEnabled)
	if err != nil {
		logger.ErrorContext(ctx, "failed to create workspace", "name", req.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create workspace")
		return
	}

	logger.InfoContext(ctx, "workspace ready", "name", ws.Name, "roots", len(req.Roots))
	writeJSON(ctx, w, http.StatusOK, toWorkspaceResponse(ws))
}

// SetRoots handles PUT /api/workspaces/{name}/roots.
func (h *WorkspaceHandler) SetRoots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name, ok := workspaceName(w, r)
	if !ok {
		return
	}

	var req RootsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateURIs("roots", req.Roots); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.workspaces.SetRoots(ctx, name, req.Roots); err != nil {
		h.writeStoreError(w, r, err, "Failed to set roots")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OpenComposite handles PUT /api/workspaces/{name}/composites.
func (h *WorkspaceHandler) OpenComposite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name, ok := workspaceName(w, r)
	if !ok {
		return
	}

	var req CompositeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateURIs("uri", []string{req.URI}); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateURIs("children", req.Children); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.workspaces.OpenComposite(ctx, name, req.URI, req.Children)
	if err != nil {
		h.writeStoreError(w, r, err, "Failed to open composite")
		return
	}

	writeJSON(ctx, w, http.StatusOK, CompositeResponse{
		ID:       rec.ID,
		URI:      rec.URI,
		Children: rec.Children,
	})
}

// CloseComposite handles DELETE /api/workspaces/{name}/composites?uri=...
func (h *WorkspaceHandler) CloseComposite(w http.ResponseWriter, r *http.Request) {
	name, ok := workspaceName(w, r)
	if !ok {
		return
	}

	uri := r.URL.Query().Get("uri")
	if uri == "" {
		writeError(w, http.StatusBadRequest, "uri is required")
		return
	}

	if err := h.workspaces.CloseComposite(r.Context(), name, uri); err != nil {
		h.writeStoreError(w, r, err, "Failed to close composite")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WorkspaceHandler) writeStoreError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	ctx := r.Context()
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Resource not found")
		return
	}
	contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "workspace store error", "error", err)
	writeError(w, http.StatusInternalServerError, defaultMsg)
}

func workspaceName(w http.ResponseWriter, r *http.Request) (string, bool) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || strings.TrimSpace(name) == "" {
		writeError(w, http.StatusBadRequest, "Invalid workspace name")
		return "", false
	}
	return name, true
}

func validateURIs(field string, uris []string) error {
	for _, u := range uris {
		if _, ok := locator.Parse(u); !ok {
			return fmt.Errorf("%s: %q is not an absolute URI", field, u)
		}
	}
	return nil
}
