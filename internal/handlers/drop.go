package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"mddrop/internal/contextutil"
	"mddrop/internal/service"
	"mddrop/internal/snippet"
)

// DropHandler handles HTTP requests that turn dropped URIs into snippets.
type DropHandler struct {
	dropService service.DropService
}

// NewDropHandler creates a new DropHandler.
func NewDropHandler(dropService service.DropService) *DropHandler {
	return &DropHandler{
		dropService: dropService,
	}
}

// DropOptions mirrors snippet.Options on the wire. Omitted fields take defaults.
type DropOptions struct {
	PlaceholderText       *string `json:"placeholderText,omitempty"`
	PlaceholderStartIndex *int    `json:"placeholderStartIndex,omitempty"`
	InsertAsImage         *bool   `json:"insertAsImage,omitempty"`
	Separator             *string `json:"separator,omitempty"`
}

// DropRequest represents the HTTP request payload for a drop.
type DropRequest struct {
	// URI of the document receiving the drop
	Document string `json:"document"`
	// Contents of the text/uri-list transfer
	URIList string       `json:"uriList"`
	Options *DropOptions `json:"options,omitempty"`
	// Render the snippet to HTML as well
	Preview bool `json:"preview,omitempty"`
}

// LinkResponse is a link found in the rendered preview.
type LinkResponse struct {
	Image       bool   `json:"image"`
	Label       string `json:"label"`
	Destination string `json:"destination"`
	Target      string `json:"target,omitempty"`
}

// DropResponse represents the HTTP response payload for a drop.
type DropResponse struct {
	Inserted     bool           `json:"inserted"`
	Text         string         `json:"text,omitempty"`
	Template     string         `json:"template,omitempty"`
	TabStops     []int          `json:"tabStops,omitempty"`
	FinalTabStop int            `json:"finalTabStop,omitempty"`
	HTML         string         `json:"html,omitempty"`
	Links        []LinkResponse `json:"links,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles POST /api/workspaces/{name}/drop.
func (h *DropHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid workspace name")
		return
	}

	var req DropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	svcReq := service.DropRequest{
		Workspace: name,
		Document:  req.Document,
		URIList:   req.URIList,
		Preview:   req.Preview,
	}
	if req.Options != nil {
		svcReq.Options = snippet.Options{
			PlaceholderText:       req.Options.PlaceholderText,
			PlaceholderStartIndex: req.Options.PlaceholderStartIndex,
			InsertAsImage:         req.Options.InsertAsImage,
			Separator:             req.Options.Separator,
		}
	}

	svcResp, err := h.dropService.Drop(ctx, svcReq)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to process drop")
		return
	}

	resp := DropResponse{
		Inserted:     svcResp.Inserted,
		Text:         svcResp.Text,
		Template:     svcResp.Template,
		TabStops:     svcResp.TabStops,
		FinalTabStop: svcResp.FinalTabStop,
		HTML:         svcResp.HTML,
	}
	for _, l := range svcResp.Links {
		resp.Links = append(resp.Links, LinkResponse{
			Image:       l.Image,
			Label:       l.Label,
			Destination: l.Destination,
			Target:      l.Target,
		})
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}

// handleServiceError maps service errors to appropriate HTTP status codes and responses.
func handleServiceError(ctx context.Context, w http.ResponseWriter, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		logger.WarnContext(ctx, "validation failed", "error", err)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", validationErr.Error()))
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "Resource not found")
	case errors.Is(err, service.ErrDisabled):
		writeError(w, http.StatusConflict, "Drop to link is disabled")
	default:
		logger.ErrorContext(ctx, "service error", "error", err)
		writeError(w, http.StatusInternalServerError, defaultMsg)
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}
