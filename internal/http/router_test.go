package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"mddrop/internal/service"
	servicemocks "mddrop/internal/service/mocks"
	"mddrop/internal/storage"
	storagemocks "mddrop/internal/storage/mocks"
	"mddrop/internal/workspace"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func newTestDeps(t *testing.T, ctrl *gomock.Controller) (*Deps, *servicemocks.MockDropService, *storagemocks.MockWorkspaceStore) {
	t.Helper()

	mockDropService := servicemocks.NewMockDropService(ctrl)
	mockStore := storagemocks.NewMockWorkspaceStore(ctrl)
	manager, err := workspace.NewManager(mockStore, 4)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	return &Deps{
		DropService: mockDropService,
		Workspaces:  manager,
		DB:          okPinger{},
		DropEnabled: true,
	}, mockDropService, mockStore
}

func TestNewRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps, _, _ := newTestDeps(t, ctrl)
	router := NewRouter(deps)

	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		setup      func(*servicemocks.MockDropService, *storagemocks.MockWorkspaceStore)
		wantStatus int
	}{
		{
			name:       "GET /api/health",
			method:     http.MethodGet,
			path:       "/api/health",
			wantStatus: http.StatusOK,
		},
		{
			name:   "GET /api/workspaces",
			method: http.MethodGet,
			path:   "/api/workspaces",
			setup: func(_ *servicemocks.MockDropService, s *storagemocks.MockWorkspaceStore) {
				s.EXPECT().ListAll(gomock.Any()).Return([]storage.WorkspaceRecord{{ID: "w1", Name: "main"}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "POST /api/workspaces exists",
			method:     http.MethodPost,
			path:       "/api/workspaces",
			body:       "invalid json",
			wantStatus: http.StatusBadRequest, // Bad request due to invalid body, but route exists
		},
		{
			name:       "PUT roots exists",
			method:     http.MethodPut,
			path:       "/api/workspaces/main/roots",
			body:       "invalid json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "PUT composites exists",
			method:     http.MethodPut,
			path:       "/api/workspaces/main/composites",
			body:       "invalid json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "DELETE composites requires uri",
			method:     http.MethodDelete,
			path:       "/api/workspaces/main/composites",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "POST drop",
			method: http.MethodPost,
			path:   "/api/workspaces/main/drop",
			body:   `{"document":"file:///a/notes.md","uriList":"file:///a/b.md"}`,
			setup: func(d *servicemocks.MockDropService, _ *storagemocks.MockWorkspaceStore) {
				d.EXPECT().Drop(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req service.DropRequest) (service.DropResponse, error) {
						if req.Workspace != "main" {
							t.Errorf("Drop() workspace = %q, want main", req.Workspace)
						}
						return service.DropResponse{Inserted: true, Text: "[label](b.md)"}, nil
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "GET drop method not allowed",
			method:     http.MethodGet,
			path:       "/api/workspaces/main/drop",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			path:       "/api/unknown",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			deps, mockDropService, mockStore := newTestDeps(t, ctrl)
			if tt.setup != nil {
				tt.setup(mockDropService, mockStore)
			}
			router := NewRouter(deps)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_WorkspaceLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps, _, mockStore := newTestDeps(t, ctrl)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	ws := storage.WorkspaceRecord{ID: "w1", Name: "main", DropEnabled: true, CreatedAt: created}

	gomock.InOrder(
		mockStore.EXPECT().GetOrCreateByName(gomock.Any(), "main").Return(ws, nil),
		mockStore.EXPECT().SetRoots(gomock.Any(), "w1", []string{"file:///work"}).Return(nil),
	)
	router := NewRouter(deps)

	req := httptest.NewRequest(http.MethodPost, "/api/workspaces", strings.NewReader(`{"name":"main","roots":["file:///work"]}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("POST /api/workspaces status = %v, want %v", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["name"] != "main" || resp["createdAt"] != "2026-01-02T03:04:05Z" {
		t.Errorf("POST /api/workspaces response = %v", resp)
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps, _, _ := newTestDeps(t, ctrl)
	router := NewRouter(deps)

	req := httptest.NewRequest(http.MethodPost, "/api/workspaces", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// Check CORS headers are present
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Router should apply CORS middleware")
	}
}

func TestRouter_PreflightAllowsMutations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deps, _, _ := newTestDeps(t, ctrl)
	router := NewRouter(deps)

	req := httptest.NewRequest(http.MethodOptions, "/api/workspaces/main/composites", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("OPTIONS status = %v, want %v", w.Code, http.StatusNoContent)
	}
	if !strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "DELETE") {
		t.Errorf("Access-Control-Allow-Methods = %q, want DELETE", w.Header().Get("Access-Control-Allow-Methods"))
	}
}
