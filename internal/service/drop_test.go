package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"mddrop/internal/preview"
	"mddrop/internal/service"
	"mddrop/internal/snippet"
	"mddrop/internal/storage"
	"mddrop/internal/storage/mocks"
	"mddrop/internal/workspace"
)

func init() {
	// Set default logger to discard output for cleaner test output
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestService(t *testing.T, store storage.WorkspaceStore, settings service.DropSettings) service.DropService {
	t.Helper()
	manager, err := workspace.NewManager(store, 4)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return service.NewDropService(manager, preview.NewRenderer(), settings)
}

func mainSnapshot(enabled bool) storage.SnapshotRecord {
	return storage.SnapshotRecord{
		Workspace: storage.WorkspaceRecord{ID: "w1", Name: "main", DropEnabled: enabled},
		Roots:     []string{"file:///work"},
		Composites: []storage.CompositeRecord{
			{ID: "c1", URI: "file:///work/nb/analysis.ipynb", Children: []string{
				"notebook-cell:/work/nb/analysis.ipynb#c1",
				"vscode-notebook-cell:/work/nb/analysis.ipynb#c2",
			}},
		},
	}
}

func TestDropService_Drop(t *testing.T) {
	falseVal := false
	sep := ", "

	tests := []struct {
		name         string
		settings     service.DropSettings
		req          service.DropRequest
		wantInserted bool
		wantText     string
		wantTemplate string
		wantStops    []int
	}{
		{
			name:     "image next to document",
			settings: service.DropSettings{Enabled: true},
			req: service.DropRequest{
				Workspace: "main",
				Document:  "file:///a/b/notes.md",
				URIList:   "file:///a/b/c.png",
			},
			wantInserted: true,
			wantText:     "![Alt text](c.png)",
			wantTemplate: "![${1:Alt text}](c.png)",
			wantStops:    []int{1},
		},
		{
			name:     "untitled document uses first root",
			settings: service.DropSettings{Enabled: true},
			req: service.DropRequest{
				Workspace: "main",
				Document:  "untitled:Untitled-3",
				URIList:   "file:///work/docs/guide.md",
			},
			wantInserted: true,
			wantText:     "[label](docs/guide.md)",
			wantTemplate: "[${1:label}](docs/guide.md)",
			wantStops:    []int{1},
		},
		{
			name:     "notebook cell uses notebook directory",
			settings: service.DropSettings{Enabled: true},
			req: service.DropRequest{
				Workspace: "main",
				Document:  "notebook-cell:/work/nb/analysis.ipynb#c1",
				URIList:   "file:///work/nb/plots/fig1.png",
			},
			wantInserted: true,
			wantText:     "![Alt text](plots/fig1.png)",
			wantTemplate: "![${1:Alt text}](plots/fig1.png)",
			wantStops:    []int{1},
		},
		{
			name:     "vscode notebook cell uses notebook directory",
			settings: service.DropSettings{Enabled: true},
			req: service.DropRequest{
				Workspace: "main",
				Document:  "vscode-notebook-cell:/work/nb/analysis.ipynb#c2",
				URIList:   "file:///work/nb/data.csv",
			},
			wantInserted: true,
			wantText:     "[label](data.csv)",
			wantTemplate: "[${1:label}](data.csv)",
			wantStops:    []int{1},
		},
		{
			name:     "configured separator applies when request has none",
			settings: service.DropSettings{Enabled: true, Separator: &sep},
			req: service.DropRequest{
				Workspace: "main",
				Document:  "file:///x/doc.md",
				URIList:   "file:///x/one.txt\nfile:///x/two.txt",
			},
			wantInserted: true,
			wantText:     "[label](one.txt), [label](two.txt)",
			wantTemplate: "[${1:label}](one.txt), [${2:label}](two.txt)",
			wantStops:    []int{1, 2},
		},
		{
			name:     "request options win",
			settings: service.DropSettings{Enabled: true, Separator: &sep},
			req: service.DropRequest{
				Workspace: "main",
				Document:  "file:///x/doc.md",
				URIList:   "file:///x/one.png\nfile:///x/two.png",
				Options:   snippet.Options{InsertAsImage: &falseVal, Separator: new(string)},
			},
			wantInserted: true,
			wantText:     "[label](one.png)[label](two.png)",
			wantTemplate: "[${1:label}](one.png)[${2:label}](two.png)",
			wantStops:    []int{1, 2},
		},
		{
			name:     "nothing to insert",
			settings: service.DropSettings{Enabled: true},
			req: service.DropRequest{
				Workspace: "main",
				Document:  "file:///x/doc.md",
				URIList:   "garbage\nmore garbage",
			},
			wantInserted: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := mocks.NewMockWorkspaceStore(ctrl)
			mockStore.EXPECT().LoadSnapshot(gomock.Any(), "main").Return(mainSnapshot(true), nil)

			svc := newTestService(t, mockStore, tt.settings)
			resp, err := svc.Drop(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("Drop() error = %v", err)
			}

			if resp.Inserted != tt.wantInserted {
				t.Fatalf("Drop() Inserted = %v, want %v", resp.Inserted, tt.wantInserted)
			}
			if !tt.wantInserted {
				if resp.Text != "" || resp.Template != "" || len(resp.TabStops) != 0 {
					t.Errorf("Drop() should return an empty response, got %+v", resp)
				}
				return
			}
			if resp.Text != tt.wantText {
				t.Errorf("Drop() Text = %q, want %q", resp.Text, tt.wantText)
			}
			if resp.Template != tt.wantTemplate {
				t.Errorf("Drop() Template = %q, want %q", resp.Template, tt.wantTemplate)
			}
			if len(resp.TabStops) != len(tt.wantStops) {
				t.Fatalf("Drop() TabStops = %v, want %v", resp.TabStops, tt.wantStops)
			}
			for i := range tt.wantStops {
				if resp.TabStops[i] != tt.wantStops[i] {
					t.Errorf("Drop() TabStops = %v, want %v", resp.TabStops, tt.wantStops)
				}
			}
			if resp.FinalTabStop != tt.wantStops[len(tt.wantStops)-1]+1 {
				t.Errorf("Drop() FinalTabStop = %d", resp.FinalTabStop)
			}
			if resp.HTML != "" {
				t.Error("Drop() should not render HTML without preview")
			}
		})
	}
}

func TestDropService_Drop_Preview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockWorkspaceStore(ctrl)
	mockStore.EXPECT().LoadSnapshot(gomock.Any(), "main").Return(mainSnapshot(true), nil)

	svc := newTestService(t, mockStore, service.DropSettings{Enabled: true})
	resp, err := svc.Drop(context.Background(), service.DropRequest{
		Workspace: "main",
		Document:  "file:///a/b/notes.md",
		URIList:   "file:///a/b/c.png\nfile:///a/readme.md",
		Preview:   true,
	})
	if err != nil {
		t.Fatalf("Drop() error = %v", err)
	}

	if !strings.Contains(resp.HTML, `<img src="c.png" alt="Alt text"`) {
		t.Errorf("Drop() HTML = %q, want image tag", resp.HTML)
	}
	if len(resp.Links) != 2 {
		t.Fatalf("Drop() Links = %+v, want 2", resp.Links)
	}
	if !resp.Links[0].Image || resp.Links[0].Destination != "c.png" {
		t.Errorf("Drop() Links[0] = %+v", resp.Links[0])
	}
	if resp.Links[1].Image || resp.Links[1].Destination != "../readme.md" {
		t.Errorf("Drop() Links[1] = %+v", resp.Links[1])
	}
	if resp.Links[0].Target != "file:///a/b/c.png" || resp.Links[1].Target != "file:///a/readme.md" {
		t.Errorf("Drop() link targets = %q, %q", resp.Links[0].Target, resp.Links[1].Target)
	}
}

func TestDropService_Drop_Errors(t *testing.T) {
	negative := -1
	zero := 0

	tests := []struct {
		name      string
		settings  service.DropSettings
		req       service.DropRequest
		mockSetup func(*mocks.MockWorkspaceStore)
		checkErr  func(error) bool
	}{
		{
			name:     "missing workspace",
			settings: service.DropSettings{Enabled: true},
			req:      service.DropRequest{Document: "file:///a.md", URIList: "file:///b.md"},
			checkErr: func(err error) bool {
				var ve *service.ValidationError
				return errors.As(err, &ve) && ve.Field == "workspace"
			},
		},
		{
			name:     "invalid document",
			settings: service.DropSettings{Enabled: true},
			req:      service.DropRequest{Workspace: "main", Document: "notes.md", URIList: "file:///b.md"},
			checkErr: func(err error) bool {
				var ve *service.ValidationError
				return errors.As(err, &ve) && ve.Field == "document"
			},
		},
		{
			name:     "negative start index",
			settings: service.DropSettings{Enabled: true},
			req: service.DropRequest{
				Workspace: "main",
				Document:  "file:///a.md",
				Options:   snippet.Options{PlaceholderStartIndex: &negative},
			},
			checkErr: func(err error) bool {
				return errors.Is(err, service.ErrInvalidInput)
			},
		},
		{
			name:     "start index zero is the final cursor stop",
			settings: service.DropSettings{Enabled: true},
			req: service.DropRequest{
				Workspace: "main",
				Document:  "file:///a.md",
				URIList:   "file:///1.txt\nfile:///2.txt",
				Options:   snippet.Options{PlaceholderStartIndex: &zero},
			},
			checkErr: func(err error) bool {
				var ve *service.ValidationError
				return errors.As(err, &ve) && ve.Field == "placeholderStartIndex"
			},
		},
		{
			name:     "globally disabled",
			settings: service.DropSettings{Enabled: false},
			req:      service.DropRequest{Workspace: "main", Document: "file:///a.md", URIList: "file:///b.md"},
			checkErr: func(err error) bool {
				return errors.Is(err, service.ErrDisabled)
			},
		},
		{
			name:     "workspace disabled",
			settings: service.DropSettings{Enabled: true},
			req:      service.DropRequest{Workspace: "main", Document: "file:///a.md", URIList: "file:///b.md"},
			mockSetup: func(m *mocks.MockWorkspaceStore) {
				m.EXPECT().LoadSnapshot(gomock.Any(), "main").Return(mainSnapshot(false), nil)
			},
			checkErr: func(err error) bool {
				return errors.Is(err, service.ErrDisabled)
			},
		},
		{
			name:     "unknown workspace",
			settings: service.DropSettings{Enabled: true},
			req:      service.DropRequest{Workspace: "nope", Document: "file:///a.md", URIList: "file:///b.md"},
			mockSetup: func(m *mocks.MockWorkspaceStore) {
				m.EXPECT().LoadSnapshot(gomock.Any(), "nope").Return(storage.SnapshotRecord{}, storage.ErrNotFound)
			},
			checkErr: func(err error) bool {
				return errors.Is(err, service.ErrNotFound)
			},
		},
		{
			name:     "store failure",
			settings: service.DropSettings{Enabled: true},
			req:      service.DropRequest{Workspace: "main", Document: "file:///a.md", URIList: "file:///b.md"},
			mockSetup: func(m *mocks.MockWorkspaceStore) {
				m.EXPECT().LoadSnapshot(gomock.Any(), "main").Return(storage.SnapshotRecord{}, errors.New("database is locked"))
			},
			checkErr: func(err error) bool {
				return err != nil && !errors.Is(err, service.ErrNotFound) && !errors.Is(err, service.ErrInvalidInput)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := mocks.NewMockWorkspaceStore(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockStore)
			}

			svc := newTestService(t, mockStore, tt.settings)
			resp, err := svc.Drop(context.Background(), tt.req)
			if err == nil {
				t.Fatalf("Drop() expected error, got response %+v", resp)
			}
			if !tt.checkErr(err) {
				t.Errorf("Drop() error = %v, unexpected type", err)
			}
		})
	}
}
