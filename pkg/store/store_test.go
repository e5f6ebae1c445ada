package store

import (
	"context"
	"testing"

	"github.com/google/uuid"

	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
	"github.com/matzehuels/bpmnlayout/pkg/graph"
)

func sampleLayout() graph.Layout {
	return graph.Layout{
		ProcessID: "order",
		Width:     100,
		Height:    80,
		Shapes:    []graph.Shape{{ID: "t", Kind: "task", Width: 100, Height: 80}},
	}
}

func TestNewRecord(t *testing.T) {
	rec := NewRecord("abc", sampleLayout())

	if _, err := uuid.Parse(rec.ID); err != nil {
		t.Errorf("ID = %q, want UUID: %v", rec.ID, err)
	}
	if rec.ProcessID != "order" {
		t.Errorf("ProcessID = %q, want order", rec.ProcessID)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if other := NewRecord("abc", sampleLayout()); other.ID == rec.ID {
		t.Error("NewRecord should assign distinct ids")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	rec := NewRecord("abc", sampleLayout())
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ProcessHash != "abc" || len(got.Layout.Shapes) != 1 {
		t.Errorf("Get() = %+v, want stored record", got)
	}

	got.ProcessHash = "mutated"
	again, _ := s.Get(ctx, rec.ID)
	if again.ProcessHash != "abc" {
		t.Error("Get() should return a copy")
	}

	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Errorf("Delete(missing) error = %v, want nil", err)
	}
}

func TestMemoryStoreErrors(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	tests := []struct {
		name     string
		run      func() error
		wantCode errs.Code
	}{
		{
			name: "GetMissing",
			run: func() error {
				_, err := s.Get(ctx, uuid.NewString())
				return err
			},
			wantCode: errs.ErrCodeLayoutNotFound,
		},
		{
			name: "GetInvalidID",
			run: func() error {
				_, err := s.Get(ctx, "layout-1")
				return err
			},
			wantCode: errs.ErrCodeInvalidInput,
		},
		{
			name: "DeleteInvalidID",
			run: func() error {
				return s.Delete(ctx, "layout-1")
			},
			wantCode: errs.ErrCodeInvalidInput,
		},
		{
			name: "PutInvalidID",
			run: func() error {
				return s.Put(ctx, &Record{ID: "not-a-uuid"})
			},
			wantCode: errs.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errs.GetCode(tt.run()); got != tt.wantCode {
				t.Errorf("code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}
