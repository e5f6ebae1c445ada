package pipeline

import (
	"bytes"
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	"github.com/matzehuels/bpmnlayout/pkg/cache"
	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
	"github.com/matzehuels/bpmnlayout/pkg/graph"
	"github.com/matzehuels/bpmnlayout/pkg/layout"
	"github.com/matzehuels/bpmnlayout/pkg/observability"
)

// memCache is a map-backed cache.Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

var _ cache.Cache = (*memCache)(nil)

func reviewProcess() *bpmn.Process {
	return &bpmn.Process{
		ID: "review",
		Elements: []bpmn.Element{
			{ID: "start", Kind: bpmn.StartEvent},
			{ID: "review", Kind: bpmn.UserTask, Name: "Review"},
			{ID: "ok", Kind: bpmn.ExclusiveGateway, Name: "Approved?"},
			{
				ID: "archive", Kind: bpmn.SubProcess, Name: "Archive",
				Elements: []bpmn.Element{
					{ID: "as", Kind: bpmn.StartEvent},
					{ID: "store", Kind: bpmn.ServiceTask, Name: "Store"},
					{ID: "ae", Kind: bpmn.EndEvent},
				},
				Flows: []bpmn.Flow{
					{ID: "a1", Source: "as", Target: "store"},
					{ID: "a2", Source: "store", Target: "ae"},
				},
			},
			{ID: "end", Kind: bpmn.EndEvent},
		},
		Flows: []bpmn.Flow{
			{ID: "f1", Source: "start", Target: "review"},
			{ID: "f2", Source: "review", Target: "ok"},
			{ID: "f3", Source: "ok", Target: "archive", Name: "yes"},
			{ID: "f4", Source: "ok", Target: "review", Name: "no"},
			{ID: "f5", Source: "archive", Target: "end"},
		},
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"svg", false},
		{"dot", false},
		{"graphviz", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if !reflect.DeepEqual(opts.Formats, []string{FormatJSON}) {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
	if opts.Layout.HorizontalSpacing != layout.DefaultHorizontalSpacing {
		t.Errorf("HorizontalSpacing = %v, want %v", opts.Layout.HorizontalSpacing, layout.DefaultHorizontalSpacing)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent
	before := opts.Formats
	if err := opts.ValidateAndSetDefaults(); err != nil || !reflect.DeepEqual(opts.Formats, before) {
		t.Errorf("second ValidateAndSetDefaults() changed options: %v", err)
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"BadFormat", Options{Formats: []string{"pdf"}}},
		{"NegativeSpacing", Options{Layout: layout.Options{VerticalSpacing: -1}}},
		{"NegativePadding", Options{Padding: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); !errs.IsValidation(err) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want validation error", err)
			}
		})
	}
}

func TestExecuteCaches(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := NewRunner(mc, nil, nil)
	opts := Options{Formats: []string{FormatJSON, FormatSVG, FormatDOT}}

	first, err := r.Execute(ctx, reviewProcess(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", first.CacheInfo)
	}
	if first.Stats.BackEdges != 1 {
		t.Errorf("Stats.BackEdges = %d, want 1", first.Stats.BackEdges)
	}
	if len(first.Artifacts) != 3 {
		t.Fatalf("Artifacts = %d formats, want 3", len(first.Artifacts))
	}
	if !bytes.HasPrefix(first.Artifacts[FormatSVG], []byte("<svg")) {
		t.Error("svg artifact should start with <svg")
	}
	if !bytes.Contains(first.Artifacts[FormatDOT], []byte("digraph G {")) {
		t.Error("dot artifact should contain a digraph")
	}

	l, err := graph.UnmarshalLayout(first.Artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("UnmarshalLayout(json artifact) error = %v", err)
	}
	if !reflect.DeepEqual(l, first.Layout) {
		t.Error("json artifact should equal the computed layout")
	}

	second, err := r.Execute(ctx, reviewProcess(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if !reflect.DeepEqual(second.Layout, first.Layout) {
		t.Error("cached layout differs from computed layout")
	}
}

func TestExecuteRefresh(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	r := NewRunner(mc, nil, nil)

	if _, err := r.Execute(ctx, reviewProcess(), Options{}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, reviewProcess(), Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("Refresh CacheInfo = %+v, want misses", res.CacheInfo)
	}
}

func TestExecuteDifferentOptionsMiss(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, nil)

	if _, err := r.Execute(ctx, reviewProcess(), Options{}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, reviewProcess(), Options{Layout: layout.Options{HorizontalSpacing: 90}})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit {
		t.Error("changed spacing should not hit the cached layout")
	}
}

func TestExecuteInvalidProcess(t *testing.T) {
	p := &bpmn.Process{ID: "bad", Elements: []bpmn.Element{{ID: "a", Kind: bpmn.Task}, {ID: "a", Kind: bpmn.Task}}}
	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), p, Options{})
	if !errs.Is(err, errs.ErrCodeDuplicateID) {
		t.Errorf("Execute() error = %v, want %s", err, errs.ErrCodeDuplicateID)
	}
}

func TestRenderDOTNeedsProcess(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Render(context.Background(), graph.Layout{}, nil, Options{Formats: []string{FormatDOT}})
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("Render(dot, nil process) error = %v, want %s", err, errs.ErrCodeInvalidInput)
	}
}

func TestRelayout(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, nil)
	p := reviewProcess()

	collapsed, err := r.ComputeLayout(ctx, p, Options{})
	if err != nil {
		t.Fatal(err)
	}
	sub, _ := collapsed.Shape("", "archive")
	if sub.Expanded {
		t.Fatal("archive should start collapsed")
	}

	expanded, err := r.Relayout(ctx, p, collapsed, Options{Toggles: []string{"archive"}})
	if err != nil {
		t.Fatalf("Relayout() error = %v", err)
	}
	big, _ := expanded.Shape("", "archive")
	if !big.Expanded || big.Width <= sub.Width {
		t.Errorf("expanded archive = %+v, want expanded and wider than %v", big, sub.Width)
	}
	if _, ok := expanded.Shape("archive", "store"); !ok {
		t.Error("expanded layout should contain the body shapes")
	}

	again, err := r.Relayout(ctx, p, collapsed, Options{Toggles: []string{"archive"}})
	if err != nil || !reflect.DeepEqual(again, expanded) {
		t.Errorf("cached Relayout() = %v, want identical result", err)
	}
}

func TestRunnerEmitsHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	hooks := &countingHooks{}
	observability.SetLayoutHooks(hooks)

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), reviewProcess(), Options{Formats: []string{FormatJSON, FormatSVG}}); err != nil {
		t.Fatal(err)
	}
	if hooks.layouts != 1 || hooks.renders != 2 {
		t.Errorf("hooks = (%d layouts, %d renders), want (1, 2)", hooks.layouts, hooks.renders)
	}
}

type countingHooks struct {
	observability.NoopLayoutHooks
	layouts, renders int
}

func (h *countingHooks) OnLayoutComplete(context.Context, string, int, time.Duration, error) {
	h.layouts++
}

func (h *countingHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {
	h.renders++
}
