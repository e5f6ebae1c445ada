package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/bpmnlayout/pkg/bpmn"
	errs "github.com/matzehuels/bpmnlayout/pkg/errors"
	"github.com/matzehuels/bpmnlayout/pkg/graph"
	"github.com/matzehuels/bpmnlayout/pkg/render/nodelink"
	"github.com/matzehuels/bpmnlayout/pkg/render/svg"
)

// RenderFromLayout generates output artifacts in the requested formats.
// The DOT and Graphviz formats draw the process graph and need p; the
// others only need the layout.
func RenderFromLayout(ctx context.Context, l graph.Layout, p *bpmn.Process, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		case FormatSVG:
			data = svg.Render(l, svg.WithPadding(opts.Padding))
		case FormatDOT, FormatGraphviz:
			if p == nil {
				return nil, errs.New(errs.ErrCodeInvalidInput, "format %s needs the process", format)
			}
			dot := nodelink.ToDOT(p, nodelink.Options{Detailed: opts.Detailed})
			if format == FormatDOT {
				data = []byte(dot)
			} else {
				data, err = nodelink.RenderSVG(ctx, dot)
			}
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
