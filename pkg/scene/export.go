package scene

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/arcgraph/pkg/errors"
	"github.com/matzehuels/arcgraph/pkg/graph"
	"github.com/matzehuels/arcgraph/pkg/layout"
	"github.com/matzehuels/arcgraph/pkg/observability"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
)

// Formats returns the supported export formats.
func Formats() []string { return []string{FormatJSON, FormatSVG, FormatDOT} }

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats(), format) {
		return errors.New(errors.ErrCodeInvalidInput, "unsupported format %q (use %s)", format, strings.Join(Formats(), ", "))
	}
	return nil
}

// ValidateFormats checks every format. An empty list is valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Export serializes the scene in each requested format. g is the positioned
// graph the scene was built from; it is only used for DOT.
func Export(ctx context.Context, s graph.Scene, g graph.Graph, formats []string) (out map[string][]byte, err error) {
	start := time.Now()
	observability.Pipeline().OnExportStart(ctx, formats)
	defer func() {
		observability.Pipeline().OnExportComplete(ctx, formats, time.Since(start), err)
	}()

	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}

	out = make(map[string][]byte, len(formats))
	for _, f := range formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch f {
		case FormatJSON:
			data, err := graph.MarshalScene(s)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode scene")
			}
			out[f] = data
		case FormatSVG:
			out[f] = SVG(s)
		case FormatDOT:
			out[f] = []byte(layout.ToDOT(g))
		}
	}
	return out, nil
}
