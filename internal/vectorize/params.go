// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package vectorize

import "strconv"

// =============================================================================
// CONVERSION PARAMETERS
// =============================================================================

// CurveTypes selects which curve primitives the tracer may emit.
type CurveTypes struct {
	Lines           bool
	QuadraticBezier bool
	CubicBezier     bool
	CircularArcs    bool
	EllipticalArcs  bool
}

// Parameters is the conversion configuration sent with every request.
// It is a value type: copies are independent and nothing in this package
// modifies one after construction.
type Parameters struct {
	Mode                     string
	MaxColors                int
	FileFormat               string
	SVGVersion               string
	SVGFixedSize             bool
	SVGAdobeCompatibility    bool
	ShapeStacking            string
	GroupBy                  string
	DrawStyle                string
	Curves                   CurveTypes
	LineFitTolerance         string
	GroupByColor             bool
	IllustratorCompatibility bool
	RetentionDays            int
}

// DefaultParameters returns the production parameter set.
func DefaultParameters() Parameters {
	return Parameters{
		Mode:                  "production",
		MaxColors:             16,
		FileFormat:            "svg",
		SVGVersion:            "1.1",
		SVGFixedSize:          false,
		SVGAdobeCompatibility: false,
		ShapeStacking:         "cutouts",
		GroupBy:               "none",
		DrawStyle:             "fill",
		Curves: CurveTypes{
			Lines:           true,
			QuadraticBezier: true,
			CubicBezier:     true,
			CircularArcs:    true,
			EllipticalArcs:  true,
		},
		LineFitTolerance:         "medium",
		GroupByColor:             true,
		IllustratorCompatibility: true,
		RetentionDays:            7,
	}
}

// Field is one flattened form field.
type Field struct {
	Key   string
	Value string
}

// Fields flattens the parameters to dotted form keys in wire order.
func (p Parameters) Fields() []Field {
	return []Field{
		{"mode", p.Mode},
		{"processing.max_colors", strconv.Itoa(p.MaxColors)},
		{"output.file_format", p.FileFormat},
		{"output.svg.version", p.SVGVersion},
		{"output.svg.fixed_size", strconv.FormatBool(p.SVGFixedSize)},
		{"output.svg.adobe_compatibility", strconv.FormatBool(p.SVGAdobeCompatibility)},
		{"processing.shape_stacking", p.ShapeStacking},
		{"output.group_by", p.GroupBy},
		{"output.draw_style", p.DrawStyle},
		{"processing.curve_types.lines", strconv.FormatBool(p.Curves.Lines)},
		{"processing.curve_types.quadratic_bezier", strconv.FormatBool(p.Curves.QuadraticBezier)},
		{"processing.curve_types.cubic_bezier", strconv.FormatBool(p.Curves.CubicBezier)},
		{"processing.curve_types.circular_arcs", strconv.FormatBool(p.Curves.CircularArcs)},
		{"processing.curve_types.elliptical_arcs", strconv.FormatBool(p.Curves.EllipticalArcs)},
		{"processing.line_fit_tolerance", p.LineFitTolerance},
		{"output.group_by_color", strconv.FormatBool(p.GroupByColor)},
		{"output.illustrator_compatibility", strconv.FormatBool(p.IllustratorCompatibility)},
		{"policy.retention_days", strconv.Itoa(p.RetentionDays)},
	}
}
