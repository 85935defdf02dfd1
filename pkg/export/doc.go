// Package export renders a completed rando.RunResult to diagnostic
// formats: an SVG overview (one row per stage, one box per placement)
// and a JSON dump suitable for golden-file tests or feeding back into
// `randocore validate`. Nothing in pkg/logic, pkg/state,
// pkg/progression, pkg/sphere or pkg/rando imports this package — it is
// a pure consumer of rando.RunResult.
package export
