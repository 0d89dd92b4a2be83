// Package geometry converts numeric series into renderable shapes:
// donut segments as SVG arc paths, gauge fill fractions with colour bands,
// and sparklines normalised into the unit box.
//
// Every function is pure and deterministic. Degenerate inputs (empty or
// all-zero series, flat series, out-of-range scores) have defined results
// rather than producing NaN or dividing by zero.
package geometry
