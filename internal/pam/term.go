// Package pam models the evaluated terms of a fitted piece-wise exponential
// additive mixed (PAM) survival model.
//
// The fitting procedure itself is an external collaborator: it evaluates each
// smooth and tensor-interaction term over a rectangular grid and hands the
// results over as Term values, either directly (any Model implementation) or
// through a JSON term dump exported by the fitting software (LoadDump).
package pam

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// TimeLabel is the axis label of the elapsed-time dimension. Every tensor
// interaction term in a PAM pairs this axis with one predictor.
const TimeLabel = "tend"

// Term is one evaluated model term over a rectangular grid.
//
// A smooth term has a single label, grid coordinates in X and fitted values in
// Fit (one per X point). A tensor term has two labels; Grid holds the fitted
// values with Grid.At(i, j) evaluated at (X[i], Y[j]), and SE, when present,
// holds the matching standard errors. Missing values are NaN.
type Term struct {
	Labels []string
	X      []float64
	Y      []float64
	Fit    []float64
	Grid   *mat.Dense
	SE     *mat.Dense
}

// IsSmooth reports whether the term is a one-dimensional smooth.
func (t Term) IsSmooth() bool { return len(t.Labels) == 1 }

// IsTensor reports whether the term is a two-dimensional interaction.
func (t Term) IsTensor() bool { return len(t.Labels) == 2 }

// Model evaluates a fitted PAM over prediction grids. Implementations wrap
// the external model-evaluation collaborator.
type Model interface {
	// EvalTerms evaluates every term of the model over a numGrid-point grid
	// per axis and returns them all. Tensor terms need not carry standard
	// errors here; use EvalTensor when the errors are required.
	EvalTerms(numGrid int) ([]Term, error)

	// EvalTensor evaluates the single tensor term whose axis labels are
	// {a, b} at numGrid×numGrid resolution, including standard errors.
	EvalTensor(a, b string, numGrid int) (Term, error)
}

// TermNotFoundError reports that no model term matched the requested label.
type TermNotFoundError struct {
	Label string
}

func (e *TermNotFoundError) Error() string {
	return fmt.Sprintf("pam: no term matching %q in model", e.Label)
}

// AmbiguousTermError reports that more than one model term matched the
// requested label. The lookup never silently picks one.
type AmbiguousTermError struct {
	Label      string
	Candidates []string
}

func (e *AmbiguousTermError) Error() string {
	return fmt.Sprintf("pam: label %q matches multiple terms: %s",
		e.Label, strings.Join(e.Candidates, ", "))
}

// FindSmooth returns the one-dimensional smooth term whose label equals
// label. It fails with TermNotFoundError on zero matches and
// AmbiguousTermError when several terms share the label.
func FindSmooth(terms []Term, label string) (Term, error) {
	var found []Term
	for _, t := range terms {
		if t.IsSmooth() && t.Labels[0] == label {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return Term{}, &TermNotFoundError{Label: label}
	case 1:
		return found[0], nil
	default:
		names := make([]string, len(found))
		for i, t := range found {
			names[i] = strings.Join(t.Labels, ":")
		}
		return Term{}, &AmbiguousTermError{Label: label, Candidates: names}
	}
}

// FindTensor returns the tensor term whose axis labels are exactly {a, b},
// accepting either label order. The result is normalised so that Labels[0]
// is a: when the stored term has the axes reversed its coordinate vectors
// are swapped and the fit and error matrices transposed.
func FindTensor(terms []Term, a, b string) (Term, error) {
	want := a + ":" + b
	var found []Term
	for _, t := range terms {
		if !t.IsTensor() {
			continue
		}
		switch {
		case t.Labels[0] == a && t.Labels[1] == b:
			found = append(found, t)
		case t.Labels[0] == b && t.Labels[1] == a:
			found = append(found, transposeTerm(t))
		}
	}
	switch len(found) {
	case 0:
		return Term{}, &TermNotFoundError{Label: want}
	case 1:
		return found[0], nil
	default:
		names := make([]string, len(found))
		for i, t := range found {
			names[i] = strings.Join(t.Labels, ":")
		}
		return Term{}, &AmbiguousTermError{Label: want, Candidates: names}
	}
}

func transposeTerm(t Term) Term {
	out := Term{
		Labels: []string{t.Labels[1], t.Labels[0]},
		X:      t.Y,
		Y:      t.X,
	}
	if t.Grid != nil {
		out.Grid = mat.DenseCopyOf(t.Grid.T())
	}
	if t.SE != nil {
		out.SE = mat.DenseCopyOf(t.SE.T())
	}
	return out
}
