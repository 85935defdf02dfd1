// Package term defines the atoms of logic evaluation: Terms, Variables,
// and the id-banding convention that lets a single signed integer tag
// tell apart a term reference from an operator sentinel or a plugged-in
// variable.
package term
