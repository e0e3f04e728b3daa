// Package model defines the format-agnostic representation of a design
// package: component definitions, node trees, the closed Expr reference
// type, variant contexts, and diagnostics.
//
// The model is the single source of truth for the refs, compose, variants,
// dag, and validate packages. Concrete loaders (such as the HCL loader in
// internal/hcl) translate their source format into this model; nothing
// format-specific survives past translation.
//
// A merged Package is immutable for the duration of any resolution pass.
// Every resolver in the downstream packages is a pure function over it.
package model
