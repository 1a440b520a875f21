// Package perfmap provides the performance map used by representation
// specifications: a builder that accumulates grid axes and data tables and,
// once finalized, answers interpolated queries through a grid.Engine.
//
// A Map moves through three states. While Building, axes and tables may be
// appended and no query is allowed. Finalize validates everything at once and
// moves the map to Finalized, or to Failed when validation rejects the data.
// A Failed map stays unusable.
//
// Generated schema types describe their grid and lookup variables through the
// GridVariables and LookupVariables capabilities and call Populate to build
// and finalize their map in one step.
package perfmap
