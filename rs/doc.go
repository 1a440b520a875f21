// Package rs holds the built-in representation specifications. Each type
// reads its fields from a schema.Document and builds its performance maps
// through the perfmap capabilities. Builtins returns the factories in the
// order the application registers them at startup.
package rs
