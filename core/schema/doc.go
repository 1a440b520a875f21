// Package schema defines schema instances (in-memory records of one
// representation specification), the factories that build them from parsed
// documents, and the Registry that maps representation specification
// identifiers such as "RS0001" to those factories.
//
// Registration is an explicit startup step: the program passes its list of
// factories to Registry.RegisterAll before serving lookups. Duplicate
// identifiers are rejected unless the registry is configured to replace them
// or the caller uses Override.
//
// Documents arrive already parsed (see infra/document). A Reader walks a
// Document, reporting missing optional fields as warnings while collecting
// type errors and missing required fields.
package schema
