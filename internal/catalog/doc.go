// Package catalog loads and validates the static course definition: named
// content templates plus exercises grouped by module and linked into
// predecessor chains. A catalog is validated twice on load, first against
// an embedded JSON Schema for shape, then structurally for the properties
// a schema cannot express (unique identifiers, resolvable and acyclic
// predecessor links, registered template references, workspace-relative
// artifact paths). A catalog that fails either pass never reaches the
// scaffolding engine.
package catalog
