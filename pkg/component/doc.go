// Package component defines the closed set of bundle components and maps
// manifest paths to exactly one of them.
//
// A [Registry] is an ordered, immutable list of component definitions. Each
// definition carries one CEL match expression (see [rule.Rule]) and a list of
// candidate locations used by environment detection. Classification evaluates
// the match expressions in declaration order and the first match wins. Paths
// that match nothing belong to the catch-all [General] component, which is
// always declared last.
package component
