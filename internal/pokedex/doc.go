// Package pokedex holds the search session state machine and the name catalog.
//
// A Catalog loads the full name index once and derives random suggestions from
// it. A Session turns user queries into lookups and tracks the result as one of
// Idle, Loading, Succeeded or Failed. Every lookup carries a Token; Apply drops
// outcomes whose token is no longer the latest, so a slow response to an older
// query can never overwrite a newer one.
package pokedex
