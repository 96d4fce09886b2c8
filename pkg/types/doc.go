// Package types defines the Catalog and per-entity store interfaces, the
// entity types for publishers, players, game systems and sessions, and the
// standard errors shared by every backend and front end.
package types
