// Package strategy implements the candidate-picking algorithms the monitor
// chooses between: artist-similarity continuation and genre-scoped radio.
//
// Both variants produce up to N tracks with no duplicates, never selecting
// anything in the caller's exclusion set. An empty result is a legitimate
// "nothing to add" outcome, not an error. Randomness is injected so tests can
// seed it and production can not.
package strategy
