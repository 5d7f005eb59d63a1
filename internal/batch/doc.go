// Package batch defines every word of a word list, one lookup at a time.
// A circuit breaker stops the run early once the provider keeps rejecting
// requests, so a bad API key costs a few calls rather than the whole list.
package batch
