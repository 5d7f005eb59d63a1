// Package models lists the Gemini models available to an API key, so users
// can pick a value for --model.
package models
