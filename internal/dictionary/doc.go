// Package dictionary asks the Gemini generateContent API to act as a
// dictionary for a single word and parses the model's reply into a
// Definition. It builds the prompt, performs one HTTP POST, extracts the
// fenced JSON block from the model text and decodes it strictly.
package dictionary
