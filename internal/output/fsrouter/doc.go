// Package fsrouter persists generated text on the local filesystem. It
// resolves destinations, normalises line endings, optionally sanitises
// markup, encodes the text and writes it atomically.
package fsrouter
