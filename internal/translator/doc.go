// Package translator rewrites transcript segments into a target language
// through an LLM provider. It supports per-segment translation with a rolling
// context window, and batched translation that packs several segments into
// one request and splits the response back apart.
package translator
