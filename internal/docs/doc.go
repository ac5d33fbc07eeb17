// Package docs loads the documentation collection: Markdown and MDX files under
// a content directory, ordered by meta.json files into a page tree and rendered
// to HTML with goldmark.
//
// A Collection is immutable once loaded. Store swaps collections atomically so
// preview reloads never expose a half-built tree to in-flight requests.
package docs
