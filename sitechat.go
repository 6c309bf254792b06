// Package sitechat turns any web page into an embeddable chatbot. It fetches
// a page, extracts its main content, and issues an opaque context key that
// scopes subsequent chat requests to that content when talking to a hosted
// LLM backend.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, mem/).
package sitechat
