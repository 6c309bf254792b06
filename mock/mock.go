// Package mock provides hand-rolled mock implementations of the sitechat
// interfaces. Each mock exposes function fields so tests can substitute
// behavior per call site.
package mock
