package sitechat

// ContextStore holds extracted page content keyed by opaque context keys.
// Entries live only for the lifetime of the store; the key registry, not the
// store, is the durable record of which keys exist.
//
// Implementations must make Put, Get and Delete atomic with respect to each
// other: no caller may observe a partially written entry.
type ContextStore interface {
	// Put stores text under a freshly generated context key and returns
	// the key. Keys are unique for the lifetime of the store; an existing
	// entry is never overwritten.
	Put(text string) string

	// Get returns the text stored under key. The second return value
	// reports whether the key is known. A miss is not an error: callers
	// are expected to degrade (e.g. substitute placeholder context)
	// rather than fail.
	Get(key string) (string, bool)

	// Delete removes the entry for key and reports whether an entry was
	// present. Deleting an absent key is a no-op, not an error.
	Delete(key string) bool
}
