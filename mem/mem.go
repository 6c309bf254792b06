// Package mem provides in-memory implementations of the sitechat core:
// the context store and the fixed-window rate limiter. Both are safe for
// concurrent use and hold no state beyond process lifetime.
package mem
