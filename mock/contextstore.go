package mock

import "github.com/fwojciec/sitechat"

var _ sitechat.ContextStore = (*ContextStore)(nil)

// ContextStore is a mock implementation of sitechat.ContextStore.
type ContextStore struct {
	PutFn    func(text string) string
	GetFn    func(key string) (string, bool)
	DeleteFn func(key string) bool
}

func (s *ContextStore) Put(text string) string {
	return s.PutFn(text)
}

func (s *ContextStore) Get(key string) (string, bool) {
	return s.GetFn(key)
}

func (s *ContextStore) Delete(key string) bool {
	return s.DeleteFn(key)
}
