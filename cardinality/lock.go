package cardinality

import "sync"

type synchronized struct {
	provider Provider
	lock     *sync.Mutex
}

// Synchronized guards every call to provider with a mutex so that it can be fed by one goroutine and read by others.
func Synchronized(provider Provider) Provider {
	return synchronized{
		provider: provider,
		lock:     &sync.Mutex{},
	}
}

func (s synchronized) Add(values ...uint64) {
	s.lock.Lock()
	s.provider.Add(values...)
	s.lock.Unlock()
}

func (s synchronized) Clear() {
	s.lock.Lock()
	s.provider.Clear()
	s.lock.Unlock()
}

func (s synchronized) Cardinality() uint64 {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.provider.Cardinality()
}
