package util

import (
	"errors"
	"sync"
)

// ErrorCollector accumulates errors so that every problem with an input can be reported at once.
type ErrorCollector interface {
	Add(err error)
	Combined() error
}

type errorCollector struct {
	errors []error
	lock   *sync.Mutex
}

func NewErrorCollector() ErrorCollector {
	return &errorCollector{
		lock: &sync.Mutex{},
	}
}

func (s *errorCollector) Add(err error) {
	if err == nil {
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.errors = append(s.errors, err)
}

func (s *errorCollector) Combined() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if len(s.errors) > 0 {
		return errors.Join(s.errors...)
	}

	return nil
}
