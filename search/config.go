package search

import (
	"errors"
	"fmt"
	"time"

	"github.com/specterops/countdown/arith"
	"github.com/specterops/countdown/expr"
	"github.com/specterops/countdown/util"
)

var (
	ErrNoNumbers         = errors.New("no source numbers")
	ErrNoOperators       = errors.New("no operators allowed")
	ErrInvalidCapacity   = errors.New("channel capacity must not be negative")
	ErrInvalidPollPeriod = errors.New("poll interval must not be negative")
	ErrInvalidCacheSize  = errors.New("subtree cache capacity must not be negative")
)

// Config describes a search. A zero Modulus selects ordinary arithmetic; any other value selects arithmetic modulo
// Modulus. Zero ChannelCapacity and PollInterval select the defaults. SubtreeCacheCapacity enables the subtree cache
// of the tree builder when positive and is off by default.
type Config[T arith.Integer] struct {
	Numbers              []T            `yaml:"numbers"`
	Target               T              `yaml:"target"`
	Modulus              T              `yaml:"modulus"`
	Operators            expr.Operators `yaml:"operators"`
	ChannelCapacity      int            `yaml:"channel_capacity"`
	PollInterval         time.Duration  `yaml:"poll_interval"`
	SubtreeCacheCapacity int            `yaml:"subtree_cache_capacity"`
}

// Validate reports every problem with the config at once.
func (s Config[T]) Validate() error {
	errs := util.NewErrorCollector()

	if len(s.Numbers) == 0 {
		errs.Add(ErrNoNumbers)
	}

	if s.Operators&expr.AllOperators == expr.NoOperators {
		errs.Add(ErrNoOperators)
	}

	if s.Modulus < 0 {
		errs.Add(fmt.Errorf("%w: %v", arith.ErrInvalidModulus, s.Modulus))
	}

	if s.ChannelCapacity < 0 {
		errs.Add(ErrInvalidCapacity)
	}

	if s.PollInterval < 0 {
		errs.Add(ErrInvalidPollPeriod)
	}

	if s.SubtreeCacheCapacity < 0 {
		errs.Add(ErrInvalidCacheSize)
	}

	return errs.Combined()
}

// Problem is a validated search with its number system resolved and every value in the system's canonical range.
type Problem[T arith.Integer] struct {
	Numbers              []T
	Target               T
	System               arith.NumberSystem[T]
	Operators            expr.Operators
	SubtreeCacheCapacity int
}

func (s Config[T]) Problem() (Problem[T], error) {
	if err := s.Validate(); err != nil {
		return Problem[T]{}, err
	}

	system, err := arith.New(s.Modulus)
	if err != nil {
		return Problem[T]{}, err
	}

	numbers := make([]T, len(s.Numbers))

	for idx, number := range s.Numbers {
		numbers[idx] = system.Reduce(number)
	}

	return Problem[T]{
		Numbers:              numbers,
		Target:               system.Reduce(s.Target),
		System:               system,
		Operators:            s.Operators & expr.AllOperators,
		SubtreeCacheCapacity: s.SubtreeCacheCapacity,
	}, nil
}
