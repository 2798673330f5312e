package types

import (
	"slices"
	"strconv"
)

// Address is a bech32m encoded Namada address, e.g. tnam1q...
type Address string

func (a Address) String() string {
	return string(a)
}

type Epoch uint64

func (e Epoch) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

// ValidatorSet holds the validators a delegator is bonded to. Membership only;
// Sorted gives a deterministic order where one is needed.
type ValidatorSet map[Address]struct{}

func NewValidatorSet(validators ...Address) ValidatorSet {
	set := make(ValidatorSet, len(validators))
	for _, v := range validators {
		set[v] = struct{}{}
	}
	return set
}

func (s ValidatorSet) Add(v Address) {
	s[v] = struct{}{}
}

func (s ValidatorSet) Contains(v Address) bool {
	_, ok := s[v]
	return ok
}

func (s ValidatorSet) Len() int {
	return len(s)
}

func (s ValidatorSet) Sorted() []Address {
	out := make([]Address, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
