// Package money provides the payment amount value object. Amounts are counted
// in the smallest indivisible payment unit; all splits and pro-rata prices are
// computed with exact integer arithmetic.
package money

import "errors"

var (
	ErrNegativeAmount = errors.New("amount cannot be negative")
	ErrOverflow       = errors.New("amount arithmetic overflow")
)

type Amount struct {
	units int64
}

func New(units int64) (Amount, error) {
	if units < 0 {
		return Amount{}, ErrNegativeAmount
	}
	return Amount{units: units}, nil
}

// MustNew panics on a negative amount. For constants in wiring and tests.
func MustNew(units int64) Amount {
	a, err := New(units)
	if err != nil {
		panic(err)
	}
	return a
}

func Zero() Amount {
	return Amount{}
}

func (a Amount) Units() int64 {
	return a.units
}

func (a Amount) IsZero() bool {
	return a.units == 0
}

func (a Amount) LessThan(other Amount) bool {
	return a.units < other.units
}

func (a Amount) Add(other Amount) (Amount, error) {
	sum := a.units + other.units
	if sum < a.units {
		return Amount{}, ErrOverflow
	}
	return Amount{units: sum}, nil
}

func (a Amount) Sub(other Amount) (Amount, error) {
	if a.units < other.units {
		return Amount{}, ErrNegativeAmount
	}
	return Amount{units: a.units - other.units}, nil
}

// MulDiv returns floor(a*num/den) without overflowing the intermediate
// product: a is decomposed into den-sized chunks so each partial product
// stays in range. num and den must be positive.
func (a Amount) MulDiv(num, den int64) (Amount, error) {
	if num <= 0 || den <= 0 {
		return Amount{}, ErrNegativeAmount
	}
	quot := a.units / den
	rem := a.units % den

	high := quot * num
	if quot != 0 && high/quot != num {
		return Amount{}, ErrOverflow
	}
	low := rem * num / den
	if rem != 0 && (rem*num)/rem != num {
		return Amount{}, ErrOverflow
	}

	total := high + low
	if total < high {
		return Amount{}, ErrOverflow
	}
	return Amount{units: total}, nil
}
