// Package rule describes multi-state Life-like rules for 3D automata and
// parses them from the "survival/birth/states" text form, e.g. "4/4/5".
package rule

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

const (
	// MaxNeighbors is the size of the 3D Moore neighbourhood.
	MaxNeighbors = 26
	// MinStates and MaxStates bound the number of aging states.
	MinStates = 1
	MaxStates = 10
)

// Rule is an immutable rule value. Survival and birth counts are stored as
// bitmasks so that Rule stays comparable with ==.
type Rule struct {
	survival uint32
	birth    uint32
	states   uint8
}

// New builds a Rule from explicit neighbour counts. Duplicates collapse.
func New(survival, birth []int, states int) (Rule, error) {
	var r Rule
	for _, n := range survival {
		if n < 0 || n > MaxNeighbors {
			return Rule{}, fmt.Errorf("survival count %d: %w", n, ErrRange)
		}
		r.survival |= 1 << uint(n)
	}
	for _, n := range birth {
		if n < 1 || n > MaxNeighbors {
			return Rule{}, fmt.Errorf("birth count %d: %w", n, ErrRange)
		}
		r.birth |= 1 << uint(n)
	}
	if states < MinStates || states > MaxStates {
		return Rule{}, fmt.Errorf("states %d: %w", states, ErrRange)
	}
	r.states = uint8(states)
	return r, nil
}

// Validate reports whether r was built through New or Parse. The zero Rule is
// invalid.
func (r Rule) Validate() error {
	if r.states < MinStates || r.states > MaxStates {
		return fmt.Errorf("states %d: %w", r.states, ErrRange)
	}
	if r.birth&1 != 0 {
		return fmt.Errorf("birth count 0: %w", ErrRange)
	}
	if r.survival>>(MaxNeighbors+1) != 0 || r.birth>>(MaxNeighbors+1) != 0 {
		return fmt.Errorf("neighbour count above %d: %w", MaxNeighbors, ErrRange)
	}
	return nil
}

// States returns the number of aging states including the dead state.
func (r Rule) States() int { return int(r.states) }

// Alive returns the fully-alive state value, States()-1.
func (r Rule) Alive() uint8 {
	if r.states == 0 {
		return 0
	}
	return r.states - 1
}

// Survives reports whether a fully-alive cell with n live neighbours stays
// fully alive.
func (r Rule) Survives(n int) bool {
	return n >= 0 && n <= MaxNeighbors && r.survival&(1<<uint(n)) != 0
}

// Born reports whether a dead cell with n live neighbours comes alive.
func (r Rule) Born(n int) bool {
	return n >= 0 && n <= MaxNeighbors && r.birth&(1<<uint(n)) != 0
}

// Survival returns the survival counts in ascending order.
func (r Rule) Survival() []int { return maskValues(r.survival) }

// Birth returns the birth counts in ascending order.
func (r Rule) Birth() []int { return maskValues(r.birth) }

// Equal reports whether two rules have the same sets and state count, i.e.
// whether their canonical texts match.
func (r Rule) Equal(o Rule) bool { return r == o }

// String renders the canonical text form: ascending, comma separated lists.
func (r Rule) String() string {
	var b strings.Builder
	writeList(&b, r.survival)
	b.WriteByte('/')
	writeList(&b, r.birth)
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(int(r.states)))
	return b.String()
}

func maskValues(mask uint32) []int {
	out := make([]int, 0, bits.OnesCount32(mask))
	for mask != 0 {
		n := bits.TrailingZeros32(mask)
		out = append(out, n)
		mask &^= 1 << uint(n)
	}
	return out
}

func writeList(b *strings.Builder, mask uint32) {
	for i, n := range maskValues(mask) {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(n))
	}
}

var (
	// ErrParts means the text did not contain exactly two '/' separators.
	ErrParts = errors.New("expected survival/birth/states")
	// ErrSyntax means an unexpected character or a misplaced comma.
	ErrSyntax = errors.New("invalid syntax")
	// ErrLeadingZero means a multi-digit number started with 0.
	ErrLeadingZero = errors.New("leading zero")
	// ErrRange means a number fell outside its allowed range.
	ErrRange = errors.New("value out of range")
)

// ParseError describes why a rule string was rejected.
type ParseError struct {
	Input string
	Part  string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Part == "" {
		return fmt.Sprintf("rule %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("rule %q: %s: %v", e.Input, e.Part, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads "survival/birth/states". Survival and birth are comma separated
// lists (possibly empty) of counts in [0,26] and [1,26]; states is a single
// number in [1,10]. Numbers may not carry leading zeros.
func Parse(text string) (Rule, error) {
	parts := strings.Split(text, "/")
	if len(parts) != 3 {
		return Rule{}, &ParseError{Input: text, Err: ErrParts}
	}
	survival, err := parseList(parts[0], 0, MaxNeighbors)
	if err != nil {
		return Rule{}, &ParseError{Input: text, Part: "survival", Err: err}
	}
	birth, err := parseList(parts[1], 1, MaxNeighbors)
	if err != nil {
		return Rule{}, &ParseError{Input: text, Part: "birth", Err: err}
	}
	states, err := parseNumber(parts[2], MinStates, MaxStates)
	if err != nil {
		return Rule{}, &ParseError{Input: text, Part: "states", Err: err}
	}
	return Rule{survival: survival, birth: birth, states: uint8(states)}, nil
}

// MustParse is Parse for compile-time constants; it panics on error.
func MustParse(text string) Rule {
	r, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return r
}

func parseList(s string, min, max int) (uint32, error) {
	var mask uint32
	cur, have, count := 0, false, 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= '0' && ch <= '9':
			if !have {
				cur, have = int(ch-'0'), true
				continue
			}
			if cur == 0 {
				return 0, ErrLeadingZero
			}
			cur = cur*10 + int(ch-'0')
			if cur > max {
				return 0, fmt.Errorf("%d: %w", cur, ErrRange)
			}
		case ch == ',':
			if !have {
				return 0, fmt.Errorf("comma at offset %d: %w", i, ErrSyntax)
			}
			if cur < min || cur > max {
				return 0, fmt.Errorf("%d: %w", cur, ErrRange)
			}
			mask |= 1 << uint(cur)
			have = false
			count++
		default:
			return 0, fmt.Errorf("character %q: %w", ch, ErrSyntax)
		}
	}
	if !have {
		if count > 0 {
			return 0, fmt.Errorf("trailing comma: %w", ErrSyntax)
		}
		return 0, nil
	}
	if cur < min || cur > max {
		return 0, fmt.Errorf("%d: %w", cur, ErrRange)
	}
	return mask | 1<<uint(cur), nil
}

func parseNumber(s string, min, max int) (int, error) {
	cur, have := 0, false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch < '0' || ch > '9' {
			return 0, fmt.Errorf("character %q: %w", ch, ErrSyntax)
		}
		if !have {
			cur, have = int(ch-'0'), true
			continue
		}
		if cur == 0 {
			return 0, ErrLeadingZero
		}
		cur = cur*10 + int(ch-'0')
		if cur > max {
			return 0, fmt.Errorf("%d: %w", cur, ErrRange)
		}
	}
	if !have {
		return 0, fmt.Errorf("missing number: %w", ErrSyntax)
	}
	if cur < min || cur > max {
		return 0, fmt.Errorf("%d: %w", cur, ErrRange)
	}
	return cur, nil
}
