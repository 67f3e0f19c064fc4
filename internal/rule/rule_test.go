package rule

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccepts(t *testing.T) {
	cases := []struct {
		in       string
		survival []int
		birth    []int
		states   int
	}{
		{"4/4/5", []int{4}, []int{4}, 5},
		{"//1", []int{}, []int{}, 1},
		{"0/1/2", []int{0}, []int{1}, 2},
		{"2,3/3/2", []int{2, 3}, []int{3}, 2},
		{"26,0,26/26/10", []int{0, 26}, []int{26}, 10},
		{"3,3,3/5,5/3", []int{3}, []int{5}, 3},
		{"/2/3", []int{}, []int{2}, 3},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			r, err := Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.survival, r.Survival())
			assert.Equal(t, tc.birth, r.Birth())
			assert.Equal(t, tc.states, r.States())
			assert.NoError(t, r.Validate())
		})
	}
}

func TestParseRejects(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"04/4/5", ErrLeadingZero},
		{"4/4/0", ErrRange},
		{"4/4/11", ErrRange},
		{"4,/4/5", ErrSyntax},
		{",4/4/5", ErrSyntax},
		{"4,,5/4/5", ErrSyntax},
		{"4/4", ErrParts},
		{"4/4/5/", ErrParts},
		{"", ErrParts},
		{"27/4/5", ErrRange},
		{"4/0/5", ErrRange},
		{"4/27/5", ErrRange},
		{"4/4/", ErrSyntax},
		{"4/4/05", ErrLeadingZero},
		{"00/4/5", ErrLeadingZero},
		{"4 /4/5", ErrSyntax},
		{"4/a/5", ErrSyntax},
		{"4/4/5,6", ErrSyntax},
		{"4/4/-1", ErrSyntax},
		{"99999999999999999999/4/5", ErrRange},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			_, err := Parse(tc.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tc.in, perr.Input)
		})
	}
}

func TestParseErrorNamesPart(t *testing.T) {
	_, err := Parse("4/0/5")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "birth", perr.Part)
	assert.Contains(t, err.Error(), "birth")
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{"4/4/5", "//1", "26,25,1,0/26,1/10", "5,4,4,3/9,8/7", "/2/3"}
	for _, name := range Presets() {
		text, _ := Preset(name)
		inputs = append(inputs, text)
	}
	for _, in := range inputs {
		first, err := Parse(in)
		require.NoError(t, err, in)
		second, err := Parse(first.String())
		require.NoError(t, err, first.String())
		if first != second {
			t.Fatalf("round trip of %q changed rule: %s vs %s", in, first, second)
		}
	}
}

func TestStringIsCanonical(t *testing.T) {
	r := MustParse("5,1,3,1/9,2/4")
	assert.Equal(t, "1,3,5/2,9/4", r.String())
}

func TestNewMatchesParse(t *testing.T) {
	built, err := New([]int{3, 2, 2}, []int{3}, 2)
	require.NoError(t, err)
	if !built.Equal(MustParse("3,2/3/2")) {
		t.Fatalf("%v does not equal 3,2/3/2", built)
	}
	if diff := cmp.Diff(MustParse("2,3/3/2").String(), built.String()); diff != "" {
		t.Fatalf("New/Parse mismatch (-parse +new):\n%s", diff)
	}
	assert.True(t, built == MustParse("2,3/3/2"))

	_, err = New(nil, []int{0}, 2)
	assert.ErrorIs(t, err, ErrRange)
	_, err = New(nil, nil, 11)
	assert.ErrorIs(t, err, ErrRange)
}

func TestQueries(t *testing.T) {
	r := MustParse("2,3/3/5")
	assert.Equal(t, uint8(4), r.Alive())
	assert.True(t, r.Survives(2))
	assert.False(t, r.Survives(4))
	assert.True(t, r.Born(3))
	assert.False(t, r.Born(2))
	assert.False(t, r.Born(-1))
	assert.False(t, r.Survives(27))
}

func TestZeroRuleInvalid(t *testing.T) {
	var r Rule
	assert.ErrorIs(t, r.Validate(), ErrRange)
	assert.Equal(t, uint8(0), r.Alive())
}

func TestPresetsParse(t *testing.T) {
	for _, name := range Presets() {
		text, ok := Preset(name)
		require.True(t, ok)
		_, err := Parse(text)
		assert.NoError(t, err, name)
	}
	_, ok := Preset("nope")
	assert.False(t, ok)
}
