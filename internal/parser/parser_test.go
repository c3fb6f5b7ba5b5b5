package parser_test

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apstndb/dflags/internal/parser"
)

type literalCase[T any] struct {
	literal string
	want    T
	wantErr bool
}

func checkLiterals[T any](t *testing.T, p parser.Parser[T], cases []literalCase[T]) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.literal, func(t *testing.T) {
			got, err := p.ParseAndValidate(c.literal)
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestBoolParser(t *testing.T) {
	t.Parallel()

	checkLiterals(t, parser.NewBoolParser(), []literalCase[bool]{
		{literal: "true", want: true},
		{literal: "TRUE", want: true},
		{literal: "t", want: true},
		{literal: "1", want: true},
		{literal: "False", want: false},
		{literal: "0", want: false},
		{literal: "yes", wantErr: true},
		{literal: " true", wantErr: true},
		{literal: "", wantErr: true},
	})
}

func TestIntParser(t *testing.T) {
	t.Parallel()

	t.Run("base 10 only", func(t *testing.T) {
		checkLiterals(t, parser.NewIntParser(), []literalCase[int64]{
			{literal: "-42", want: -42},
			{literal: "9223372036854775807", want: 9223372036854775807},
			{literal: "9223372036854775808", wantErr: true},
			{literal: "0x10", wantErr: true},
			{literal: "1_000", wantErr: true},
			{literal: "7 ", wantErr: true},
		})
	})

	t.Run("range", func(t *testing.T) {
		checkLiterals(t, parser.NewIntParser().WithRange(1, 100), []literalCase[int64]{
			{literal: "1", want: 1},
			{literal: "100", want: 100},
			{literal: "0", wantErr: true},
			{literal: "101", wantErr: true},
		})
	})

	t.Run("bounds set one at a time", func(t *testing.T) {
		p := parser.NewIntParser().WithMin(10).WithMax(20)
		_, err := p.ParseAndValidate("9")
		assert.EqualError(t, err, "value 9 is less than minimum 10")
		_, err = p.ParseAndValidate("21")
		assert.EqualError(t, err, "value 21 is greater than maximum 20")
	})
}

func TestInt32Parser(t *testing.T) {
	t.Parallel()

	checkLiterals(t, parser.NewInt32Parser(), []literalCase[int32]{
		{literal: "2147483647", want: 2147483647},
		{literal: "-2147483648", want: -2147483648},
		{literal: "2147483648", wantErr: true},
	})
}

func TestFloatParsers(t *testing.T) {
	t.Parallel()

	checkLiterals(t, parser.NewFloat64Parser(), []literalCase[float64]{
		{literal: "1234567890.0123456789", want: 1234567890.0123456789},
		{literal: "1e-3", want: 0.001},
		{literal: "test.log", wantErr: true},
	})
	checkLiterals(t, parser.NewFloat32Parser(), []literalCase[float32]{
		{literal: "12345.6789", want: float32(12345.6789)},
		{literal: "1e39", wantErr: true},
	})
}

func TestBigIntParser(t *testing.T) {
	t.Parallel()

	p := parser.NewBigIntParser()
	got, err := p.ParseAndValidate("98765432109876543210")
	require.NoError(t, err)
	want, _ := new(big.Int).SetString("98765432109876543210", 10)
	assert.Zero(t, want.Cmp(got))

	for _, literal := range []string{"", "12.5", "1e3", "0x1f"} {
		_, err := p.ParseAndValidate(literal)
		assert.Error(t, err, literal)
	}
}

func TestDecimalParser(t *testing.T) {
	t.Parallel()

	p := parser.NewDecimalParser()
	got, err := p.ParseAndValidate("9876543210.0123456789")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("9876543210.0123456789")))

	normalized, err := p.ParseAndValidate("1.50")
	require.NoError(t, err)
	assert.Equal(t, "1.5", normalized.String())

	_, err = p.ParseAndValidate("1.2.3")
	assert.Error(t, err)
}

func TestDurationParser(t *testing.T) {
	t.Parallel()

	checkLiterals(t, parser.NewDurationParser(), []literalCase[time.Duration]{
		{literal: "1h30m45s", want: time.Hour + 30*time.Minute + 45*time.Second},
		{literal: "-5s", want: -5 * time.Second},
		{literal: "10", wantErr: true},
		{literal: "", wantErr: true},
	})
	checkLiterals(t, parser.NewDurationParser().WithRange(time.Second, time.Minute), []literalCase[time.Duration]{
		{literal: "30s", want: 30 * time.Second},
		{literal: "500ms", wantErr: true},
		{literal: "2m", wantErr: true},
	})
}

func TestStringParser(t *testing.T) {
	t.Parallel()

	checkLiterals(t, parser.NewStringParser(), []literalCase[string]{
		{literal: "  spaced  ", want: "  spaced  "},
		{literal: "'quoted'", want: "'quoted'"},
		{literal: "", want: ""},
	})

	p := parser.NewStringParser().WithLengthRange(2, 4)
	assert.NoError(t, p.Validate("abcd"))
	assert.EqualError(t, p.Validate("a"), "string length 1 is less than minimum 2")
	assert.EqualError(t, p.Validate("abcde"), "string length 5 is greater than maximum 4")
}

func TestEnumParser(t *testing.T) {
	t.Parallel()

	type level int
	p := parser.NewEnumParser(map[string]level{"debug": 0, "info": 1, "warn": 2})

	checkLiterals(t, p, []literalCase[level]{
		{literal: "info", want: 1},
		{literal: "WARN", want: 2},
		{literal: "Debug", want: 0},
		{literal: "error", wantErr: true},
	})

	_, err := p.ParseAndValidate("error")
	assert.EqualError(t, err, `invalid value "error", must be one of: DEBUG, INFO, WARN`)
}

func TestWithValidation(t *testing.T) {
	t.Parallel()

	errOdd := errors.New("value must be even")
	even := func(v int64) error {
		if v%2 != 0 {
			return errOdd
		}
		return nil
	}
	p := parser.WithValidation[int64](parser.NewIntParser().WithMin(0), even, nil)

	checkLiterals(t, p, []literalCase[int64]{
		{literal: "42", want: 42},
		{literal: "-2", wantErr: true},
		{literal: "3", wantErr: true},
	})

	_, err := p.ParseAndValidate("-3")
	assert.EqualError(t, err, "value -3 is less than minimum 0", "inner validation runs first")
	_, err = p.ParseAndValidate("3")
	assert.ErrorIs(t, err, errOdd)
}

func TestWithTransform(t *testing.T) {
	t.Parallel()

	p := parser.WithTransform(parser.NewIntParser().WithMin(0), func(ms int64) (time.Duration, error) {
		return time.Duration(ms) * time.Millisecond, nil
	})

	got, err := p.ParseAndValidate("250")
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, got)

	_, err = p.ParseAndValidate("-1")
	assert.Error(t, err, "inner validation applies")

	unchecked, err := p.Parse("-1")
	require.NoError(t, err)
	assert.Equal(t, -time.Millisecond, unchecked)

	t.Run("transform error", func(t *testing.T) {
		errTooBig := errors.New("too big")
		p := parser.WithTransform(parser.NewIntParser(), func(n int64) (int32, error) {
			if n > 10 {
				return 0, errTooBig
			}
			return int32(n), nil
		})
		_, err := p.ParseAndValidate("11")
		assert.ErrorIs(t, err, errTooBig)
	})

	t.Run("validated after transform", func(t *testing.T) {
		p := parser.WithValidation(
			parser.WithTransform(parser.NewIntParser(), func(n int64) (time.Duration, error) {
				return time.Duration(n) * time.Second, nil
			}),
			parser.CreateDurationRangeValidator(nil, new(time.Duration)),
		)
		_, err := p.ParseAndValidate("1")
		assert.EqualError(t, err, "duration 1s is greater than maximum 0s")
	})
}

func TestFunc(t *testing.T) {
	t.Parallel()

	conv := parser.Func[int64](parser.NewIntParser().WithMax(10))
	_, err := conv("11")
	assert.Error(t, err)

	got, err := conv("7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got)
}
