// Package storage declares the flags of the demo object store one by one.
package storage

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	"github.com/apstndb/dflags"
	"github.com/apstndb/dflags/conversion"
	"github.com/apstndb/dflags/internal/parser"
)

// Owner is the owner of the storage flags.
const Owner = "storage"

// Flags holds the storage flags.
type Flags struct {
	Dir         *dflags.Flag[string]
	Compression *dflags.Flag[string]
	Timeout     *dflags.Flag[time.Duration]
	Quota       *dflags.Flag[decimal.Decimal]
	MaxObjects  *dflags.Flag[*big.Int]
	ReadOnly    *dflags.Flag[bool]
}

// Codecs lists the accepted values of the compression flag.
var Codecs = []string{"none", "gzip", "zstd"}

// RegisterConversions adds the conversions the storage flags need beyond
// the built-in ones.
func RegisterConversions(t *conversion.Table) {
	conversion.RegisterParser(t, parser.WithValidation[time.Duration](
		parser.NewDurationParser().WithRange(0, time.Hour),
		func(d time.Duration) error {
			if d%time.Millisecond != 0 {
				return fmt.Errorf("duration %s is finer than a millisecond", d)
			}
			return nil
		},
	))
}

// Register declares the storage flags in r.
func Register(r *dflags.Registry) *Flags {
	r.DescribeOwner(Owner, "Object storage settings")

	f := &Flags{
		Dir: dflags.Define(r, Owner, "dir", "./data",
			dflags.WithDescription("data directory")),
		Compression: dflags.Define(r, Owner, "compression", "none",
			dflags.WithDescription("codec for stored objects")),
		Timeout: dflags.Define(r, Owner, "timeout", 10*time.Second,
			dflags.WithDescription("I/O timeout")),
		Quota: dflags.Define(r, Owner, "quota", decimal.NewFromInt(10),
			dflags.WithDescription("quota in GiB")),
		MaxObjects: dflags.Define(r, Owner, "maxObjects", big.NewInt(1_000_000),
			dflags.WithAlt("max-objects"),
			dflags.WithDescription("maximum number of stored objects")),
		ReadOnly: dflags.Define(r, Owner, "readonly", false,
			dflags.WithAlt("ro"),
			dflags.WithDescription("reject writes")),
	}

	f.Dir.Validator(parser.NewStringParser().WithLengthRange(1, 4096).Validate)
	f.Compression.Validator(parser.CreateOneOfValidator(Codecs...))
	f.Quota.Validator(func(q decimal.Decimal) error {
		if !q.IsPositive() {
			return errors.New("quota must be positive")
		}
		return nil
	})
	f.MaxObjects.Validator(func(n *big.Int) error {
		if n.Sign() < 0 {
			return errors.New("maxObjects must not be negative")
		}
		return nil
	})
	return f
}

// Config is a snapshot of the storage flags.
type Config struct {
	Dir         string
	Compression string
	Timeout     time.Duration
	QuotaBytes  decimal.Decimal
	MaxObjects  string
	ReadOnly    bool
}

func (f *Flags) Config() Config {
	return Config{
		Dir:         f.Dir.Get(),
		Compression: f.Compression.Get(),
		Timeout:     f.Timeout.Get(),
		QuotaBytes:  f.Quota.Get().Mul(decimal.NewFromInt(1 << 30)).Round(0),
		MaxObjects:  f.MaxObjects.Get().String(),
		ReadOnly:    f.ReadOnly.Get(),
	}
}
