// Package server declares the flags of the demo HTTP server as a tagged
// struct.
package server

import (
	"fmt"
	"math"
	"net"
	"strconv"
	"time"

	"github.com/apstndb/dflags"
	"github.com/apstndb/dflags/conversion"
	"github.com/apstndb/dflags/internal/parser"
	"github.com/apstndb/dflags/scan"
)

// Owner is the owner of the server flags.
const Owner = "server"

// Flags holds the server flags.
type Flags struct {
	Host    *dflags.Flag[string]  `flag:"host" default:"localhost" desc:"listen address"`
	Port    *dflags.Flag[int32]   `flag:"port" alt:"p" default:"8080" validate:"gte=1,lte=65535" desc:"listen port"`
	Timeout *dflags.Flag[Seconds] `flag:"timeout" default:"30" desc:"request timeout in seconds"`
	TLS     *dflags.Flag[bool]    `flag:"tls" desc:"serve HTTPS"`
	Load    *dflags.Flag[float64] `flag:"load" default:"0.75" validate:"gt=0,lte=1" desc:"target load factor"`
}

func (*Flags) FlagDescription() string {
	return "HTTP server settings"
}

// Seconds is a duration written on the command line as whole seconds.
type Seconds time.Duration

func (s Seconds) String() string {
	return strconv.FormatInt(int64(time.Duration(s)/time.Second), 10)
}

var secondsParser = parser.WithTransform(
	parser.NewIntParser().WithRange(0, math.MaxInt64/int64(time.Second)),
	func(n int64) (Seconds, error) {
		return Seconds(time.Duration(n) * time.Second), nil
	},
)

// RegisterConversions adds the conversions the server flags need beyond
// the built-in ones.
func RegisterConversions(t *conversion.Table) {
	conversion.RegisterParser(t, secondsParser)
}

// Register scans the server flags into r. t must hold the conversions added
// by RegisterConversions.
func Register(r *dflags.Registry, t *conversion.Table) (*Flags, error) {
	f := &Flags{}
	if err := scan.Struct(r, f, scan.WithOwner(Owner), scan.WithConversions(t)); err != nil {
		return nil, fmt.Errorf("server flags: %w", err)
	}
	return f, nil
}

// Config is a snapshot of the server flags.
type Config struct {
	Addr    string
	TLS     bool
	Timeout time.Duration
	Load    float64
}

func (f *Flags) Config() Config {
	return Config{
		Addr:    net.JoinHostPort(f.Host.Get(), strconv.Itoa(int(f.Port.Get()))),
		TLS:     f.TLS.Get(),
		Timeout: time.Duration(f.Timeout.Get()),
		Load:    f.Load.Get(),
	}
}
