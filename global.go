package dflags

import (
	"math/big"
	"runtime"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/apstndb/dflags/conversion"
)

var (
	defaultRegistry    = sync.OnceValue(NewRegistry)
	defaultConversions = sync.OnceValue(conversion.NewTable)
	defaultLogger      = sync.OnceValue(func() *zap.Logger {
		config := zap.NewDevelopmentConfig()
		config.DisableCaller = true
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		logger, err := config.Build()
		if err != nil {
			return zap.NewNop()
		}
		return logger
	})
)

// Default returns the process-wide registry used by the package-level
// declaration helpers.
func Default() *Registry {
	return defaultRegistry()
}

// Conversions returns the process-wide conversion table used by Init.
func Conversions() *conversion.Table {
	return defaultConversions()
}

// Init parses args into the flags of the process-wide registry. By default
// problems are logged and parsing continues; opts are applied after the
// defaults, so WithErrorPolicy(PolicyFailFast) makes the first problem the
// error.
func Init(args []string, opts ...ParserOption) (*Result, error) {
	return NewParser(Default(), append([]ParserOption{
		WithConversions(Conversions()),
		WithLogger(defaultLogger()),
	}, opts...)...).Parse(args)
}

// InitForTesting assigns pairs to the flags of the process-wide registry.
// Any problem, such as a name that matches no flag, is returned as the error.
func InitForTesting(pairs ...Pair) error {
	_, err := NewParser(Default(),
		WithConversions(Conversions()),
		WithErrorPolicy(PolicyFailFast),
	).ParseMap(pairs)
	return err
}

// Var declares a flag in the process-wide registry, owned by the calling
// package. The type needs a conversion in Conversions() before Init parses
// a value for it.
func Var[T any](name string, def T, opts ...DefineOption) *Flag[T] {
	return define(name, def, opts)
}

// String declares a string flag like Var.
func String(name, def string, opts ...DefineOption) *Flag[string] {
	return define(name, def, opts)
}

// Bool declares a bool flag like Var.
func Bool(name string, def bool, opts ...DefineOption) *Flag[bool] {
	return define(name, def, opts)
}

// Int32 declares an int32 flag like Var.
func Int32(name string, def int32, opts ...DefineOption) *Flag[int32] {
	return define(name, def, opts)
}

// Int64 declares an int64 flag like Var.
func Int64(name string, def int64, opts ...DefineOption) *Flag[int64] {
	return define(name, def, opts)
}

// Float32 declares a float32 flag like Var.
func Float32(name string, def float32, opts ...DefineOption) *Flag[float32] {
	return define(name, def, opts)
}

// Float64 declares a float64 flag like Var.
func Float64(name string, def float64, opts ...DefineOption) *Flag[float64] {
	return define(name, def, opts)
}

// BigInt declares a *big.Int flag like Var.
func BigInt(name string, def *big.Int, opts ...DefineOption) *Flag[*big.Int] {
	return define(name, def, opts)
}

// Decimal declares a decimal.Decimal flag like Var.
func Decimal(name string, def decimal.Decimal, opts ...DefineOption) *Flag[decimal.Decimal] {
	return define(name, def, opts)
}

// define must be called directly by an exported helper so that the caller
// lookup lands on the declaring package.
func define[T any](name string, def T, opts []DefineOption) *Flag[T] {
	return Define(Default(), callerPackage(3), name, def, opts...)
}

func callerPackage(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	return packageOf(fn.Name())
}

// packageOf extracts the import path from a qualified function name such as
// "example.com/app/server.(*Server).Start" or "main.init.func1".
func packageOf(funcName string) string {
	slash := strings.LastIndexByte(funcName, '/')
	dot := strings.IndexByte(funcName[slash+1:], '.')
	if dot < 0 {
		return funcName
	}
	return funcName[:slash+1+dot]
}
