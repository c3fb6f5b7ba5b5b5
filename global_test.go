package dflags_test

import (
	"math/big"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apstndb/dflags"
	"github.com/apstndb/dflags/conversion"
)

const testOwner = "github.com/apstndb/dflags_test"

var (
	globalName    = dflags.String("globalName", "anonymous", dflags.WithDescription("user name"))
	globalVerbose = dflags.Bool("globalVerbose", false)
	globalRetries = dflags.Int32("globalRetries", 3)
	globalSize    = dflags.Int64("globalSize", 0)
	globalRatio   = dflags.Float32("globalRatio", 0.5)
	globalScale   = dflags.Float64("globalScale", 1)
	globalHuge    = dflags.BigInt("globalHuge", big.NewInt(0))
	globalPrice   = dflags.Decimal("globalPrice", decimal.Zero)
	globalWait    = dflags.Var("globalWait", time.Second)
)

func TestGlobalOwnerIsCallerPackage(t *testing.T) {
	t.Parallel()

	m, ok := dflags.Default().ByFQN(testOwner + ".globalName")
	require.True(t, ok)
	assert.Equal(t, "user name", m.Description)
	assert.Equal(t, conversion.String, m.Type)

	local := dflags.String("globalLocal", "")
	_, ok = dflags.Default().ByFQN(testOwner + ".globalLocal")
	assert.True(t, ok, "declaration inside a function is owned by its package")
	assert.Equal(t, "", local.Get())
}

func TestInitForTesting(t *testing.T) {
	conversion.Register(dflags.Conversions(), time.ParseDuration)

	require.NoError(t, dflags.InitForTesting(
		dflags.Pair{Name: "globalName", Value: "gopher"},
		dflags.Pair{Name: "globalVerbose", Value: "true"},
		dflags.Pair{Name: "globalRetries", Value: "5"},
		dflags.Pair{Name: "globalSize", Value: "1024"},
		dflags.Pair{Name: "globalRatio", Value: "0.25"},
		dflags.Pair{Name: "globalScale", Value: "2.5"},
		dflags.Pair{Name: "globalHuge", Value: "12345678901234567890"},
		dflags.Pair{Name: "globalPrice", Value: "19.99"},
		dflags.Pair{Name: "globalWait", Value: "2s"},
	))

	assert.Equal(t, "gopher", globalName.Get())
	assert.True(t, globalVerbose.Get())
	assert.Equal(t, int32(5), globalRetries.Get())
	assert.Equal(t, int64(1024), globalSize.Get())
	assert.Equal(t, float32(0.25), globalRatio.Get())
	assert.Equal(t, 2.5, globalScale.Get())
	assert.Equal(t, "12345678901234567890", globalHuge.Get().String())
	assert.Equal(t, "19.99", globalPrice.Get().String())
	assert.Equal(t, 2*time.Second, globalWait.Get())

	var unknown *dflags.UnknownFlagError
	assert.ErrorAs(t, dflags.InitForTesting(dflags.Pair{Name: "globalMissing", Value: "x"}), &unknown)
}

func TestInit(t *testing.T) {
	res, err := dflags.Init([]string{"--globalName", "init", "--noglobalVerbose", "file.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"file.txt"}, res.Args)
	assert.Empty(t, res.Problems)
	assert.Equal(t, "init", globalName.Get())
	assert.False(t, globalVerbose.Get())
}

func TestInitOptions(t *testing.T) {
	res, err := dflags.Init([]string{"--globalMissing", "--globalName", "options"}, dflags.WithErrorPolicy(dflags.PolicyFailFast))
	assert.Nil(t, res)
	var unknown *dflags.UnknownFlagError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "--globalMissing", unknown.Token)
	assert.NotEqual(t, "options", globalName.Get())

	res, err = dflags.Init([]string{"--globalMissing", "--globalName", "options"}, dflags.WithErrorPolicy(dflags.PolicyCollect))
	require.NoError(t, err)
	require.Len(t, res.Problems, 1)
	assert.ErrorAs(t, res.Problems[0], &unknown)
	assert.Equal(t, "options", globalName.Get())
}
