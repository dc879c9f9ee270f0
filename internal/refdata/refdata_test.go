package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestDefault_FootprintLookup(t *testing.T) {
	tables, err := Default()
	require.NoError(t, err)

	require.True(t, decimal.RequireFromString("0.2").Equal(tables.Footprint("Local Apples")))
	require.True(t, decimal.RequireFromString("0.2").Equal(tables.Footprint("local APPLES")))
	require.True(t, decimal.RequireFromString("1.5").Equal(tables.Footprint("Local Cow's Milk (1L)")))

	// near misses do not match
	require.True(t, tables.Footprint("Local Apple").IsZero())
	require.True(t, tables.Footprint(" Local Apples").IsZero())
	require.True(t, tables.Footprint("").IsZero())
}

func TestDefault_Rewards(t *testing.T) {
	tables, err := Default()
	require.NoError(t, err)

	r, ok := tables.Reward("gov_1")
	require.True(t, ok)
	require.Equal(t, int64(500), r.Cost)

	_, ok = tables.Reward("offer_1")
	require.False(t, ok)

	list := tables.Rewards()
	require.Len(t, list, 2)
	require.Equal(t, "gov_1", list[0].ID)
	require.Equal(t, "gov_2", list[1].ID)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
footprint:
  - name: Bamboo Straw
    kg: 0.05
rewards:
  - id: tree
    title: Tree
    cost: 10
`), 0o600))

	tables, err := Load(path)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("0.05").Equal(tables.Footprint("bamboo straw")))
	require.True(t, tables.Footprint("Local Apples").IsZero())
}

func TestParse_Rejects(t *testing.T) {
	_, err := Parse([]byte("footprint:\n  - name: X\n    kg: -1\n"))
	require.Error(t, err)

	_, err = Parse([]byte("rewards:\n  - id: a\n    cost: 0\n"))
	require.Error(t, err)

	_, err = Parse([]byte("rewards:\n  - id: a\n    cost: 1\n  - id: a\n    cost: 2\n"))
	require.Error(t, err)
}
