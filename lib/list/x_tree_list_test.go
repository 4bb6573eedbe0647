package list

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXTreeList_SequentialAppend(t *testing.T) {
	tl := NewTreeList[int]()
	for i := 0; i < 10; i++ {
		tl.Append(i)
	}
	require.Equal(t, int64(10), tl.Len())
	for i := int64(0); i < 10; i++ {
		v, err := tl.Get(i)
		require.NoError(t, err)
		require.Equal(t, int(i), v)
	}
	require.NoError(t, TreeListViolationValidate(tl))
}

func TestXTreeList_InsertAtHead(t *testing.T) {
	tl := NewTreeList[int]()
	for _, v := range []int{5, 4, 3, 2, 1, 0} {
		require.NoError(t, tl.Insert(0, v))
		require.NoError(t, TreeListViolationValidate(tl))
	}
	require.Equal(t, []int{0, 1, 2, 3, 4, 5}, tl.ToSlice())
}

func TestXTreeList_AddAllThenRemoveRange(t *testing.T) {
	tl := NewTreeListFromSlice([]string{"A", "B", "C", "D", "E"})
	tl.AddAll("F", "G", "H")
	require.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G", "H"}, tl.ToSlice())
	require.NoError(t, TreeListViolationValidate(tl))

	require.NoError(t, tl.RemoveRange(2, 4))
	require.Equal(t, []string{"A", "B", "F", "G", "H"}, tl.ToSlice())
	require.Equal(t, int64(5), tl.Len())
	require.NoError(t, TreeListViolationValidate(tl))
}

func TestXTreeList_AddAllMergeDirections(t *testing.T) {
	// appended tree shorter than the receiver
	tl := NewTreeListFromSlice(lo.Range(64))
	tl.AddAll(64, 65, 66)
	require.Equal(t, int64(67), tl.Len())
	for i := int64(0); i < 67; i++ {
		v, err := tl.Get(i)
		require.NoError(t, err)
		require.Equal(t, int(i), v)
	}
	require.NoError(t, TreeListViolationValidate(tl))

	// appended tree taller than the receiver
	tl2 := NewTreeListFromSlice([]int{0, 1, 2})
	tl2.AddAll(lo.RangeFrom(3, 64)...)
	require.Equal(t, int64(67), tl2.Len())
	for i := int64(0); i < 67; i++ {
		v, err := tl2.Get(i)
		require.NoError(t, err)
		require.Equal(t, int(i), v)
	}
	require.NoError(t, TreeListViolationValidate(tl2))

	// merge into an empty receiver
	tl3 := NewTreeList[int]()
	tl3.AddAll(1, 2, 3)
	require.Equal(t, []int{1, 2, 3}, tl3.ToSlice())
	require.NoError(t, TreeListViolationValidate(tl3))
}

func TestXTreeList_AddAllEmptyInputIsNotStructural(t *testing.T) {
	tl := NewTreeListFromSlice([]int{1, 2, 3})
	it := tl.Iter()
	tl.AddAll()
	v, err := it.Next()
	require.NoError(t, err)
	require.Equal(t, 1, v)
}

func TestXTreeList_SetReplacesWithoutStructuralChange(t *testing.T) {
	tl := NewTreeListFromSlice([]int{10, 20, 30})
	it := tl.Iter()
	old, err := tl.Set(1, 21)
	require.NoError(t, err)
	require.Equal(t, 20, old)

	v, err := it.Next()
	require.NoError(t, err)
	require.Equal(t, 10, v)
	require.Equal(t, []int{10, 21, 30}, tl.ToSlice())
}

func TestXTreeList_RemoveAt(t *testing.T) {
	tl := NewTreeListFromSlice([]int{0, 1, 2, 3, 4, 5, 6, 7})
	v, err := tl.RemoveAt(3)
	require.NoError(t, err)
	require.Equal(t, 3, v)
	require.NoError(t, TreeListViolationValidate(tl))

	v, err = tl.RemoveAt(0)
	require.NoError(t, err)
	require.Equal(t, 0, v)
	v, err = tl.RemoveAt(tl.Len() - 1)
	require.NoError(t, err)
	require.Equal(t, 7, v)
	require.Equal(t, []int{1, 2, 4, 5, 6}, tl.ToSlice())
	require.NoError(t, TreeListViolationValidate(tl))
}

func TestXTreeList_RemoveRangeBoundaries(t *testing.T) {
	tl := NewTreeListFromSlice([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.NoError(t, tl.RemoveRange(0, 2))
	require.Equal(t, []int{3, 4, 5, 6, 7, 8, 9}, tl.ToSlice())
	require.NoError(t, TreeListViolationValidate(tl))

	require.NoError(t, tl.RemoveRange(4, 6))
	require.Equal(t, []int{3, 4, 5, 6}, tl.ToSlice())
	require.NoError(t, TreeListViolationValidate(tl))

	require.NoError(t, tl.RemoveRange(1, 1))
	require.Equal(t, []int{3, 5, 6}, tl.ToSlice())
	require.NoError(t, TreeListViolationValidate(tl))

	require.NoError(t, tl.RemoveRange(0, tl.Len()-1))
	require.Equal(t, int64(0), tl.Len())
	require.NoError(t, TreeListViolationValidate(tl))
}

func TestXTreeList_RemoveRangeRandomAgainstSliceOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for round := 0; round < 50; round++ {
		size := 1 + rng.Intn(200)
		values := make([]int, size)
		for i := range values {
			values[i] = rng.Int()
		}
		tl := NewTreeListFromSlice(values)
		oracle := append([]int(nil), values...)

		for len(oracle) > 0 && rng.Intn(4) != 0 {
			from := rng.Intn(len(oracle))
			to := from + rng.Intn(len(oracle)-from)
			require.NoError(t, tl.RemoveRange(int64(from), int64(to)))
			oracle = append(oracle[:from], oracle[to+1:]...)
			require.Equal(t, oracle, tl.ToSlice())
			require.NoError(t, TreeListViolationValidate(tl))
		}
	}
}

func TestXTreeList_RandomOpsAgainstSliceOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tl := NewTreeList[int]()
	oracle := make([]int, 0, 512)
	for i := 0; i < 3000; i++ {
		switch op := rng.Intn(10); {
		case op < 4 || len(oracle) == 0:
			idx := rng.Intn(len(oracle) + 1)
			v := rng.Intn(1 << 20)
			require.NoError(t, tl.Insert(int64(idx), v))
			oracle = append(oracle[:idx], append([]int{v}, oracle[idx:]...)...)
		case op < 7:
			idx := rng.Intn(len(oracle))
			got, err := tl.RemoveAt(int64(idx))
			require.NoError(t, err)
			require.Equal(t, oracle[idx], got)
			oracle = append(oracle[:idx], oracle[idx+1:]...)
		case op < 8:
			idx := rng.Intn(len(oracle))
			v := rng.Intn(1 << 20)
			old, err := tl.Set(int64(idx), v)
			require.NoError(t, err)
			require.Equal(t, oracle[idx], old)
			oracle[idx] = v
		case op < 9:
			idx := rng.Intn(len(oracle))
			got, err := tl.Get(int64(idx))
			require.NoError(t, err)
			require.Equal(t, oracle[idx], got)
		default:
			from := rng.Intn(len(oracle))
			to := from + rng.Intn(len(oracle)-from)
			require.NoError(t, tl.RemoveRange(int64(from), int64(to)))
			oracle = append(oracle[:from], oracle[to+1:]...)
		}
		if i%97 == 0 {
			require.NoError(t, TreeListViolationValidate(tl))
			require.Equal(t, oracle, tl.ToSlice())
		}
	}
	require.NoError(t, TreeListViolationValidate(tl))
	require.Equal(t, oracle, tl.ToSlice())
}

func TestXTreeList_ValueScans(t *testing.T) {
	tl := NewTreeListFromSlice([]string{"a", "b", "c", "b", "a"})
	assert.Equal(t, int64(0), tl.IndexOf("a"))
	assert.Equal(t, int64(4), tl.LastIndexOf("a"))
	assert.Equal(t, int64(1), tl.IndexOf("b"))
	assert.Equal(t, int64(3), tl.LastIndexOf("b"))
	assert.Equal(t, int64(2), tl.IndexOf("c"))
	assert.Equal(t, int64(2), tl.LastIndexOf("c"))
	assert.Equal(t, int64(-1), tl.IndexOf("z"))
	assert.Equal(t, int64(-1), tl.LastIndexOf("z"))
	assert.True(t, tl.Contains("c"))
	assert.False(t, tl.Contains("z"))

	require.True(t, tl.RemoveValue("b"))
	require.Equal(t, []string{"a", "c", "b", "a"}, tl.ToSlice())
	require.False(t, tl.RemoveValue("z"))
	require.NoError(t, TreeListViolationValidate(tl))
}

func TestXTreeList_Clear(t *testing.T) {
	tl := NewTreeListFromSlice([]int{1, 2, 3})
	tl.Clear()
	require.Equal(t, int64(0), tl.Len())
	require.Equal(t, []int{}, tl.ToSlice())
	require.NoError(t, TreeListViolationValidate(tl))

	tl.Append(9)
	require.Equal(t, []int{9}, tl.ToSlice())
}

func TestXTreeList_Foreach(t *testing.T) {
	tl := NewTreeListFromSlice([]int{3, 1, 4, 1, 5})
	collected := make([]int, 0, 5)
	tl.Foreach(func(idx int64, v int) bool {
		require.Equal(t, int64(len(collected)), idx)
		collected = append(collected, v)
		return true
	})
	require.Equal(t, []int{3, 1, 4, 1, 5}, collected)

	stopped := 0
	tl.Foreach(func(idx int64, v int) bool {
		stopped++
		return idx < 1
	})
	require.Equal(t, 2, stopped)
}

func TestXTreeList_IndexOutOfRange(t *testing.T) {
	tl := NewTreeListFromSlice([]int{1, 2, 3})

	_, err := tl.Get(-1)
	require.ErrorIs(t, err, ErrXTreeListIndexOutOfRange)
	_, err = tl.Get(3)
	require.ErrorIs(t, err, ErrXTreeListIndexOutOfRange)
	_, err = tl.Set(3, 0)
	require.ErrorIs(t, err, ErrXTreeListIndexOutOfRange)
	require.ErrorIs(t, tl.Insert(4, 0), ErrXTreeListIndexOutOfRange)
	_, err = tl.RemoveAt(3)
	require.ErrorIs(t, err, ErrXTreeListIndexOutOfRange)
	require.ErrorIs(t, tl.RemoveRange(-1, 1), ErrXTreeListIndexOutOfRange)
	require.ErrorIs(t, tl.RemoveRange(2, 1), ErrXTreeListIndexOutOfRange)
	require.ErrorIs(t, tl.RemoveRange(1, 3), ErrXTreeListIndexOutOfRange)
	_, err = tl.SubList(1, 3)
	require.ErrorIs(t, err, ErrXTreeListIndexOutOfRange)
	_, err = tl.IterAt(4)
	require.ErrorIs(t, err, ErrXTreeListIndexOutOfRange)
}

func TestXTreeList_JSONCodecRoundTrip(t *testing.T) {
	tl := NewTreeListFromSlice([]int{9, 8, 7, 6, 5})
	data, err := json.Marshal(tl)
	require.NoError(t, err)
	require.JSONEq(t, `[9,8,7,6,5]`, string(data))

	decoded := NewTreeList[int]()
	require.NoError(t, json.Unmarshal(data, decoded))
	require.Equal(t, []int{9, 8, 7, 6, 5}, decoded.ToSlice())
	require.NoError(t, TreeListViolationValidate(decoded))

	// decoding replaces previous contents
	require.NoError(t, json.Unmarshal([]byte(`[]`), decoded))
	require.Equal(t, int64(0), decoded.Len())
	require.NoError(t, TreeListViolationValidate(decoded))
}

func TestXTreeList_WithStatsEnabled(t *testing.T) {
	tl := NewTreeList[int](WithTreeListStats[int]("unit-test"))
	tl.AddAll(1, 2, 3, 4)
	require.NoError(t, tl.Insert(0, 0))
	_, err := tl.RemoveAt(4)
	require.NoError(t, err)
	require.NoError(t, tl.RemoveRange(1, 2))
	require.Equal(t, []int{0, 3}, tl.ToSlice())
	require.NoError(t, TreeListViolationValidate(tl))
}
