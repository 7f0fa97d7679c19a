package table

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWalk(t *testing.T) {
	tbl := New[string]()
	tbl.Insert([]byte("apple"), "apple")
	tbl.Insert([]byte("applet"), "applet")
	tbl.Insert([]byte("apricot"), "apricot")
	require.Equal(t, 3, tbl.Size())

	var got []string
	tbl.Walk([]byte("appletie"), func(s string) bool {
		got = append(got, s)
		return false
	})
	require.Equal(t, []string{"apple", "applet"}, got)

	got = got[:0]
	tbl.Walk([]byte("application"), func(s string) bool {
		got = append(got, s)
		return false
	})
	require.Empty(t, got)
}

func TestWalkStop(t *testing.T) {
	tbl := New[int]()
	tbl.Insert([]byte{0xF1}, 1)
	tbl.Insert([]byte{0xF1, 0x00}, 2)

	calls := 0
	tbl.Walk([]byte{0xF1, 0x00, 0x00}, func(int) bool {
		calls++
		return true
	})
	require.Equal(t, 1, calls)
}

func TestMatch(t *testing.T) {
	tbl := New[string]()
	tbl.Insert([]byte("EFI PART"), "sgpt")
	tbl.Insert([]byte{0xF1}, "mflaw")

	v, ok := tbl.Match([]byte("EFI PART\x28\x00\x00\x00"))
	require.True(t, ok)
	require.Equal(t, "sgpt", v)

	v, ok = tbl.Match([]byte{0xF1, 0, 0, 0})
	require.True(t, ok)
	require.Equal(t, "mflaw", v)

	_, ok = tbl.Match([]byte("EFI"))
	require.False(t, ok)

	_, ok = tbl.Match(nil)
	require.False(t, ok)

	v, ok = tbl.Get([]byte("EFI PART"))
	require.True(t, ok)
	require.Equal(t, "sgpt", v)
}
