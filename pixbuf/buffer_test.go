package pixbuf_test

import (
	"errors"
	"testing"

	"github.com/filak/iipsrv/pixbuf"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		bpc      int
		floating bool
		kind     pixbuf.Kind
		size     int
	}{
		{8, false, pixbuf.U8, 1},
		{8, true, pixbuf.U8, 1},
		{16, false, pixbuf.U16, 2},
		{16, true, pixbuf.U16, 2},
		{32, false, pixbuf.U32, 4},
		{32, true, pixbuf.F32, 4},
	}
	for _, tc := range cases {
		kind, err := pixbuf.KindOf(tc.bpc, tc.floating)
		require.NoError(t, err)
		require.Equal(t, tc.kind, kind)
		require.Equal(t, tc.size, kind.Size())
	}

	for _, bpc := range []int{0, 1, 12, 24, 64} {
		_, err := pixbuf.KindOf(bpc, false)
		require.Truef(t, errors.Is(err, pixbuf.ErrUnsupportedDepth), "%v bpc: %v", bpc, err)
	}
}

func TestAllocRelease(t *testing.T) {
	for _, kind := range []pixbuf.Kind{pixbuf.U8, pixbuf.U16, pixbuf.U32, pixbuf.F32} {
		t.Run(kind.String(), func(t *testing.T) {
			size := 64 * kind.Size()
			buf, err := pixbuf.Alloc(kind, size)
			require.NoError(t, err)
			require.Equal(t, size, buf.Cap())
			require.Equal(t, 0, buf.Len())
			require.True(t, buf.Owned())
			require.Equal(t, kind, buf.Kind())

			buf.Release()
			require.Equal(t, 0, buf.Cap())
			require.Equal(t, 0, buf.Len())
			require.False(t, buf.Owned())
			require.Empty(t, buf.Bytes())
		})
	}
}

func TestAllocErrors(t *testing.T) {
	for _, size := range []int{0, -1, pixbuf.MaxAlloc + 1} {
		_, err := pixbuf.Alloc(pixbuf.U8, size)
		require.Truef(t, errors.Is(err, pixbuf.ErrAllocation), "%v bytes: %v", size, err)
	}
}

func TestSetLen(t *testing.T) {
	buf, err := pixbuf.Alloc(pixbuf.U8, 16)
	require.NoError(t, err)

	require.NoError(t, buf.SetLen(10))
	require.Equal(t, 10, buf.Len())
	require.Len(t, buf.Bytes(), 10)

	require.True(t, errors.Is(buf.SetLen(17), pixbuf.ErrLength))
	require.True(t, errors.Is(buf.SetLen(-1), pixbuf.ErrLength))
	require.Equal(t, 10, buf.Len())
}

func TestBorrow(t *testing.T) {
	external := []byte{1, 2, 3, 4}
	buf := pixbuf.Borrow(pixbuf.U16, external)

	require.False(t, buf.Owned())
	require.Equal(t, 4, buf.Len())
	require.Equal(t, 4, buf.Cap())
	require.Equal(t, external, buf.Bytes())

	buf.Release()
	require.Equal(t, 0, buf.Cap())
	require.Equal(t, []byte{1, 2, 3, 4}, external)
}

func TestCloneIsolation(t *testing.T) {
	buf, err := pixbuf.Alloc(pixbuf.U8, 4)
	require.NoError(t, err)
	copy(buf.Raw(), []byte{1, 2, 3, 4})
	require.NoError(t, buf.SetLen(4))

	clone, err := buf.Clone()
	require.NoError(t, err)
	require.True(t, clone.Owned())
	require.Equal(t, buf.Bytes(), clone.Bytes())

	clone.Bytes()[0] = 99
	require.Equal(t, []byte{1, 2, 3, 4}, buf.Bytes())
}

func TestCloneBorrowedOwns(t *testing.T) {
	external := []byte{5, 6, 7}
	buf := pixbuf.Borrow(pixbuf.U8, external)

	clone, err := buf.Clone()
	require.NoError(t, err)
	require.True(t, clone.Owned())

	clone.Bytes()[0] = 99
	require.Equal(t, []byte{5, 6, 7}, external)
}

func TestCloneEmpty(t *testing.T) {
	var buf pixbuf.Buffer
	clone, err := buf.Clone()
	require.NoError(t, err)
	require.Equal(t, 0, clone.Cap())
	require.False(t, clone.Owned())
}

func TestMoveOwned(t *testing.T) {
	buf, err := pixbuf.Alloc(pixbuf.U16, 8)
	require.NoError(t, err)
	copy(buf.Raw(), []byte{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, buf.SetLen(8))
	backing := buf.Raw()

	moved, err := buf.Move()
	require.NoError(t, err)

	// Adopted, not copied.
	require.Same(t, &backing[0], &moved.Raw()[0])
	require.True(t, moved.Owned())
	require.Equal(t, 8, moved.Len())

	// Source is detached and empty; releasing it again must be a no-op.
	require.False(t, buf.Owned())
	require.Equal(t, 0, buf.Len())
	require.Equal(t, 0, buf.Cap())
	buf.Release()
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, moved.Bytes())
}

func TestMoveBorrowedCopies(t *testing.T) {
	external := []byte{1, 2, 3, 4}
	buf := pixbuf.Borrow(pixbuf.U8, external)

	moved, err := buf.Move()
	require.NoError(t, err)
	require.True(t, moved.Owned())
	require.Equal(t, external, moved.Bytes())

	// The borrowed source keeps its reference, the copy is isolated.
	require.Equal(t, external, buf.Bytes())
	moved.Bytes()[0] = 99
	require.Equal(t, []byte{1, 2, 3, 4}, external)
}
