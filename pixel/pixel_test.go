package pixel

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Unpack Tests
// =============================================================================

func TestUnpack_AllValues(t *testing.T) {
	for v := range 256 {
		pels := Unpack(byte(v))
		require.Len(t, pels, 8)

		for i, c := range pels {
			bitSet := v&(1<<(7-i)) != 0
			if bitSet {
				require.Equal(t, White, c, "value %#02x sample %d", v, i)
			} else {
				require.Equal(t, Black, c, "value %#02x sample %d", v, i)
			}
		}
	}
}

func TestUnpack_Extremes(t *testing.T) {
	assert.Equal(t, [8]Color{White, White, White, White, White, White, White, White}, Unpack(0xFF))
	assert.Equal(t, [8]Color{Black, Black, Black, Black, Black, Black, Black, Black}, Unpack(0x00))
	assert.Equal(t, [8]Color{White, Black, Black, Black, Black, Black, Black, Black}, Unpack(0x80))
	assert.Equal(t, [8]Color{Black, Black, Black, Black, Black, Black, Black, White}, Unpack(0x01))
}

func TestColor_String(t *testing.T) {
	assert.Equal(t, "White", White.String())
	assert.Equal(t, "Black", Black.String())
	assert.Equal(t, "Unknown", Color(9).String())
	assert.Equal(t, White, Color(0), "zero value must be the background color")
}

// =============================================================================
// UnpackRow Tests
// =============================================================================

func TestUnpackRow(t *testing.T) {
	tests := []struct {
		name  string
		row   []byte
		width int
		want  int
	}{
		{"byte aligned", []byte{0xFF, 0x00}, 16, 16},
		{"padding discarded", []byte{0xFF, 0x80}, 9, 9},
		{"single pixel", []byte{0x7F}, 1, 1},
		{"short row", []byte{0xFF}, 16, 8},
		{"empty row", nil, 8, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnpackRow(nil, tt.row, tt.width)
			require.Len(t, got, tt.want)
		})
	}

	t.Run("appends to dst", func(t *testing.T) {
		dst := []Color{Black}
		got := UnpackRow(dst, []byte{0xC0}, 2)
		assert.Equal(t, []Color{Black, White, White}, got)
	})

	t.Run("truncation keeps leading samples", func(t *testing.T) {
		got := UnpackRow(nil, []byte{0x00, 0x7F}, 10)
		want := []Color{Black, Black, Black, Black, Black, Black, Black, Black, Black, White}
		assert.Equal(t, want, got)
	})
}

// =============================================================================
// Invert Tests
// =============================================================================

func TestInvert(t *testing.T) {
	for v := range 256 {
		out := Invert(nil, []byte{byte(v)})
		require.Equal(t, byte(255-v), out[0])
	}

	t.Run("is an involution", func(t *testing.T) {
		src := []byte{0x00, 0x5A, 0xFF, 0x13}
		assert.Equal(t, src, Invert(nil, Invert(nil, src)))
	})

	t.Run("does not modify src", func(t *testing.T) {
		src := []byte{0xF0}
		_ = Invert(nil, src)
		assert.Equal(t, []byte{0xF0}, src)
	})

	t.Run("inverted then unpacked", func(t *testing.T) {
		// Container bytes 0xFF 0x00: 1 bits are black in the container.
		pels := UnpackRow(nil, Invert(nil, []byte{0xFF, 0x00}), 16)
		for i := range 8 {
			assert.Equal(t, Black, pels[i])
			assert.Equal(t, White, pels[8+i])
		}
	})
}

// =============================================================================
// Row Segmenter Tests
// =============================================================================

func TestBytesPerRow(t *testing.T) {
	cases := map[int]int{0: 0, -3: 0, 1: 1, 7: 1, 8: 1, 9: 2, 16: 2, 17: 3, 1728: 216}
	for bits, want := range cases {
		assert.Equal(t, want, BytesPerRow(bits), "bitsPerRow=%d", bits)
	}
}

func TestRows_ChunkCountAndLengths(t *testing.T) {
	for _, width := range []int{1, 7, 8, 9, 15, 16, 17, 100} {
		stride := BytesPerRow(width)
		for length := 0; length <= 5*stride+3; length++ {
			data := make([]byte, length)
			rows := slices.Collect(Rows(data, width))

			wantCount := (length + stride - 1) / stride
			require.Len(t, rows, wantCount, "width=%d len=%d", width, length)
			require.Equal(t, wantCount, RowCount(length, width))

			total := 0
			for i, row := range rows {
				if i < len(rows)-1 {
					require.Len(t, row, stride)
				} else {
					require.LessOrEqual(t, len(row), stride)
					require.NotEmpty(t, row)
				}
				total += len(row)
			}
			require.Equal(t, length, total)
		}
	}
}

func TestRows_OrderAndAliasing(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	rows := slices.Collect(Rows(data, 16))

	require.Equal(t, [][]byte{{1, 2}, {3, 4}, {5}}, rows)

	rows[0][0] = 9
	assert.Equal(t, byte(9), data[0], "rows alias the input buffer")
	assert.Equal(t, 2, cap(rows[0]), "rows must not expose the next row through append")
}

func TestRows_Restartable(t *testing.T) {
	seq := Rows([]byte{1, 2, 3, 4}, 8)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
}

func TestRows_EarlyStop(t *testing.T) {
	seen := 0
	for range Rows(make([]byte, 10), 8) {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}

func TestRows_DegenerateWidth(t *testing.T) {
	rows := slices.Collect(Rows([]byte{1, 2, 3}, 0))
	assert.Equal(t, [][]byte{{1, 2, 3}}, rows)
	assert.Equal(t, 1, RowCount(3, 0))

	assert.Empty(t, slices.Collect(Rows(nil, 8)))
	assert.Equal(t, 0, RowCount(0, 8))
}
