package tiff

import (
	"bytes"
	"context"
	"errors"
	"image"
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	xtiff "golang.org/x/image/tiff"

	"github.com/arloliu/faxstrip/compress"
	"github.com/arloliu/faxstrip/endian"
	"github.com/arloliu/faxstrip/format"
	"github.com/arloliu/faxstrip/internal/raster"
	"github.com/arloliu/faxstrip/strip"
)

var errSink = errors.New("sink failed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errSink
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	return len(p) / 2, nil
}

var fixedID = uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e")

// testPage draws a few black blocks and some noise on a white page.
func testPage(width, height int) *raster.Bilevel {
	img := raster.New(width, height)
	rng := rand.New(rand.NewPCG(7, 11))
	for y := range height {
		for x := range width {
			block := (x/6+y/5)%3 == 0
			noise := rng.IntN(20) == 0
			img.Set(x, y, block != noise)
		}
	}

	return img
}

func encode(t *testing.T, img *raster.Bilevel, opts ...Option) []byte {
	t.Helper()

	var buf bytes.Buffer
	n, err := Encode(&buf, img, append([]Option{WithUniqueID(fixedID)}, opts...)...)
	require.NoError(t, err)
	require.EqualValues(t, buf.Len(), n)

	return buf.Bytes()
}

func requireSamePixels(t *testing.T, want *raster.Bilevel, got image.Image) {
	t.Helper()

	require.Equal(t, image.Rect(0, 0, want.Width, want.Height), got.Bounds())
	for y := range want.Height {
		for x := range want.Width {
			r, g, b, _ := got.At(x, y).RGBA()
			black := (r+g+b)/3 < 0x8000
			require.Equal(t, want.At(x, y), black, "pixel (%d, %d)", x, y)
		}
	}
}

func TestEncode_Header(t *testing.T) {
	img := testPage(16, 4)

	t.Run("little endian", func(t *testing.T) {
		data := encode(t, img)
		require.Equal(t, []byte{'I', 'I', 42, 0, 8, 0, 0, 0}, data[:HeaderSize])
	})

	t.Run("big endian", func(t *testing.T) {
		data := encode(t, img, WithByteOrder(endian.GetBigEndianEngine()))
		require.Equal(t, []byte{'M', 'M', 0, 42, 0, 0, 0, 8}, data[:HeaderSize])

		hdr, err := ParseHeader(data)
		require.NoError(t, err)
		require.True(t, endian.IsBigEndian(hdr.Engine))
		require.EqualValues(t, HeaderSize, hdr.IFDOffset)
	})
}

func TestEncode_Directory(t *testing.T) {
	img := testPage(50, 23)
	data := encode(t, img,
		WithCompression(compress.Fax4{}),
		WithRowsPerStrip(10),
		WithResolution(300),
		WithSoftware("scanner"),
	)

	dir, err := ReadDirectory(data)
	require.NoError(t, err)

	tags := make([]Tag, 0, len(dir.Entries))
	for _, e := range dir.Entries {
		tags = append(tags, e.Tag)
	}
	require.Equal(t, []Tag{
		TagNewSubfileType, TagImageWidth, TagImageLength, TagBitsPerSample,
		TagCompression, TagPhotometricInterpretation, TagFillOrder, TagStripOffsets,
		TagSamplesPerPixel, TagRowsPerStrip, TagStripByteCounts, TagXResolution,
		TagYResolution, TagT6Options, TagResolutionUnit, TagSoftware, TagImageUniqueID,
	}, tags)

	expected := map[Tag]uint32{
		TagImageWidth:                50,
		TagImageLength:               23,
		TagBitsPerSample:             1,
		TagCompression:               uint32(format.CompressionFax4),
		TagPhotometricInterpretation: 0,
		TagFillOrder:                 1,
		TagSamplesPerPixel:           1,
		TagRowsPerStrip:              10,
		TagT6Options:                 0,
		TagResolutionUnit:            2,
	}
	for tag, want := range expected {
		got, ok := dir.Uint(tag)
		require.True(t, ok, "tag %d", tag)
		require.Equal(t, want, got, "tag %d", tag)
	}

	xres, ok := dir.Find(TagXResolution)
	require.True(t, ok)
	require.Equal(t, []byte{44, 1, 0, 0, 1, 0, 0, 0}, xres.Data)

	software, _ := dir.Find(TagSoftware)
	require.Equal(t, "scanner", software.Text())
	id, _ := dir.Find(TagImageUniqueID)
	require.Equal(t, "0f8fad5bd9cb469fa16570867728950e", id.Text())
	require.EqualValues(t, 33, id.Count)

	offsets, _ := dir.Find(TagStripOffsets)
	counts, _ := dir.Find(TagStripByteCounts)
	offs := offsets.Uints(dir.Header.Engine)
	cnts := counts.Uints(dir.Header.Engine)
	require.Len(t, offs, 3)
	require.Len(t, cnts, 3)

	// Strips follow the directory back to back and end the file.
	for i := 1; i < len(offs); i++ {
		require.Equal(t, offs[i-1]+cnts[i-1], offs[i])
	}
	require.Equal(t, len(data), int(offs[2]+cnts[2]))
	require.Zero(t, offs[0]%2)
}

func TestEncode_DecodesWithImageTIFF(t *testing.T) {
	algs := []compress.Algorithm{
		compress.Uncompressed{},
		compress.Fax3{},
		compress.Fax4{},
		compress.LZW{},
		compress.Deflate{},
		compress.Deflate{Level: compress.DeflateBest},
		compress.PackBits{},
	}
	engines := map[string]endian.EndianEngine{
		"II": endian.GetLittleEndianEngine(),
		"MM": endian.GetBigEndianEngine(),
	}

	img := testPage(61, 37)
	for _, alg := range algs {
		for name, engine := range engines {
			t.Run(alg.Method().String()+"/"+name, func(t *testing.T) {
				data := encode(t, img,
					WithCompression(alg),
					WithByteOrder(engine),
					WithRowsPerStrip(8),
				)

				decoded, err := xtiff.Decode(bytes.NewReader(data))
				require.NoError(t, err)
				requireSamePixels(t, img, decoded)
			})
		}
	}
}

func TestEncode_SingleStrip(t *testing.T) {
	img := testPage(1728, 40)
	data := encode(t, img, WithCompression(compress.Fax4{}), WithRowsPerStrip(1000))

	dir, err := ReadDirectory(data)
	require.NoError(t, err)
	rows, _ := dir.Uint(TagRowsPerStrip)
	require.EqualValues(t, 40, rows)

	offsets, _ := dir.Find(TagStripOffsets)
	require.True(t, offsets.Inline())

	decoded, err := xtiff.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	requireSamePixels(t, img, decoded)
}

func TestEncode_FaxOptionTags(t *testing.T) {
	img := testPage(32, 8)

	t.Run("fax3", func(t *testing.T) {
		dir, err := ReadDirectory(encode(t, img, WithCompression(compress.Fax3{K: 4, FillBits: true})))
		require.NoError(t, err)

		opts, ok := dir.Uint(TagT4Options)
		require.True(t, ok)
		require.Equal(t, compress.T4Option2D|compress.T4OptionFillBits, opts)
		_, ok = dir.Find(TagT6Options)
		require.False(t, ok)
	})

	t.Run("huffman", func(t *testing.T) {
		dir, err := ReadDirectory(encode(t, img, WithCompression(compress.Huffman{})))
		require.NoError(t, err)

		method, _ := dir.Uint(TagCompression)
		require.EqualValues(t, format.CompressionHuffman, method)
		_, ok := dir.Find(TagT4Options)
		require.False(t, ok)
	})

	t.Run("uncompressed", func(t *testing.T) {
		dir, err := ReadDirectory(encode(t, img))
		require.NoError(t, err)

		method, _ := dir.Uint(TagCompression)
		require.EqualValues(t, format.CompressionNone, method)
	})
}

func TestEncode_Dedup(t *testing.T) {
	img := raster.New(64, 40)
	for x := range 64 {
		for y := 0; y < 40; y += 2 {
			img.Set(x, y, x%3 == 0)
		}
	}

	plain := encode(t, img, WithRowsPerStrip(4), WithCompression(compress.Fax4{}))
	shared := encode(t, img, WithRowsPerStrip(4), WithCompression(compress.Fax4{}), WithDedup(true))
	require.Less(t, len(shared), len(plain))

	dir, err := ReadDirectory(shared)
	require.NoError(t, err)
	offsets, _ := dir.Find(TagStripOffsets)
	offs := offsets.Uints(dir.Header.Engine)
	require.Len(t, offs, 10)
	for _, off := range offs[1:] {
		require.Equal(t, offs[0], off)
	}

	decoded, err := xtiff.Decode(bytes.NewReader(shared))
	require.NoError(t, err)
	requireSamePixels(t, img, decoded)
}

func TestEncode_RandomUniqueID(t *testing.T) {
	img := testPage(8, 8)

	var a, b bytes.Buffer
	_, err := Encode(&a, img)
	require.NoError(t, err)
	_, err = Encode(&b, img)
	require.NoError(t, err)

	dirA, err := ReadDirectory(a.Bytes())
	require.NoError(t, err)
	dirB, err := ReadDirectory(b.Bytes())
	require.NoError(t, err)

	idA, _ := dirA.Find(TagImageUniqueID)
	idB, _ := dirB.Find(TagImageUniqueID)
	require.Len(t, idA.Text(), 32)
	require.NotEqual(t, idA.Text(), idB.Text())
}

func TestEncode_StrideWiderThanRow(t *testing.T) {
	img := testPage(12, 6)
	wide := &raster.Bilevel{Width: 12, Height: 6, Stride: 4, Pix: make([]byte, 4*6)}
	for y := range 6 {
		copy(wide.Row(y), img.Row(y))
		wide.Row(y)[3] = 0xFF
	}

	require.Equal(t, encode(t, img), encode(t, wide))
}

func TestEncode_Errors(t *testing.T) {
	img := testPage(16, 16)

	t.Run("nil image", func(t *testing.T) {
		_, err := Encode(&bytes.Buffer{}, nil)
		require.ErrorIs(t, err, ErrInvalidImage)
	})

	t.Run("empty image", func(t *testing.T) {
		_, err := Encode(&bytes.Buffer{}, raster.New(0, 10))
		require.ErrorIs(t, err, ErrInvalidImage)
	})

	t.Run("invalid resolution", func(t *testing.T) {
		_, err := Encode(&bytes.Buffer{}, img, WithResolution(0))
		require.ErrorIs(t, err, ErrInvalidResolution)
	})

	t.Run("short pixel buffer", func(t *testing.T) {
		short := &raster.Bilevel{Width: 16, Height: 16, Stride: 2, Pix: make([]byte, 10)}
		_, err := Encode(&bytes.Buffer{}, short)
		require.ErrorIs(t, err, strip.ErrShortBuffer)

		narrow := &raster.Bilevel{Width: 16, Height: 2, Stride: 1, Pix: make([]byte, 4)}
		_, err = Encode(&bytes.Buffer{}, narrow)
		require.ErrorIs(t, err, strip.ErrShortBuffer)
	})

	t.Run("failing sink", func(t *testing.T) {
		n, err := Encode(failingWriter{}, img)
		require.ErrorIs(t, err, errSink)
		require.Zero(t, n)
	})

	t.Run("short sink", func(t *testing.T) {
		_, err := Encode(shortWriter{}, img)
		require.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := EncodeContext(ctx, &bytes.Buffer{}, img)
		require.ErrorIs(t, err, context.Canceled)
	})
}
