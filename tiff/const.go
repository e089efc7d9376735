package tiff

// Tag identifies a TIFF field.
type Tag uint16

// Baseline and extension tags written by Encode.
const (
	TagNewSubfileType            Tag = 254
	TagImageWidth                Tag = 256
	TagImageLength               Tag = 257
	TagBitsPerSample             Tag = 258
	TagCompression               Tag = 259
	TagPhotometricInterpretation Tag = 262
	TagFillOrder                 Tag = 266
	TagStripOffsets              Tag = 273
	TagSamplesPerPixel           Tag = 277
	TagRowsPerStrip              Tag = 278
	TagStripByteCounts           Tag = 279
	TagXResolution               Tag = 282
	TagYResolution               Tag = 283
	TagT4Options                 Tag = 292
	TagT6Options                 Tag = 293
	TagResolutionUnit            Tag = 296
	TagSoftware                  Tag = 305
	TagImageUniqueID             Tag = 42016
)

// DataType is the field type of an IFD entry.
type DataType uint16

const (
	TypeByte     DataType = 1
	TypeASCII    DataType = 2
	TypeShort    DataType = 3
	TypeLong     DataType = 4
	TypeRational DataType = 5
)

// Size returns the size in bytes of one value of type t, or 0 for unknown
// types.
func (t DataType) Size() int {
	switch t {
	case TypeByte, TypeASCII:
		return 1
	case TypeShort:
		return 2
	case TypeLong:
		return 4
	case TypeRational:
		return 8
	default:
		return 0
	}
}

const (
	// HeaderSize is the size of the image file header.
	HeaderSize = 8
	// EntrySize is the size of one IFD entry.
	EntrySize = 12

	magic = 42

	photometricWhiteIsZero = 0
	fillOrderMSB2LSB       = 1
	resolutionUnitInch     = 2
)
