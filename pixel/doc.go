// Package pixel converts packed 1-bit-per-sample rows into the pixel samples
// consumed by the fax line encoder.
//
// Packed rows follow the TIFF layout: samples are stored most significant bit
// first and every row is padded to a byte boundary, so a row of w samples
// occupies BytesPerRow(w) = ceil(w/8) bytes.
//
// Three steps are kept separate on purpose:
//
//   - Rows segments a flat strip buffer into row-sized slices.
//   - Invert complements every byte, converting between the container's
//     polarity (0 = white) and the unpacker's (1 = white).
//   - Unpack and UnpackRow expand bytes into Color samples, bit 1 = White.
//
// The unpacker convention is fixed; callers that store 0 as white invert
// first.
package pixel
