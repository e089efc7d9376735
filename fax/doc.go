// Package fax implements the CCITT bi-level encoders used by TIFF
// compression schemes 2, 3 and 4.
//
// Two encoders are provided:
//
//   - Encoder is a general-purpose line encoder fed one scanline of Color
//     samples at a time. It produces modified Huffman (TIFF compression 2),
//     T.4 one- or two-dimensional (compression 3) or T.6 (compression 4)
//     streams depending on its Scheme.
//   - PackedEncoder T.6-codes a whole strip of packed rows directly, reading
//     a 1 bit as black. It skips the trailing padding bits of each row.
//
// Both encoders emit bits most significant bit first (TIFF FillOrder 1) and
// pad the final byte with zero bits.
//
// # Usage
//
//	enc, err := fax.NewEncoder(fax.WithScheme(fax.SchemeT4), fax.WithK(4))
//	if err != nil {
//	    return err
//	}
//	for _, row := range rows {
//	    enc.EncodeLine(row, width)
//	}
//	coded := enc.Finish()
//
// An Encoder keeps the previous line as the reference for two-dimensional
// coding, so lines must be fed in order and an Encoder must not be shared
// between goroutines.
package fax
