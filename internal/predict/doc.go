// Package predict implements a lossless predictive codec for sequences of
// 32-bit and 64-bit words, typically the bit patterns of float32 and float64
// coordinates.
//
// Two hash-indexed predictors compete for every value. The direct-value
// predictor (FCM) remembers the last value seen after a given history hash;
// the differential predictor (DFCM) remembers the last stride and adds it to
// the previous value. Each value is XORed with both predictions and the
// residual with fewer significant bytes is stored, selected by a small code.
// The scheme follows "High Throughput Compression of Double-Precision
// Floating-Point Data" (Burtscher and Ratanaworabhan), adapted to 32-bit
// words.
//
// Layout of a compressed block:
//
//	[1 byte ]  (hash1Bits/2)<<4 | hash2Bits/2
//	[4 bytes]  element count, big-endian
//	groups:    32-bit: 8 values, 3 code bytes (3 bits per value)
//	           64-bit: 2 values, 1 code byte (4 bits per value)
//	           followed by each value's residual bytes, most significant first
//
// A partial final group is padded with one-byte zero residuals. Decoding is
// driven by the element count alone; padding is never interpreted.
package predict
