package predict

import (
	"fmt"

	"github.com/meigma/trico/internal/tricotype"
)

const (
	groupSize64 = 2
	codeBytes64 = 1
)

// MaxCompressedLen64 returns the largest block Compress64 can produce for n values.
func MaxCompressedLen64(n int) int {
	groups := (n + groupSize64 - 1) / groupSize64
	padding := groups*groupSize64 - n
	return headerSize + groups*codeBytes64 + 8*n + padding
}

// code64 selects the representation of one value.
//
// Codes 0-8 store residual1 (FCM) in 0-8 bytes. Codes 9-15 store residual2
// (DFCM) in 1-7 bytes and are chosen only when strictly shorter.
func code64(r1, r2 uint64) uint8 {
	n1 := byteLen(r1)
	if n1 <= 1 {
		return uint8(n1)
	}
	n2 := max(byteLen(r2), 1)
	if n2 < n1 && n2 <= 7 {
		return uint8(8 + n2)
	}
	return uint8(n1)
}

func residualLen64(code uint8) int {
	if code > 8 {
		return int(code) - 8
	}
	return int(code)
}

// Compress64 encodes values with table exponents hash1Bits and hash2Bits.
// The exponents are normalized with NormalizeHashBits. len(values) must not
// exceed 2^32-1.
func Compress64(values []uint64, hash1Bits, hash2Bits uint) []byte {
	bits1, bits2 := NormalizeHashBits(hash1Bits), NormalizeHashBits(hash2Bits)
	out := make([]byte, 0, MaxCompressedLen64(len(values)))
	out = appendHeader(out, bits1, bits2, len(values))

	s := newState[uint64](64, bits1, bits2, len(values))
	var (
		codes     [groupSize64]uint8
		residuals [groupSize64]uint64
	)
	for start := 0; start < len(values); start += groupSize64 {
		group := values[start:min(start+groupSize64, len(values))]
		for j, v := range group {
			fcm, dfcm := s.predictions()
			r1, r2 := v^fcm, v^dfcm
			s.update(v)

			codes[j] = code64(r1, r2)
			if codes[j] > 8 {
				residuals[j] = r2
			} else {
				residuals[j] = r1
			}
		}
		if len(group) < groupSize64 {
			codes[1] = 1
			residuals[1] = 0
		}
		out = append(out, codes[1]<<4|codes[0])
		for j, c := range codes {
			out = appendResidual(out, residuals[j], residualLen64(c))
		}
	}
	return out
}

// Decompress64 decodes a block produced by Compress64.
func Decompress64(src []byte) ([]uint64, error) {
	h, err := readHeader(src)
	if err != nil {
		return nil, err
	}
	payload := src[headerSize:]
	if err := checkCount(h.count, groupSize64, codeBytes64, len(payload)); err != nil {
		return nil, err
	}

	s := newState[uint64](64, h.bits1, h.bits2, h.count)
	out := make([]uint64, 0, h.count)
	pos := 0
	for len(out) < h.count {
		if len(payload)-pos < codeBytes64 {
			return nil, errTruncatedCodes(pos)
		}
		packed := payload[pos]
		pos += codeBytes64

		m := min(groupSize64, h.count-len(out))
		for j := range m {
			code := (packed >> (4 * j)) & 15
			n := residualLen64(code)
			r, err := readResidual(payload, pos, n)
			if err != nil {
				return nil, err
			}
			pos += n

			fcm, dfcm := s.predictions()
			v := r ^ fcm
			if code > 8 {
				v = r ^ dfcm
			}
			s.update(v)
			out = append(out, v)
		}
	}
	return out, nil
}

func errTruncatedCodes(pos int) error {
	return fmt.Errorf("%w: group codes at offset %d run past the block",
		tricotype.ErrUnexpectedEOF, pos+headerSize)
}
