package predict

import "encoding/binary"

const (
	groupSize32 = 8
	codeBytes32 = 3
)

// MaxCompressedLen32 returns the largest block Compress32 can produce for n values.
func MaxCompressedLen32(n int) int {
	groups := (n + groupSize32 - 1) / groupSize32
	padding := groups*groupSize32 - n
	return headerSize + groups*codeBytes32 + 4*n + padding
}

// code32 selects the representation of one value.
//
// Codes 0-4 store residual1 (FCM) in 0-4 bytes; code 0 means an exact
// prediction. Codes 5-7 store residual2 (DFCM) in 1-3 bytes and are chosen
// only when strictly shorter than residual1.
func code32(r1, r2 uint32) uint8 {
	n1 := byteLen(uint64(r1))
	if n1 <= 1 {
		return uint8(n1)
	}
	n2 := max(byteLen(uint64(r2)), 1)
	if n2 < n1 && n2 <= 3 {
		return uint8(4 + n2)
	}
	return uint8(n1)
}

// residualLen32 returns the number of residual bytes a code stores.
func residualLen32(code uint8) int {
	if code > 4 {
		return int(code) - 4
	}
	return int(code)
}

// Compress32 encodes values with table exponents hash1Bits and hash2Bits.
// The exponents are normalized with NormalizeHashBits. len(values) must not
// exceed 2^32-1.
func Compress32(values []uint32, hash1Bits, hash2Bits uint) []byte {
	bits1, bits2 := NormalizeHashBits(hash1Bits), NormalizeHashBits(hash2Bits)
	out := make([]byte, 0, MaxCompressedLen32(len(values)))
	out = appendHeader(out, bits1, bits2, len(values))

	s := newState[uint32](32, bits1, bits2, len(values))
	var (
		codes     [groupSize32]uint8
		residuals [groupSize32]uint32
	)
	for start := 0; start < len(values); start += groupSize32 {
		group := values[start:min(start+groupSize32, len(values))]
		for j, v := range group {
			fcm, dfcm := s.predictions()
			r1, r2 := v^fcm, v^dfcm
			s.update(v)

			codes[j] = code32(r1, r2)
			if codes[j] > 4 {
				residuals[j] = r2
			} else {
				residuals[j] = r1
			}
		}
		for j := len(group); j < groupSize32; j++ {
			codes[j] = 1
			residuals[j] = 0
		}
		out = appendGroup32(out, &codes, &residuals)
	}
	return out
}

func appendGroup32(dst []byte, codes *[groupSize32]uint8, residuals *[groupSize32]uint32) []byte {
	var packed uint32
	for j, c := range codes {
		packed |= uint32(c) << (3 * j)
	}
	dst = append(dst, byte(packed>>16), byte(packed>>8), byte(packed))
	for j, c := range codes {
		dst = appendResidual(dst, uint64(residuals[j]), residualLen32(c))
	}
	return dst
}

// Decompress32 decodes a block produced by Compress32.
func Decompress32(src []byte) ([]uint32, error) {
	h, err := readHeader(src)
	if err != nil {
		return nil, err
	}
	payload := src[headerSize:]
	if err := checkCount(h.count, groupSize32, codeBytes32, len(payload)); err != nil {
		return nil, err
	}

	s := newState[uint32](32, h.bits1, h.bits2, h.count)
	out := make([]uint32, 0, h.count)
	pos := 0
	for len(out) < h.count {
		if len(payload)-pos < codeBytes32 {
			return nil, errTruncatedCodes(pos)
		}
		packed := uint32(payload[pos])<<16 | uint32(binary.BigEndian.Uint16(payload[pos+1:]))
		pos += codeBytes32

		// Only the values the count still asks for are decoded; the
		// padding entries of a final partial group are never read.
		m := min(groupSize32, h.count-len(out))
		for j := range m {
			code := uint8(packed>>(3*j)) & 7
			n := residualLen32(code)
			r, err := readResidual(payload, pos, n)
			if err != nil {
				return nil, err
			}
			pos += n

			fcm, dfcm := s.predictions()
			v := uint32(r) ^ fcm
			if code > 4 {
				v = uint32(r) ^ dfcm
			}
			s.update(v)
			out = append(out, v)
		}
	}
	return out, nil
}
