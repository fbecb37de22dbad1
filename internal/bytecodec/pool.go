package bytecodec

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

// decoderPool manages reusable zstd decoders so parallel plane decoding
// does not serialize on a single decoder.
type decoderPool struct {
	pool      *sync.Pool
	maxMemory uint64
	lowmem    bool
}

// newDecoderPool creates a pool of decoders. If maxMemory is 0 the library
// default limit applies.
func newDecoderPool(maxMemory uint64, lowmem bool) *decoderPool {
	p := &decoderPool{
		maxMemory: maxMemory,
		lowmem:    lowmem,
	}
	p.pool = &sync.Pool{
		New: func() any {
			dec, err := p.newDecoder()
			if err != nil {
				return nil
			}
			return dec
		},
	}
	return p
}

// get returns a decoder and the function that releases it.
// If an error is returned, no release function needs to be called.
func (p *decoderPool) get() (*zstd.Decoder, func(), error) {
	value := p.pool.Get()
	dec, ok := value.(*zstd.Decoder)
	if !ok || dec == nil {
		// Pool's New function failed, try directly
		newDec, err := p.newDecoder()
		if err != nil {
			return nil, nil, err
		}
		return newDec, newDec.Close, nil
	}
	return dec, func() { p.pool.Put(dec) }, nil
}

func (p *decoderPool) newDecoder() (*zstd.Decoder, error) {
	opts := []zstd.DOption{
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(p.lowmem),
	}
	if p.maxMemory != 0 {
		opts = append(opts, zstd.WithDecoderMaxMemory(p.maxMemory))
	}
	return zstd.NewReader(nil, opts...)
}
