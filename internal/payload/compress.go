package payload

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic starts every ZStandard frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// IsCompressed reports whether data starts with a ZStandard frame.
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, zstdMagic)
}

// Compressor handles ZStandard compression of filter payloads.
// Create once and reuse; EncodeAll is safe for concurrent use.
type Compressor struct {
	encoder *zstd.Encoder
}

// NewCompressor creates a reusable ZStandard compressor at SpeedDefault.
// Caller must call Close() when done to release resources.
func NewCompressor() (*Compressor, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	return &Compressor{encoder: encoder}, nil
}

// Compress compresses data into a single ZStandard frame.
func (c *Compressor) Compress(data []byte) []byte {
	if len(data) == 0 {
		return []byte{}
	}
	return c.encoder.EncodeAll(data, make([]byte, 0, len(data)/2))
}

// Close releases compressor resources.
func (c *Compressor) Close() error {
	if c.encoder != nil {
		return c.encoder.Close()
	}
	return nil
}

// Decompressor handles ZStandard decompression of filter payloads.
type Decompressor struct {
	decoder *zstd.Decoder
}

// NewDecompressor creates a reusable ZStandard decompressor. Decoded output
// is capped at maxSize bytes; zero means the decoder default.
// Caller must call Close() when done to release resources.
func NewDecompressor(maxSize uint64) (*Decompressor, error) {
	var opts []zstd.DOption
	if maxSize > 0 {
		opts = append(opts, zstd.WithDecoderMaxMemory(maxSize))
	}
	decoder, err := zstd.NewReader(nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &Decompressor{decoder: decoder}, nil
}

// Decompress decompresses ZStandard data. DecodeAll is safe for concurrent use.
func (d *Decompressor) Decompress(compressed []byte) ([]byte, error) {
	if len(compressed) == 0 {
		return []byte{}, nil
	}
	decompressed, err := d.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	return decompressed, nil
}

// Close releases decompressor resources.
func (d *Decompressor) Close() {
	if d.decoder != nil {
		d.decoder.Close()
	}
}
