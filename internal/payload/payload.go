// Package payload decodes advanced filter options received over the wire.
// Options arrive as JSON or MessagePack, optionally wrapped in a ZStandard
// frame; the encoding is detected from the data.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/hugr-lab/quickfilter"
)

// Format is a payload encoding.
type Format string

const (
	// FormatJSON is a JSON object with Number-preserving decoding.
	FormatJSON Format = "json"
	// FormatMessagePack is a MessagePack map with the same keys as JSON.
	FormatMessagePack Format = "msgpack"
)

// ErrEmptyPayload is returned when there is nothing to decode.
var ErrEmptyPayload = errors.New("empty filter payload")

// DefaultMaxSize caps the decompressed size of a payload.
const DefaultMaxSize = 16 << 20

// Detect returns the encoding of uncompressed data.
func Detect(data []byte) Format {
	if trimmed := bytes.TrimLeft(data, " \t\r\n"); len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatMessagePack
}

// Decode deserializes advanced filter options. Compressed data is
// decompressed first.
//
// JSON numbers in selected values decode as json.Number so that 64-bit
// integers keep their precision.
func Decode(data []byte) (quickfilter.AdvancedFilterOptions, error) {
	var options quickfilter.AdvancedFilterOptions
	if len(data) == 0 {
		return options, ErrEmptyPayload
	}

	if IsCompressed(data) {
		d, err := NewDecompressor(DefaultMaxSize)
		if err != nil {
			return options, err
		}
		defer d.Close()

		data, err = d.Decompress(data)
		if err != nil {
			return options, fmt.Errorf("payload: %w", err)
		}
		if len(data) == 0 {
			return options, ErrEmptyPayload
		}
	}

	switch Detect(data) {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&options); err != nil {
			return options, fmt.Errorf("payload: failed to decode JSON: %w", err)
		}
	default:
		if err := msgpack.Unmarshal(data, &options); err != nil {
			return options, fmt.Errorf("payload: failed to decode MessagePack: %w", err)
		}
	}
	return options, nil
}

// Encode serializes options in format, compressing the result if compress
// is set.
func Encode(options quickfilter.AdvancedFilterOptions, format Format, compress bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = json.Marshal(options)
	case FormatMessagePack:
		data, err = msgpack.Marshal(options)
	default:
		return nil, fmt.Errorf("payload: unknown format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("payload: failed to encode %s: %w", format, err)
	}

	if !compress {
		return data, nil
	}
	c, err := NewCompressor()
	if err != nil {
		return nil, err
	}
	defer c.Close()
	return c.Compress(data), nil
}
