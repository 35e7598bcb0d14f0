// Package wire holds what the network gatherers share: the progress message
// stream, body encoding and output trimming.
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
)

// CompressThreshold is the JSON body size above which zstd is applied.
const CompressThreshold = 4 << 10

const (
	EncodingIdentity = ""
	EncodingZstd     = "zstd"
	EncodingSnappy   = "snappy"
)

var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// Encode marshals msg to JSON and zstd-compresses it when it is larger than
// CompressThreshold. The returned encoding names the compression applied.
func Encode(msg any) (body []byte, encoding string, err error) {
	body, err = json.Marshal(msg)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal message: %w", err)
	}
	if len(body) <= CompressThreshold {
		return body, EncodingIdentity, nil
	}
	return zstdEncoder.EncodeAll(body, make([]byte, 0, len(body)/2)), EncodingZstd, nil
}

// EncodeSnappy marshals msg to JSON and snappy-encodes it unconditionally.
func EncodeSnappy(msg any) ([]byte, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}
	return snappy.Encode(nil, b), nil
}

// Decode reverses Encode or EncodeSnappy into v.
func Decode(body []byte, encoding string, v any) error {
	var err error
	switch encoding {
	case EncodingIdentity:
	case EncodingZstd:
		body, err = zstdDecoder.DecodeAll(body, nil)
		if err != nil {
			return fmt.Errorf("failed to decompress zstd body: %w", err)
		}
	case EncodingSnappy:
		body, err = snappy.Decode(nil, body)
		if err != nil {
			return fmt.Errorf("failed to decompress snappy body: %w", err)
		}
	default:
		return fmt.Errorf("unknown content encoding %q", encoding)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return nil
}
