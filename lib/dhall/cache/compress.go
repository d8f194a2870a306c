// Copyright 2026 The Dhall-Lang Authors
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionTag identifies the compression algorithm used for a
// stored cache entry. Tags are persisted in the cache_entries table —
// changing these values invalidates existing cache databases.
type CompressionTag uint8

const (
	// CompressionNone stores the encoded bytes unchanged.
	CompressionNone CompressionTag = 0

	// CompressionLZ4 compresses with LZ4 block compression: fast, a
	// modest ratio, good default when content is unknown.
	CompressionLZ4 CompressionTag = 1

	// CompressionZstd compresses with zstd at the default speed level:
	// slower than LZ4 but a noticeably better ratio on CBOR-encoded
	// Dhall expressions, which are mostly small integers and repeated
	// field-name text.
	CompressionZstd CompressionTag = 2
)

// String returns the human-readable name of a compression tag.
func (tag CompressionTag) String() string {
	switch tag {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", tag)
	}
}

// ParseCompressionTag parses a compression tag from its configuration
// string representation ("none", "lz4", "zstd").
func ParseCompressionTag(name string) (CompressionTag, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression tag: %q", name)
	}
}

// compressChunk compresses data using the specified algorithm,
// returning the tag actually used alongside the result. If the
// requested algorithm cannot shrink data, compressChunk falls back to
// CompressionNone and reports that in the returned tag, so Get never
// has to guess which algorithm a row was really stored with.
func compressChunk(data []byte, tag CompressionTag) ([]byte, CompressionTag, error) {
	switch tag {
	case CompressionNone:
		return data, CompressionNone, nil
	case CompressionLZ4:
		compressed, ok, err := compressLZ4(data)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			return data, CompressionNone, nil
		}
		return compressed, CompressionLZ4, nil
	case CompressionZstd:
		compressed := compressZstd(data)
		if len(compressed) >= len(data) {
			return data, CompressionNone, nil
		}
		return compressed, CompressionZstd, nil
	default:
		return nil, 0, fmt.Errorf("cache: unsupported compression tag: %d", tag)
	}
}

// decompressChunk decompresses data that was compressed with the
// specified algorithm. uncompressedSize must match the original data
// length exactly; a mismatch is an error, mirroring the defensive
// check the teacher's artifact store makes on every chunk it serves.
func decompressChunk(compressed []byte, tag CompressionTag, uncompressedSize int) ([]byte, error) {
	switch tag {
	case CompressionNone:
		if len(compressed) != uncompressedSize {
			return nil, fmt.Errorf("cache: uncompressed entry: size %d does not match recorded %d",
				len(compressed), uncompressedSize)
		}
		return compressed, nil
	case CompressionLZ4:
		return decompressLZ4(compressed, uncompressedSize)
	case CompressionZstd:
		return decompressZstd(compressed, uncompressedSize)
	default:
		return nil, fmt.Errorf("cache: unsupported compression tag: %d", tag)
	}
}

// compressLZ4 returns (compressed, true, nil) on success, or
// (nil, false, nil) when lz4 determines data is incompressible.
func compressLZ4(data []byte) ([]byte, bool, error) {
	bound := lz4.CompressBlockBound(len(data))
	destination := make([]byte, bound)

	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return nil, false, fmt.Errorf("cache: lz4 compress: %w", err)
	}
	if written == 0 || written >= len(data) {
		return nil, false, nil
	}
	return destination[:written], true, nil
}

func decompressLZ4(compressed []byte, uncompressedSize int) ([]byte, error) {
	destination := make([]byte, uncompressedSize)
	read, err := lz4.UncompressBlock(compressed, destination)
	if err != nil {
		return nil, fmt.Errorf("cache: lz4 decompress: %w", err)
	}
	if read != uncompressedSize {
		return nil, fmt.Errorf("cache: lz4 decompress: got %d bytes, expected %d", read, uncompressedSize)
	}
	return destination, nil
}

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("cache: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("cache: zstd decoder initialization failed: " + err.Error())
	}
}

func compressZstd(data []byte) []byte {
	return zstdEncoder.EncodeAll(data, nil)
}

func decompressZstd(compressed []byte, uncompressedSize int) ([]byte, error) {
	result, err := zstdDecoder.DecodeAll(compressed, make([]byte, 0, uncompressedSize))
	if err != nil {
		return nil, fmt.Errorf("cache: zstd decompress: %w", err)
	}
	if len(result) != uncompressedSize {
		return nil, fmt.Errorf("cache: zstd decompress: got %d bytes, expected %d", len(result), uncompressedSize)
	}
	return result, nil
}
