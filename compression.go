package geoassist

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"

	"github.com/goforj/geoassist/geocore"
)

// CompressionCodec represents a value compression algorithm.
type CompressionCodec = geocore.CompressionCodec

const (
	CompressionNone = geocore.CompressionNone
	CompressionGzip = geocore.CompressionGzip
)

var (
	compressMagic = []byte("CMP1")

	// ErrQuotaExceeded is returned when a stored value is larger than MaxValueBytes.
	ErrQuotaExceeded      = errors.New("geoassist: storage quota exceeded")
	ErrUnsupportedCodec   = errors.New("geoassist: unsupported compression codec")
	ErrCorruptCompression = errors.New("geoassist: corrupt compressed payload")
)

// encodeValue frames value with the codec and enforces limit. A compressed
// frame that is not smaller than value is dropped and value is stored as is;
// single-place entries are often too short for gzip to pay off.
func encodeValue(codec CompressionCodec, limit int, value []byte) ([]byte, error) {
	out := value
	switch codec {
	case CompressionNone, "":
	case CompressionGzip:
		framed, err := gzipFrame(value)
		if err != nil {
			return nil, err
		}
		if len(framed) < len(value) || bytes.HasPrefix(value, compressMagic) {
			out = framed
		}
	default:
		return nil, ErrUnsupportedCodec
	}
	if limit > 0 && len(out) > limit {
		return nil, ErrQuotaExceeded
	}
	return out, nil
}

func gzipFrame(value []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(compressMagic) + 1 + len(value)/2)
	buf.Write(compressMagic)
	buf.WriteByte('g')
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestSpeed)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(value); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeValue passes through values written without compression.
func decodeValue(in []byte) ([]byte, error) {
	if len(in) < len(compressMagic)+1 || !bytes.Equal(in[:len(compressMagic)], compressMagic) {
		return in, nil
	}
	payload := in[len(compressMagic)+1:]
	switch in[len(compressMagic)] {
	case 'g':
		gr, err := gzip.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, ErrCorruptCompression
		}
		defer gr.Close()
		out, err := io.ReadAll(gr)
		if err != nil {
			return nil, ErrCorruptCompression
		}
		return out, nil
	default:
		return nil, ErrUnsupportedCodec
	}
}
