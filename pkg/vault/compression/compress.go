package compression

import (
	"bytes"

	"github.com/klauspost/compress/zstd"
)

// prefixLength is a length of compression marker in compressed data.
const prefixLength = 4

// Config represents record compression configuration.
type Config struct {
	Enabled bool

	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// zstdFrameMagic contains first 4 bytes of any compressed record
// https://github.com/klauspost/compress/blob/master/zstd/framedec.go#L58 .
var zstdFrameMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Init initializes compression routines. Does nothing if compression
// is disabled.
func (c *Config) Init() error {
	if !c.Enabled {
		return nil
	}

	var err error

	c.encoder, err = zstd.NewWriter(nil)
	if err != nil {
		return err
	}

	c.decoder, err = zstd.NewReader(nil)
	if err != nil {
		_ = c.encoder.Close()
		c.encoder = nil
		return err
	}

	return nil
}

// isCompressed checks whether given data is compressed.
func (c *Config) isCompressed(data []byte) bool {
	return len(data) >= prefixLength && bytes.Equal(data[:prefixLength], zstdFrameMagic)
}

// Decompress decompresses data if compression is enabled and data starts
// with the magic, returns data untouched otherwise. Data saved with disabled
// compression is never altered.
func (c *Config) Decompress(data []byte) ([]byte, error) {
	if c == nil || !c.Enabled || !c.isCompressed(data) {
		return data, nil
	}
	return c.decoder.DecodeAll(data, nil)
}

// Compress compresses data if compression is enabled
// and returns data untouched otherwise.
func (c *Config) Compress(data []byte) []byte {
	if c == nil || !c.Enabled {
		return data
	}
	maxSize := c.encoder.MaxEncodedSize(len(data))
	return c.encoder.EncodeAll(data, make([]byte, 0, maxSize))
}

// Close closes encoder and decoder, returns any error occurred.
func (c *Config) Close() error {
	var err error
	if c.encoder != nil {
		err = c.encoder.Close()
	}
	if c.decoder != nil {
		c.decoder.Close()
	}
	return err
}
