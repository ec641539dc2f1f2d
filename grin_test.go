package grin

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func roundTrip(t *testing.T, data []byte) []byte {
	t.Helper()

	var compressed bytes.Buffer
	require.NoError(t, Compress(&compressed, bytes.NewReader(data)))

	var out bytes.Buffer
	require.NoError(t, Decompress(&out, bytes.NewReader(compressed.Bytes())))
	return out.Bytes()
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	blob := make([]byte, 64*1024)
	rng.Read(blob)

	inputs := map[string][]byte{
		"empty":       {},
		"single byte": {0x41},
		"repeated":    {0x41, 0x41, 0x41},
		"text":        []byte("so much depends upon a red wheel barrow"),
		"binary blob": blob,
		"zeros":       make([]byte, 1024),
	}
	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			out := roundTrip(t, data)
			if len(data) == 0 {
				// An empty buffer yields a nil slice, which
				// require.Equal distinguishes from []byte{}.
				require.Empty(t, out)
			} else {
				require.Equal(t, data, out)
			}
		})
	}
}

func TestRoundTrip_FullAlphabet(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	require.Equal(t, data, roundTrip(t, data))

	// All 256 byte values plus EOF give the tree 257 leaves.
	ft, err := CountFrequencies(bytes.NewReader(data))
	require.NoError(t, err)
	codes, err := NewTree(ft).CodeTable()
	require.NoError(t, err)
	var leaves int
	for _, hc := range codes {
		if hc.Size != 0 {
			leaves++
		}
	}
	require.Equal(t, NumSymbols, leaves)
}

func TestCompress_EmptyInput(t *testing.T) {
	var compressed bytes.Buffer
	require.NoError(t, Compress(&compressed, bytes.NewReader(nil)))

	// Magic, then the lone EOF leaf (bit 0 + nine bits 100000000), then an
	// empty payload padded out to a byte boundary.
	expect := []byte{0x00, 0x00, 0x07, 0x36, 0x40, 0x00}
	require.Equal(t, expect, compressed.Bytes())
}

func TestDecompress_BadMagic(t *testing.T) {
	streams := map[string][]byte{
		"wrong value": {0x00, 0x00, 0x07, 0x37, 0x40, 0x00},
		"short read":  {0x00, 0x00},
		"empty":       nil,
	}
	for name, stream := range streams {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			err := Decompress(&out, bytes.NewReader(stream))
			require.ErrorIs(t, err, ErrBadMagic)
			require.Zero(t, out.Len())
		})
	}
}

type failingReader struct {
	err error
}

func (r failingReader) Read(p []byte) (int, error) {
	return 0, r.err
}

func TestDecompress_ReadError(t *testing.T) {
	errDisk := errors.New("disk failure")

	var out bytes.Buffer
	err := Decompress(&out, failingReader{errDisk})
	require.ErrorIs(t, err, errDisk)
	require.NotErrorIs(t, err, ErrBadMagic)
	require.Zero(t, out.Len())
}

func TestDecompress_TruncatedPayload(t *testing.T) {
	data := bytes.Repeat([]byte("grinnell"), 40)

	var compressed bytes.Buffer
	require.NoError(t, Compress(&compressed, bytes.NewReader(data)))

	// Dropping the final two bytes cuts into the payload, not the tree:
	// sixteen bits is more than the EOF codeword plus padding, so at least
	// one data codeword is lost.  The decoder stops soft, keeping the
	// prefix it already produced.
	chopped := compressed.Bytes()[:compressed.Len()-2]
	var out bytes.Buffer
	require.NoError(t, Decompress(&out, bytes.NewReader(chopped)))
	require.True(t, bytes.HasPrefix(data, out.Bytes()))
	require.Less(t, out.Len(), len(data))
}

func TestConcurrentSessions(t *testing.T) {
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		seed := int64(i)
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed))
			data := make([]byte, 8192)
			rng.Read(data)

			var compressed bytes.Buffer
			if err := Compress(&compressed, bytes.NewReader(data)); err != nil {
				return err
			}
			var out bytes.Buffer
			if err := Decompress(&out, bytes.NewReader(compressed.Bytes())); err != nil {
				return err
			}
			if !bytes.Equal(data, out.Bytes()) {
				return errMismatch
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

var errMismatch = errors.New("round trip mismatch")
