// Package lzmaadapter implements the LZMA/XZ adapter. It wraps
// github.com/ulikunitz/xz and its lzma subpackage, a pure-Go LZMA/XZ
// implementation; the range-coder internals of LZMA itself stay out
// of scope here, the same boundary drawn around the zstd and bzip2
// adapters.
package lzmaadapter

import (
	"bytes"
	"io"

	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"

	"github.com/coreframe/codec/errs"
)

// presetExtremeFlag mirrors xz-utils' LZMA_PRESET_EXTREME bit, the top
// bit of the 32-bit preset word; the low 5 bits carry the level 0-9.
const presetExtremeFlag = 1 << 31

// DecodePreset splits an xz-utils style preset word into its level
// (0-9) and extreme-mode flag.
func DecodePreset(preset uint32) (level int, extreme bool) {
	level = int(preset & 0x1F)
	extreme = preset&presetExtremeFlag != 0

	return level, extreme
}

// propertiesForLevel maps a 0-9 preset level onto LZMA literal-context,
// literal-position, and position-bit parameters. Level only scales the
// dictionary size in the reference; lc/lp/pb stay at their defaults
// across levels (3, 0, 2), and extreme mode spends more match-finder
// effort for the same parameters rather than changing them.
func propertiesForLevel(level int) lzma.Properties {
	return lzma.Properties{LC: 3, LP: 0, PB: 2}
}

// dictCapForLevel scales the dictionary capacity with level, following
// the xz-utils preset table's broad shape (64KiB at level 0 up to
// 32MiB at level 9) without reproducing its exact byte counts. extreme
// mode is folded in as one extra dictionary-size tier: this package's
// writer configs expose no separate match-finder-depth knob to spend
// xz-utils' extra extreme-mode effort on directly, so a wider window
// is the closest available lever for trading more work for a better
// ratio at the same level.
func dictCapForLevel(level int, extreme bool) int {
	if level < 0 {
		level = 0
	}
	if level > 9 {
		level = 9
	}

	dictCap := (1 << 16) << uint(level)
	if extreme && level < 9 {
		dictCap <<= 1
	}

	return dictCap
}

// PropertiesHeader returns the 5-byte LZMA properties header prepended
// ahead of the raw LZMA stream: one properties byte encoding lc/lp/pb
// followed by the little-endian dictionary capacity.
func PropertiesHeader(props lzma.Properties, dictCap int) [5]byte {
	var hdr [5]byte
	hdr[0] = props.Byte()
	hdr[1] = byte(dictCap)
	hdr[2] = byte(dictCap >> 8)
	hdr[3] = byte(dictCap >> 16)
	hdr[4] = byte(dictCap >> 24)

	return hdr
}

// CompressOneShot encodes data as a raw LZMA stream preceded by the
// 5-byte properties header, using preset to pick level/extreme mode.
func CompressOneShot(data []byte, preset uint32) ([]byte, error) {
	level, extreme := DecodePreset(preset)
	props := propertiesForLevel(level)
	dictCap := dictCapForLevel(level, extreme)

	var buf bytes.Buffer
	hdr := PropertiesHeader(props, dictCap)
	buf.Write(hdr[:])

	w, err := lzma.WriterConfig{
		Properties: &props,
		DictCap:    dictCap,
		Size:       int64(len(data)),
	}.NewWriter(&buf)
	if err != nil {
		return nil, errs.ErrParam
	}
	if _, err := w.Write(data); err != nil {
		return nil, errs.ErrData
	}
	if err := w.Close(); err != nil {
		return nil, errs.ErrData
	}

	return buf.Bytes(), nil
}

// DecompressOneShot decodes a stream produced by CompressOneShot.
func DecompressOneShot(data []byte) ([]byte, error) {
	if len(data) < 5 {
		return nil, errs.ErrMagic
	}

	props, err := lzma.NewProperties(data[0])
	if err != nil {
		return nil, errs.ErrMagic
	}
	dictCap := int(data[1]) | int(data[2])<<8 | int(data[3])<<16 | int(data[4])<<24

	r, err := lzma.ReaderConfig{
		Properties: &props,
		DictCap:    dictCap,
	}.NewReader(bytes.NewReader(data[5:]))
	if err != nil {
		return nil, errs.ErrMagic
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.ErrData
	}

	return out, nil
}

// XZCompressOneShot wraps data in the full .xz container format. The
// container's integrity-check selector is always written as "none",
// trusting the adapter's own framing to carry data integrity instead
// of a second, redundant checksum layer.
func XZCompressOneShot(data []byte, preset uint32) ([]byte, error) {
	level, extreme := DecodePreset(preset)

	var buf bytes.Buffer
	w, err := xz.WriterConfig{
		DictCap:  dictCapForLevel(level, extreme),
		CheckSum: xz.None,
	}.NewWriter(&buf)
	if err != nil {
		return nil, errs.ErrParam
	}
	if _, err := w.Write(data); err != nil {
		return nil, errs.ErrData
	}
	if err := w.Close(); err != nil {
		return nil, errs.ErrData
	}

	return buf.Bytes(), nil
}

// xzHeaderMagic is the 6-byte magic every .xz stream begins with.
var xzHeaderMagic = [6]byte{0xFD, '7', 'z', 'X', 'Z', 0x00}

// xzCheckOf reads the integrity-check selector out of an .xz stream's
// 12-byte header without parsing the full container: the magic
// occupies the first 6 bytes, a reserved flags byte follows, and the
// low nibble of the next byte carries the check ID (0 none, 1 CRC32,
// 4 CRC64, 10 SHA-256).
func xzCheckOf(data []byte) (xz.Checksum, error) {
	if len(data) < 8 || [6]byte(data[:6]) != xzHeaderMagic {
		return 0, errs.ErrMagic
	}

	return xz.Checksum(data[7] & 0x0F), nil
}

// XZDecompressOneShot decodes a full .xz container. This adapter only
// ever writes CheckSum: xz.None (see XZCompressOneShot), so any stream
// declaring a non-none check is rejected rather than silently accepted
// and decoded anyway: a caller relying on the declared check to detect
// corruption would otherwise get data this adapter never validated.
func XZDecompressOneShot(data []byte) ([]byte, error) {
	check, err := xzCheckOf(data)
	if err != nil {
		return nil, err
	}
	if check != xz.None {
		return nil, errs.ErrParam
	}

	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errs.ErrMagic
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.ErrData
	}

	return out, nil
}
