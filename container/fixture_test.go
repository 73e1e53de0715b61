package container

import (
	"bytes"
	"math"

	"github.com/klauspost/compress/flate"

	"github.com/arloliu/esmkit/endian"
)

// Test fixtures are synthesized in both wire encodings by the helpers below.
// Field order follows the 24-byte main chunk header and 6-byte subrecord
// header layouts; big-endian output reverses multi-byte fields through the
// engine and signature characters by hand, exactly like a console build.

func wireSig(enc endian.Encoding, sig Signature) []byte {
	if enc == endian.Big {
		return []byte{sig[3], sig[2], sig[1], sig[0]}
	}

	return sig[:]
}

func buildSub(enc endian.Encoding, sig string, data []byte) []byte {
	e := enc.Engine()
	out := append([]byte(nil), wireSig(enc, Sig(sig))...)
	out = e.AppendUint16(out, uint16(len(data)))

	return append(out, data...)
}

// buildExtendedSub emits an XXXX marker carrying the true size, followed by
// the marked subrecord whose inline size field reads 0.
func buildExtendedSub(enc endian.Encoding, sig string, data []byte) []byte {
	e := enc.Engine()
	marker := append([]byte(nil), wireSig(enc, SigXXXX)...)
	marker = e.AppendUint16(marker, 4)
	marker = e.AppendUint32(marker, uint32(len(data)))

	out := append(marker, wireSig(enc, Sig(sig))...)
	out = e.AppendUint16(out, 0)

	return append(out, data...)
}

func buildRecord(enc endian.Encoding, sig string, formID, flags uint32, payload []byte) []byte {
	e := enc.Engine()
	out := append([]byte(nil), wireSig(enc, Sig(sig))...)
	out = e.AppendUint32(out, uint32(len(payload)))
	out = e.AppendUint32(out, flags)
	out = e.AppendUint32(out, formID)
	out = e.AppendUint32(out, 0)   // revision
	out = e.AppendUint16(out, 15)  // version
	out = e.AppendUint16(out, 0)   // unknown

	return append(out, payload...)
}

// buildCompressedRecord deflates the given subrecord stream and prefixes the
// declared decompressed size.
func buildCompressedRecord(enc endian.Encoding, sig string, formID uint32, raw []byte) []byte {
	var buf bytes.Buffer
	fw, _ := flate.NewWriter(&buf, flate.DefaultCompression)
	_, _ = fw.Write(raw)
	_ = fw.Close()

	e := enc.Engine()
	payload := e.AppendUint32(nil, uint32(len(raw)))
	payload = append(payload, buf.Bytes()...)

	return buildRecord(enc, sig, formID, FlagCompressed, payload)
}

func buildGroup(enc endian.Encoding, label uint32, kind GroupKind, children ...[]byte) []byte {
	body := bytes.Join(children, nil)
	e := enc.Engine()
	out := append([]byte(nil), wireSig(enc, SigGroup)...)
	out = e.AppendUint32(out, uint32(HeaderSize+len(body)))
	out = e.AppendUint32(out, label)
	out = e.AppendUint32(out, uint32(kind))
	out = e.AppendUint32(out, 0) // stamp
	out = e.AppendUint32(out, 0) // unknown

	return append(out, body...)
}

// typeLabel packs a 4-character tag into a top-level group label in the
// file's encoding, so the decoded Label round-trips via LabelSignature.
func typeLabel(enc endian.Encoding, sig string) uint32 {
	raw := wireSig(enc, Sig(sig))

	return enc.Engine().Uint32(raw)
}

// buildFile emits a TES4 first record followed by the given top-level
// chunks.
func buildFile(enc endian.Encoding, children ...[]byte) []byte {
	e := enc.Engine()
	hedr := e.AppendUint32(nil, math.Float32bits(1.0))
	hedr = e.AppendUint32(hedr, 0)     // record count
	hedr = e.AppendUint32(hedr, 0x800) // next object id

	payload := buildSub(enc, "HEDR", hedr)
	payload = append(payload, buildSub(enc, "CNAM", []byte("esmkit\x00"))...)
	payload = append(payload, buildSub(enc, "SNAM", []byte("fixture\x00"))...)
	payload = append(payload, buildSub(enc, "MAST", []byte("base.esm\x00"))...)

	out := buildRecord(enc, "TES4", 0, 0, payload)

	return append(out, bytes.Join(children, nil)...)
}

// edidPayload builds a one-subrecord payload carrying an editor ID.
func edidPayload(enc endian.Encoding, name string) []byte {
	return buildSub(enc, "EDID", append([]byte(name), 0))
}
