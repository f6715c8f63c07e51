package model

import (
	"encoding/binary"

	"github.com/annotext/textbridge/errors"
)

const (
	// MagicNumber identifies model files (ASCII: "TBM1").
	MagicNumber = 0x54424D31
	// FormatVersion is the current header layout version.
	FormatVersion = 1

	// Fixed-size prefix: magic, format, model version, name length,
	// locales length. Name and locales bytes follow immediately.
	headerFixedSize = 4 + 4 + 4 + 2 + 2
)

var (
	ErrInvalidMagic   = errors.InvalidData(errors.PhaseModel, []string{"header", "magic"}, "invalid magic number")
	ErrInvalidVersion = errors.InvalidData(errors.PhaseModel, []string{"header", "format"}, "unsupported format version")
	ErrTruncated      = errors.InvalidData(errors.PhaseModel, []string{"header"}, "truncated header")
)

// parseHeader decodes the header at the start of a mapped model.
// The engine interprets everything past the header; this layer only needs
// the metadata fields.
func parseHeader(data []byte) (Metadata, error) {
	if len(data) < headerFixedSize {
		return Metadata{}, ErrTruncated
	}
	if binary.LittleEndian.Uint32(data[0:4]) != MagicNumber {
		return Metadata{}, ErrInvalidMagic
	}
	if binary.LittleEndian.Uint32(data[4:8]) != FormatVersion {
		return Metadata{}, ErrInvalidVersion
	}

	version := int32(binary.LittleEndian.Uint32(data[8:12]))
	nameLen := int(binary.LittleEndian.Uint16(data[12:14]))
	localesLen := int(binary.LittleEndian.Uint16(data[14:16]))

	end := headerFixedSize + nameLen + localesLen
	if len(data) < end {
		return Metadata{}, ErrTruncated
	}

	name := string(data[headerFixedSize : headerFixedSize+nameLen])
	locales := string(data[headerFixedSize+nameLen : end])

	return Metadata{Name: name, Version: version, Locales: locales}, nil
}

// HeaderBytes encodes a model header for meta. Used by tooling and tests
// to produce model files; the engine payload follows the returned bytes.
func HeaderBytes(meta Metadata) ([]byte, error) {
	if len(meta.Name) > 0xFFFF {
		return nil, errors.InvalidInput(errors.PhaseModel, "model name too long")
	}
	if len(meta.Locales) > 0xFFFF {
		return nil, errors.InvalidInput(errors.PhaseModel, "model locales too long")
	}

	buf := make([]byte, headerFixedSize, headerFixedSize+len(meta.Name)+len(meta.Locales))
	binary.LittleEndian.PutUint32(buf[0:4], MagicNumber)
	binary.LittleEndian.PutUint32(buf[4:8], FormatVersion)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(meta.Version))
	binary.LittleEndian.PutUint16(buf[12:14], uint16(len(meta.Name)))
	binary.LittleEndian.PutUint16(buf[14:16], uint16(len(meta.Locales)))
	buf = append(buf, meta.Name...)
	buf = append(buf, meta.Locales...)
	return buf, nil
}
