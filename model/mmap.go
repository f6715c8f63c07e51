package model

import (
	"os"

	"golang.org/x/sys/unix"

	textbridge "github.com/annotext/textbridge"
	"github.com/annotext/textbridge/errors"
)

// Mapping is a read-only memory mapping of a model source.
//
// Bytes aliases the mapped region; any view into it becomes invalid after
// Close. Higher-level loaders keep the mapping alive for as long as they
// need zero-copy access.
type Mapping struct {
	mapped []byte // full mapping, page-aligned
	data   []byte // requested region within mapped
}

// Bytes returns the mapped model bytes.
func (m *Mapping) Bytes() []byte {
	if m == nil {
		return nil
	}
	return m.data
}

// Close unmaps the region. Safe on nil.
func (m *Mapping) Close() error {
	if m == nil || m.mapped == nil {
		return nil
	}
	mapped := m.mapped
	m.mapped = nil
	m.data = nil
	if err := unix.Munmap(mapped); err != nil {
		return errors.IO(errors.PhaseModel, "munmap", err)
	}
	return nil
}

// Map opens src read-only as a memory mapping. The descriptor behind an
// FD or Region source stays owned by the caller; Map neither closes nor
// duplicates it.
func Map(src textbridge.Source) (*Mapping, error) {
	switch src.Kind() {
	case textbridge.SourcePath:
		f, err := os.Open(src.Path())
		if err != nil {
			return nil, errors.IO(errors.PhaseModel, "open "+src.Path(), err)
		}
		defer f.Close()
		return mapFD(int(f.Fd()), 0, -1)

	case textbridge.SourceFD:
		return mapFD(src.FD(), 0, -1)

	case textbridge.SourceRegion:
		offset, length := src.Region()
		return mapFD(src.FD(), offset, length)

	default:
		return nil, errors.InvalidInput(errors.PhaseModel, "invalid model source")
	}
}

// mapFD maps length bytes at offset. length < 0 means "to end of file".
func mapFD(fd int, offset, length int64) (*Mapping, error) {
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return nil, errors.IO(errors.PhaseModel, "fstat", err)
	}

	if offset < 0 || offset > st.Size {
		return nil, errors.OutOfBounds(errors.PhaseModel, offset, st.Size)
	}
	if length < 0 {
		length = st.Size - offset
	}
	if length == 0 || offset+length > st.Size {
		return nil, errors.OutOfBounds(errors.PhaseModel, offset+length, st.Size)
	}

	// mmap requires a page-aligned offset; map from the preceding page
	// boundary and slice off the difference.
	pageMask := int64(unix.Getpagesize() - 1)
	alignedOffset := offset &^ pageMask
	lead := offset - alignedOffset

	mapped, err := unix.Mmap(fd, alignedOffset, int(lead+length), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.IO(errors.PhaseModel, "mmap", err)
	}

	return &Mapping{
		mapped: mapped,
		data:   mapped[lead : lead+length],
	}, nil
}
