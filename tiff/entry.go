package tiff

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arloliu/faxstrip/endian"
)

// Entry is one field of an image file directory.
//
// Data holds the encoded values in the byte order of the file. Values of at
// most four bytes are stored inside the entry; larger ones live elsewhere in
// the file and the entry stores their offset.
type Entry struct {
	Tag   Tag      // byte offset 0-1
	Type  DataType // byte offset 2-3
	Count uint32   // byte offset 4-7
	Data  []byte   // byte offset 8-11, inline or by offset
}

// Inline reports whether the values fit in the entry itself.
func (e Entry) Inline() bool {
	return len(e.Data) <= 4
}

// appendTo encodes the 12-byte entry. offset is used when the values are
// not inline.
func (e Entry) appendTo(b []byte, engine endian.EndianEngine, offset uint32) []byte {
	b = engine.AppendUint16(b, uint16(e.Tag))
	b = engine.AppendUint16(b, uint16(e.Type))
	b = engine.AppendUint32(b, e.Count)
	if !e.Inline() {
		return engine.AppendUint32(b, offset)
	}

	var field [4]byte
	copy(field[:], e.Data)

	return append(b, field[:]...)
}

// Uints decodes SHORT and LONG values. Other types yield nil.
func (e Entry) Uints(engine endian.EndianEngine) []uint32 {
	size := e.Type.Size()
	if (e.Type != TypeShort && e.Type != TypeLong) || len(e.Data) < int(e.Count)*size {
		return nil
	}

	out := make([]uint32, e.Count)
	for i := range out {
		p := e.Data[i*size:]
		if e.Type == TypeShort {
			out[i] = uint32(engine.Uint16(p))
		} else {
			out[i] = engine.Uint32(p)
		}
	}

	return out
}

// Text decodes an ASCII value without its terminating NUL.
func (e Entry) Text() string {
	if e.Type != TypeASCII {
		return ""
	}

	return strings.TrimRight(string(e.Data), "\x00")
}

func shortEntry(engine endian.EndianEngine, tag Tag, values ...uint16) Entry {
	data := make([]byte, 0, 2*len(values))
	for _, v := range values {
		data = engine.AppendUint16(data, v)
	}

	return Entry{Tag: tag, Type: TypeShort, Count: uint32(len(values)), Data: data}
}

func longEntry(engine endian.EndianEngine, tag Tag, values ...uint32) Entry {
	data := make([]byte, 0, 4*len(values))
	for _, v := range values {
		data = engine.AppendUint32(data, v)
	}

	return Entry{Tag: tag, Type: TypeLong, Count: uint32(len(values)), Data: data}
}

func rationalEntry(engine endian.EndianEngine, tag Tag, num, den uint32) Entry {
	data := engine.AppendUint32(make([]byte, 0, 8), num)
	data = engine.AppendUint32(data, den)

	return Entry{Tag: tag, Type: TypeRational, Count: 1, Data: data}
}

func asciiEntry(tag Tag, s string) Entry {
	data := append([]byte(s), 0)
	return Entry{Tag: tag, Type: TypeASCII, Count: uint32(len(data)), Data: data}
}

// Directory is a decoded image file directory.
type Directory struct {
	Header  Header
	Entries []Entry
}

// Find returns the entry for tag.
func (d *Directory) Find(tag Tag) (Entry, bool) {
	i, ok := slices.BinarySearchFunc(d.Entries, tag, func(e Entry, t Tag) int {
		return int(e.Tag) - int(t)
	})
	if !ok {
		return Entry{}, false
	}

	return d.Entries[i], true
}

// Uint returns the first value of a SHORT or LONG tag.
func (d *Directory) Uint(tag Tag) (uint32, bool) {
	e, ok := d.Find(tag)
	if !ok {
		return 0, false
	}
	v := e.Uints(d.Header.Engine)
	if len(v) == 0 {
		return 0, false
	}

	return v[0], true
}

// ReadDirectory decodes the header and first IFD of a complete TIFF file.
// Entries must be sorted by tag.
func ReadDirectory(data []byte) (*Directory, error) {
	hdr, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	engine := hdr.Engine

	pos := int64(hdr.IFDOffset)
	if pos+2 > int64(len(data)) {
		return nil, fmt.Errorf("%w: offset %d beyond %d bytes", ErrInvalidIFD, pos, len(data))
	}
	n := int64(engine.Uint16(data[pos:]))
	pos += 2
	if pos+n*EntrySize > int64(len(data)) {
		return nil, fmt.Errorf("%w: %d entries truncated", ErrInvalidIFD, n)
	}

	dir := &Directory{Header: hdr, Entries: make([]Entry, 0, n)}
	for i := range n {
		p := data[pos+i*EntrySize : pos+(i+1)*EntrySize]
		e := Entry{
			Tag:   Tag(engine.Uint16(p[0:2])),
			Type:  DataType(engine.Uint16(p[2:4])),
			Count: engine.Uint32(p[4:8]),
		}
		if i > 0 && e.Tag <= dir.Entries[i-1].Tag {
			return nil, fmt.Errorf("%w: tag %d out of order", ErrInvalidIFD, e.Tag)
		}

		size := int64(e.Type.Size()) * int64(e.Count)
		if size <= 4 {
			e.Data = slices.Clone(p[8 : 8+size])
		} else {
			off := int64(engine.Uint32(p[8:12]))
			if off+size > int64(len(data)) {
				return nil, fmt.Errorf("%w: tag %d values truncated", ErrInvalidIFD, e.Tag)
			}
			e.Data = slices.Clone(data[off : off+size])
		}
		dir.Entries = append(dir.Entries, e)
	}

	return dir, nil
}
