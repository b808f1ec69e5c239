package plugin

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Record header sizes. Oblivion's TES4 record omits the trailing version fields.
const (
	recordHeaderSizeOblivion = 20
	recordHeaderSize         = 24
	subrecordHeaderSize      = 6

	// maxRecordDataSize bounds the TES4 record body. Real headers are a few
	// KiB even with the full 255 masters.
	maxRecordDataSize = 1 << 20

	flagMaster = 0x1
	flagLight  = 0x200
)

// ErrNotAPlugin is returned when a file does not start with a TES4 record
var ErrNotAPlugin = errors.New("not a plugin file")

var bashTagsPattern = regexp.MustCompile(`(?s)\{\{\s*BASH\s*:(.*?)\}\}`)

// Header holds the parts of a plugin's TES4 record this package reads
type Header struct {
	IsMaster    bool
	IsLight     bool
	Author      string
	Description string
	Masters     []string
}

// ReadHeader parses the TES4 record at the start of r.
// oblivion selects the shorter Oblivion record header.
func ReadHeader(r io.Reader, oblivion bool) (*Header, error) {
	size := recordHeaderSize
	if oblivion {
		size = recordHeaderSizeOblivion
	}

	head := make([]byte, size)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAPlugin, err)
	}
	if string(head[0:4]) != "TES4" {
		return nil, ErrNotAPlugin
	}

	dataSize := binary.LittleEndian.Uint32(head[4:8])
	flags := binary.LittleEndian.Uint32(head[8:12])

	if dataSize > maxRecordDataSize {
		return nil, fmt.Errorf("%w: TES4 record claims %d bytes", ErrNotAPlugin, dataSize)
	}

	data := make([]byte, dataSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("truncated TES4 record: %w", err)
	}

	h := &Header{
		IsMaster: flags&flagMaster != 0,
		IsLight:  !oblivion && flags&flagLight != 0,
	}

	for len(data) >= subrecordHeaderSize {
		kind := string(data[0:4])
		length := int(binary.LittleEndian.Uint16(data[4:6]))
		data = data[subrecordHeaderSize:]
		if length > len(data) {
			return nil, fmt.Errorf("truncated %s subrecord", kind)
		}
		value := data[:length]
		data = data[length:]

		switch kind {
		case "CNAM":
			h.Author = zstring(value)
		case "SNAM":
			h.Description = zstring(value)
		case "MAST":
			h.Masters = append(h.Masters, zstring(value))
		}
	}

	return h, nil
}

// BashTags returns the tags listed in a {{BASH:...}} block of the description
func (h *Header) BashTags() []string {
	match := bashTagsPattern.FindStringSubmatch(h.Description)
	if match == nil {
		return nil
	}

	var tags []string
	for _, tag := range strings.Split(match[1], ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func zstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
