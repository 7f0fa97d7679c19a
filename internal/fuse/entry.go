package fuse

import (
	"fmt"
	"io"
	"strings"

	"github.com/ostafen/mflaw/internal/disk"
	"github.com/ostafen/mflaw/internal/volume"
)

// Entry is a file of the mounted directory.
type Entry struct {
	Name string
	Data interface {
		io.ReaderAt
		Size() int64
	}
}

func (e Entry) Size() int64 { return e.Data.Size() }

// EntryName returns the file name of the partition stored in slot index.
func EntryName(index int, name string) string {
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == 0 || r == '\\' {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))

	if name == "" {
		return fmt.Sprintf("part%02d.img", index)
	}
	return fmt.Sprintf("part%02d-%s.img", index, name)
}

// Entries returns one entry for each non-empty partition of the layout. A
// disk without a partition table is exposed as a single disk.img file.
func Entries(d disk.Disk, layout volume.Layout) []Entry {
	if layout.Table == nil {
		return []Entry{{
			Name: "disk.img",
			Data: disk.NewSection(d, disk.Whole(d)),
		}}
	}

	entries := make([]Entry, 0, len(layout.Partitions))
	for _, p := range layout.Partitions {
		entries = append(entries, Entry{
			Name: EntryName(p.Index, p.Record.NameString()),
			Data: disk.NewSection(d, p.Record),
		})
	}
	return entries
}
