// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package volume

import (
	"github.com/ostafen/mflaw/internal/disk"
	"github.com/ostafen/mflaw/internal/mflaw"
	"github.com/ostafen/mflaw/internal/sgpt"
)

// Layout is what Inspect found on the disk.
type Layout struct {
	Size       uint64
	Content    Content
	Table      *sgpt.Table       // nil if the disk has no partition table
	Partitions []PartitionInfo   // non-empty records only
	Filesystem *mflaw.Superblock // whole disk filesystem, only looked up without a table
}

type PartitionInfo struct {
	Index      int
	Record     sgpt.Record
	Content    Content
	Filesystem *mflaw.Superblock
	Err        error // set if the partition could not be read
}

// Inspect reads the partition table and identifies the content of every
// partition. Failing to read a partition is recorded in its PartitionInfo;
// failing to read the table is returned.
func (v *Volume) Inspect() (Layout, error) {
	layout := Layout{Size: v.disk.Size()}

	t, found, err := sgpt.Parse(v.disk, v.tblOpts...)
	if err != nil {
		return Layout{}, err
	}

	if !found {
		layout.Content, layout.Filesystem, err = inspect(v.disk, disk.Whole(v.disk))
		if err != nil {
			return Layout{}, err
		}
		return layout, nil
	}
	layout.Content = ContentTable
	layout.Table = t

	i := -1
	for r, err := range t.Records(v.disk) {
		i++
		if err != nil {
			return Layout{}, err
		}
		if r.IsEmpty() {
			continue
		}

		info := PartitionInfo{Index: i, Record: r}
		info.Content, info.Filesystem, info.Err = inspect(v.disk, r)
		if info.Err != nil {
			v.log.Warnf("unable to inspect partition %d: %s", i, info.Err)
		}
		layout.Partitions = append(layout.Partitions, info)
	}
	return layout, nil
}

func inspect(d disk.Disk, p disk.Partitionable) (Content, *mflaw.Superblock, error) {
	content, err := Identify(d, p)
	if err != nil || content != ContentMFLAW {
		return content, nil, err
	}

	sb, found, err := mflaw.ParseSuperblock(d, p)
	if err != nil {
		return ContentUnknown, nil, err
	}
	if !found {
		return ContentUnknown, nil, nil
	}
	return content, &sb, nil
}
