package volume

import (
	"encoding/binary"

	"github.com/ostafen/mflaw/internal/disk"
	"github.com/ostafen/mflaw/internal/mflaw"
	"github.com/ostafen/mflaw/internal/sgpt"
	"github.com/ostafen/mflaw/pkg/table"
)

// Content identifies the structure found at the start of a partition.
type Content string

const (
	ContentUnknown Content = "unknown"
	ContentTable   Content = "sgpt"
	ContentMFLAW   Content = "mflaw"
)

// signatureSize is the length of the longest signature.
const signatureSize = 8

var signatures = newSignatureTable()

func newSignatureTable() *table.PrefixTable[Content] {
	t := table.New[Content]()

	t.Insert(binary.LittleEndian.AppendUint64(nil, sgpt.Signature), ContentTable)
	t.Insert([]byte{mflaw.Magic}, ContentMFLAW)
	return t
}

// Identify reads the first bytes of p and matches them against known signatures.
func Identify(d disk.Disk, p disk.Partitionable) (Content, error) {
	if p.End() <= p.Start() {
		return ContentUnknown, nil
	}

	buf := make([]byte, min(signatureSize, p.End()-p.Start()))
	if _, err := d.Read(p.Start(), buf); err != nil {
		return ContentUnknown, err
	}

	c, ok := signatures.Match(buf)
	if !ok {
		return ContentUnknown, nil
	}
	return c, nil
}
