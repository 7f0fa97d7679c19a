package report_test

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/ostafen/mflaw/pkg/report"
	"github.com/stretchr/testify/require"
)

type document struct {
	XMLName    xml.Name           `xml:"disklayout"`
	Version    string             `xml:"version,attr"`
	Source     report.Source      `xml:"source"`
	Table      *report.Table      `xml:"sgpt"`
	Partitions []report.Partition `xml:"partition"`
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer

	w := report.NewWriter(&buf)
	require.NoError(t, w.WriteHeader(report.Header{
		Creator: report.Creator{Package: "mflaw", Version: "dev", ExecutionEnvironment: report.GetExecEnv()},
		Source:  report.Source{ImageFilename: "disk.img", Backend: "hdd", DeviceID: "0x6c", ImageSize: 1 << 20},
		Table:   &report.Table{UUID: "uuid", PartitionCount: 32, RecordSize: 128, FirstUsable: 8192},
	}))

	require.NoError(t, w.WritePartition(report.Partition{
		Index: 0, Type: "Boot", Name: "boot", Start: 8192, End: 65536,
		Filesystem: &report.Filesystem{Type: "mflaw", Inodes: 10, DataBlocks: 8},
	}))
	require.NoError(t, w.WritePartition(report.Partition{Index: 3, Type: "Unknown", Start: 65536, End: 1 << 20}))
	require.NoError(t, w.Close())

	require.True(t, strings.HasPrefix(buf.String(), xml.Header))

	var doc document
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, report.OutputVersion, doc.Version)
	require.Equal(t, "disk.img", doc.Source.ImageFilename)
	require.Equal(t, "0x6c", doc.Source.DeviceID)
	require.Equal(t, uint64(8192), doc.Table.FirstUsable)
	require.Len(t, doc.Partitions, 2)
	require.Equal(t, uint64(10), doc.Partitions[0].Filesystem.Inodes)
	require.Nil(t, doc.Partitions[1].Filesystem)
	require.Equal(t, 3, doc.Partitions[1].Index)
}
