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
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/ostafen/mflaw/internal/env"
	"github.com/ostafen/mflaw/internal/mflaw"
	"github.com/ostafen/mflaw/internal/volume"
	"github.com/ostafen/mflaw/pkg/report"
	"github.com/spf13/cobra"
)

func DefineInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "inspect <image>",
		Short:        "Write an XML report describing the layout of a disk image",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunInspect,
	}

	cmd.Flags().StringP("output", "o", "", "path of the report file, stdout if empty")
	return cmd
}

func RunInspect(cmd *cobra.Command, args []string) error {
	v, err := openVolume(cmd, args[0])
	if err != nil {
		return err
	}
	defer v.Close()

	layout, err := v.Inspect()
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return writeReport(cmd.OutOrStdout(), v, layout)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return writeReportAndClose(f, v, layout)
}

// writeReportAndClose writes the report to w and closes it. A failed close
// is reported when the write succeeded, since the report may be truncated.
func writeReportAndClose(w io.WriteCloser, v *volume.Volume, layout volume.Layout) (err error) {
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	return writeReport(w, v, layout)
}

func writeReport(w io.Writer, v *volume.Volume, layout volume.Layout) error {
	hdr := report.Header{
		Creator: report.Creator{
			Package:              AppName,
			Version:              env.Version,
			ExecutionEnvironment: report.GetExecEnv(),
		},
		Source: report.Source{
			ImageFilename: v.Name(),
			Backend:       v.Backend(),
			DeviceID:      fmt.Sprintf("%#02x", v.DeviceID()),
			ImageSize:     layout.Size,
		},
	}

	if t := layout.Table; t != nil {
		hdr.Table = &report.Table{
			UUID:           t.Header.UUID.String(),
			PartitionCount: t.Header.PartitionCount,
			RecordSize:     t.Header.PartitionRecordSize,
			FirstUsable:    t.FirstUsable(),
		}
	}

	rw := report.NewWriter(w)
	if err := rw.WriteHeader(hdr); err != nil {
		return err
	}

	if layout.Table == nil {
		// the whole disk is reported as a single partition
		err := rw.WritePartition(report.Partition{
			Index:      volume.WholeDisk,
			Type:       string(layout.Content),
			End:        layout.Size,
			Filesystem: reportFilesystem(layout.Filesystem),
		})
		if err != nil {
			return err
		}
		return rw.Close()
	}

	for _, p := range layout.Partitions {
		err := rw.WritePartition(report.Partition{
			Index:      p.Index,
			Type:       p.Record.Type.String(),
			UUID:       p.Record.UUID.String(),
			Name:       p.Record.NameString(),
			Start:      p.Record.StartOffset,
			End:        p.Record.EndOffset,
			Filesystem: reportFilesystem(p.Filesystem),
		})
		if err != nil {
			return err
		}
	}
	return rw.Close()
}

func reportFilesystem(sb *mflaw.Superblock) *report.Filesystem {
	if sb == nil {
		return nil
	}

	return &report.Filesystem{
		Type:              string(volume.ContentMFLAW),
		Inodes:            sb.Inodes,
		Zones:             sb.Zones,
		InodeBitmapBlocks: sb.InodeBitmapBlocks,
		ZoneBitmapBlocks:  sb.ZoneBitmapBlocks,
		DataBlocks:        sb.DataBlocks,
		DataSize:          sb.DataSize,
		TotalSize:         sb.TotalSize,
	}
}
