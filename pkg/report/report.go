// Package report writes XML descriptions of a disk layout: the partition
// table found on an image and the filesystem recognized in each partition.
package report

import (
	"os"
	"os/user"
	"runtime"
	"strconv"
	"time"

	"github.com/ostafen/mflaw/pkg/sysinfo"
)

const OutputVersion = "1.0"

// Header holds the document level elements written before any partition.
type Header struct {
	Creator Creator
	Source  Source
	Table   *Table // nil when the image carries no partition table
}

// Creator describes the software and environment used to generate the report.
type Creator struct {
	Package              string  `xml:"package"`
	Version              string  `xml:"version"`
	ExecutionEnvironment ExecEnv `xml:"execution_environment"`
}

// ExecEnv provides information about the host the report was created on.
type ExecEnv struct {
	OS      string `xml:"os_sysname"`
	Release string `xml:"os_release"`
	Version string `xml:"os_version"`
	Host    string `xml:"host"`
	Arch    string `xml:"arch"`
	UID     int    `xml:"uid"`
	Start   string `xml:"start_time"`
}

// Source describes the inspected image.
type Source struct {
	ImageFilename string `xml:"image_filename"`
	Backend       string `xml:"backend"`
	DeviceID      string `xml:"device_id"`
	ImageSize     uint64 `xml:"image_size"`
}

// Table describes an sGPT header.
type Table struct {
	UUID           string `xml:"uuid"`
	PartitionCount uint32 `xml:"partition_count"`
	RecordSize     uint32 `xml:"partition_record_size"`
	FirstUsable    uint64 `xml:"first_usable"`
}

// Partition describes a non-empty partition record.
type Partition struct {
	Index      int         `xml:"index,attr"`
	Type       string      `xml:"type"`
	UUID       string      `xml:"uuid"`
	Name       string      `xml:"name"`
	Start      uint64      `xml:"start"`
	End        uint64      `xml:"end"`
	Filesystem *Filesystem `xml:"filesystem,omitempty"`
}

// Filesystem describes a recognized MFLAW superblock.
type Filesystem struct {
	Type              string `xml:"type,attr"`
	Inodes            uint64 `xml:"inodes"`
	Zones             uint64 `xml:"zones"`
	InodeBitmapBlocks uint64 `xml:"inode_bitmap_blocks"`
	ZoneBitmapBlocks  uint64 `xml:"zone_bitmap_blocks"`
	DataBlocks        uint64 `xml:"data_blocks"`
	DataSize          uint64 `xml:"data_size"`
	TotalSize         uint64 `xml:"total_size"`
}

// GetExecEnv retrieves runtime information to populate the ExecEnv struct.
func GetExecEnv() ExecEnv {
	sinfo, err := sysinfo.Stat()
	if err != nil {
		sinfo = &sysinfo.SysUnknown
	}

	host, err := os.Hostname()
	if err != nil {
		host = "unknown_host"
	}

	uid := 0
	if u, err := user.Current(); err == nil {
		if v, err := strconv.Atoi(u.Uid); err == nil {
			uid = v
		}
	}

	return ExecEnv{
		OS:      sinfo.Name,
		Release: sinfo.Release,
		Version: sinfo.Version,
		Host:    host,
		Arch:    runtime.GOARCH,
		UID:     uid,
		Start:   time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	}
}
