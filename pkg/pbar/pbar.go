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
package pbar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ostafen/mflaw/pkg/util/format"
)

const MinRefreshRate = time.Millisecond * 500

const barLength = 20

// ProgressBar renders the progress of a byte transfer on a single terminal line.
type ProgressBar struct {
	out   io.Writer
	label string

	TotalBytes         int64
	ProcessedBytes     int64
	StartTime          time.Time
	LastUpdateTime     time.Time
	LastProcessedBytes int64
}

// New creates a ProgressBar for totalBytes, printing to out.
func New(out io.Writer, label string, totalBytes int64) *ProgressBar {
	return &ProgressBar{
		out:            out,
		label:          label,
		TotalBytes:     totalBytes,
		StartTime:      time.Now(),
		LastUpdateTime: time.Unix(0, 0),
	}
}

// Add records n more processed bytes and redraws the bar if the refresh
// interval elapsed.
func (pb *ProgressBar) Add(n int) {
	pb.ProcessedBytes += int64(n)
	pb.Render(false)
}

// Render prints the progress line. Unless force is set, calls within
// MinRefreshRate of the previous one are ignored.
func (pb *ProgressBar) Render(force bool) {
	if !force && time.Since(pb.LastUpdateTime) < MinRefreshRate {
		return
	}

	percentage := 100.0
	if pb.TotalBytes > 0 {
		percentage = float64(pb.ProcessedBytes) / float64(pb.TotalBytes) * 100
	}

	filledLen := min(int(float64(barLength)*percentage/100), barLength)
	var bar string
	if filledLen == barLength {
		bar = strings.Repeat("=", barLength)
	} else {
		bar = strings.Repeat("=", filledLen) + ">" + strings.Repeat(" ", barLength-filledLen-1)
	}

	var speed float64
	if elapsed := time.Since(pb.LastUpdateTime).Seconds(); elapsed > 0 {
		speed = float64(pb.ProcessedBytes-pb.LastProcessedBytes) / elapsed
	}

	var etaStr string
	if pb.ProcessedBytes > 0 && speed > 0 {
		etaSeconds := float64(pb.TotalBytes-pb.ProcessedBytes) / speed
		etaStr = fmt.Sprintf("%02d:%02d:%02d remaining",
			int(etaSeconds/3600),
			int(etaSeconds/60)%60,
			int(etaSeconds)%60)
	} else {
		etaStr = "calculating..."
	}

	pb.LastUpdateTime = time.Now()
	pb.LastProcessedBytes = pb.ProcessedBytes

	// \r returns to the start of the line; trailing spaces clear leftovers of a longer line
	fmt.Fprintf(pb.out, "\r[INFO] %s: [%s] %3.0f%% (%s/%s) | @ %.2fMB/s [%s]    ",
		pb.label,
		bar,
		percentage,
		format.FormatBytes(pb.ProcessedBytes),
		format.FormatBytes(pb.TotalBytes),
		speed/format.MB,
		etaStr)
}

// Finish draws the final state and moves to the next line.
func (pb *ProgressBar) Finish() {
	pb.Render(true)
	fmt.Fprintln(pb.out)
}
