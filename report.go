package main

import (
	"bytes"
	"fmt"
	"io"
	"time"
)

// FlightTimeStats keeps a running average of message flight times.
type FlightTimeStats struct {
	count   int64
	Average time.Duration
	Max     time.Duration
}

func (f *FlightTimeStats) Add(duration time.Duration) {
	f.count++
	f.Average += (duration - f.Average) / time.Duration(f.count)
	if duration > f.Max {
		f.Max = duration
	}
}

func (f *FlightTimeStats) Count() int64 {
	return f.count
}

// TransferReport summarizes entries moved between a map and a queue.
type TransferReport struct {
	Name    string
	Limit   int
	Skipped int
	Start   time.Time
	End     time.Time
	Stats   FlightTimeStats
}

func NewTransferReport(name string, limit int) *TransferReport {
	return &TransferReport{
		Name:  name,
		Limit: limit,
		Start: time.Now(),
	}
}

func (t *TransferReport) Add(flightTime time.Duration) {
	t.Stats.Add(flightTime)
}

func (t *TransferReport) Skip() {
	t.Skipped++
}

func (t *TransferReport) Finish() {
	t.End = time.Now()
}

func (t *TransferReport) Duration() time.Duration {
	if t.End.IsZero() {
		return time.Since(t.Start)
	}
	return t.End.Sub(t.Start)
}

func writePadded(w io.Writer, s string, width int) {
	w.Write([]byte(s))
	if pad := width - len(s); pad > 0 {
		w.Write(bytes.Repeat([]byte{' '}, pad))
	}
}

// WriteTo writes the report as a single line of fixed width columns.
func (t *TransferReport) WriteTo(w io.Writer) {
	column1Len := 12
	column2Len := 18
	column3Len := 12
	column4Len := 22

	c := t.Stats.Count()
	duration := t.Duration()
	var msgsPerSec float64
	if secs := duration.Seconds(); secs > 0 {
		msgsPerSec = float64(c) / secs
	}

	writePadded(w, t.Name, column1Len)
	if t.Limit > 0 {
		writePadded(w, fmt.Sprintf("%d/%d entries", c, t.Limit), column2Len)
	} else {
		writePadded(w, fmt.Sprintf("%d entries", c), column2Len)
	}
	writePadded(w, fmt.Sprintf("%d skipped", t.Skipped), column3Len)
	writePadded(w, fmt.Sprintf("duration: %s", duration.Round(time.Millisecond)), column4Len)
	w.Write([]byte(fmt.Sprintf("%.3f msgs/s  flight time: %.3fs (avg) %.3fs (max)\n",
		msgsPerSec, t.Stats.Average.Seconds(), t.Stats.Max.Seconds())))
}
