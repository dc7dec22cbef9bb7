package sched

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

var journalHeader = []string{"timestamp", "event", "task_id", "priority", "arrival", "error"}

// Journal writes Manager events as CSV rows. Pass Journal.Record to
// WithObserver to capture every operation.
type Journal struct {
	w      *csv.Writer
	closer io.Closer // nil when the journal does not own its writer
	err    error     // first write error, reported by Close
}

// NewJournal writes the header to w and returns a journal on top of it.
func NewJournal(w io.Writer) (*Journal, error) {
	j := &Journal{w: csv.NewWriter(w)}
	if err := j.write(journalHeader); err != nil {
		return nil, errors.Wrap(err, "write journal header")
	}
	return j, nil
}

// OpenJournal creates (or truncates) the file at path and journals into it.
func OpenJournal(path string) (*Journal, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "create journal %s", path)
	}
	j, err := NewJournal(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	j.closer = f
	return j, nil
}

// Record appends one row for ev. Write errors are kept and returned by Close
// so the Manager's operations never fail because of the journal.
func (j *Journal) Record(ev Event) {
	if j.err != nil {
		return
	}

	var msg string
	if ev.Err != nil {
		msg = ev.Err.Error()
	}
	rec := []string{
		ev.Time.Format(time.RFC3339Nano),
		ev.Kind.String(),
		ev.TaskID,
		strconv.Itoa(ev.Priority),
		fmt.Sprintf("%.4f", ev.Arrival),
		msg,
	}
	j.err = j.write(rec)
}

func (j *Journal) write(rec []string) error {
	if err := j.w.Write(rec); err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

// Close flushes pending rows and closes the underlying file if the journal
// opened it.
func (j *Journal) Close() error {
	j.w.Flush()
	err := j.err
	if err == nil {
		err = j.w.Error()
	}
	if j.closer != nil {
		if cerr := j.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
