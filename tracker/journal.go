package tracker

import (
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type Severity int

const (
	Information Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "ERROR"
	}
	return "INFORMATION"
}

const entryTimeLayout = "2006-01-02 15:04:05"

type Entry struct {
	Time     time.Time
	Severity Severity
	Message  string
}

func (e Entry) String() string {
	return fmt.Sprintf("%s : %s -> %s", e.Time.Format(entryTimeLayout), e.Severity, e.Message)
}

// Journal is a logrus hook keeping every info and error line for the life of
// the process. An error attached with WithError is appended to the message.
type Journal struct {
	mu      sync.Mutex
	entries []Entry
}

func NewJournal() *Journal {
	return &Journal{}
}

func (j *Journal) Levels() []log.Level {
	return []log.Level{log.PanicLevel, log.FatalLevel, log.ErrorLevel, log.InfoLevel}
}

func (j *Journal) Fire(e *log.Entry) error {
	sev := Error
	if e.Level == log.InfoLevel {
		sev = Information
	}
	msg := e.Message
	if err, ok := e.Data[log.ErrorKey]; ok && err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}

	j.mu.Lock()
	j.entries = append(j.entries, Entry{Time: e.Time, Severity: sev, Message: msg})
	j.mu.Unlock()
	return nil
}

// Entries returns a copy of everything recorded so far
func (j *Journal) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}
