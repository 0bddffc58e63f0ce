package logger

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"
)

// AggregatedLogEntry is one deduplicated error log with occurrence counts.
type AggregatedLogEntry struct {
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields"`
	Caller    string                 `json:"caller"`
	Count     int                    `json:"count"`
	FirstSeen time.Time              `json:"first_seen"`
	LastSeen  time.Time              `json:"last_seen"`
}

// ErrorCollector keeps recent error logs in memory, deduplicated by
// (level, message, fields, caller), so the dashboard can surface the
// single user-visible message for a failed pipeline run.
type ErrorCollector struct {
	capacity int
	mutex    sync.RWMutex
	logMap   map[string]*AggregatedLogEntry
}

// NewErrorCollector creates a collector holding at most capacity unique entries.
func NewErrorCollector(capacity int) *ErrorCollector {
	if capacity <= 0 {
		capacity = 100
	}
	return &ErrorCollector{
		capacity: capacity,
		logMap:   make(map[string]*AggregatedLogEntry),
	}
}

// AddLog records one occurrence of an error log.
func (d *ErrorCollector) AddLog(level, message string, fields map[string]interface{}, caller string) {
	now := time.Now()
	key := d.generateKey(level, message, fields, caller)

	d.mutex.Lock()
	defer d.mutex.Unlock()

	if entry, exists := d.logMap[key]; exists {
		entry.Count++
		entry.LastSeen = now
		return
	}

	if len(d.logMap) >= d.capacity {
		d.evictOldest()
	}

	d.logMap[key] = &AggregatedLogEntry{
		Level:     level,
		Message:   message,
		Fields:    fields,
		Caller:    caller,
		Count:     1,
		FirstSeen: now,
		LastSeen:  now,
	}
}

// Recent returns entries ordered most-recent first.
func (d *ErrorCollector) Recent() []AggregatedLogEntry {
	d.mutex.RLock()
	out := make([]AggregatedLogEntry, 0, len(d.logMap))
	for _, e := range d.logMap {
		out = append(out, *e)
	}
	d.mutex.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].LastSeen.After(out[j].LastSeen)
	})
	return out
}

// Reset drops all collected entries.
func (d *ErrorCollector) Reset() {
	d.mutex.Lock()
	d.logMap = make(map[string]*AggregatedLogEntry)
	d.mutex.Unlock()
}

func (d *ErrorCollector) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for key, e := range d.logMap {
		if oldestKey == "" || e.LastSeen.Before(oldest) {
			oldestKey = key
			oldest = e.LastSeen
		}
	}
	if oldestKey != "" {
		delete(d.logMap, oldestKey)
	}
}

func (d *ErrorCollector) generateKey(level, message string, fields map[string]interface{}, caller string) string {
	b, _ := json.Marshal(fields)
	sum := sha256.Sum256([]byte(level + "|" + message + "|" + string(b) + "|" + caller))
	return fmt.Sprintf("%x", sum[:8])
}
