package services

import (
	"strconv"
	"time"
)

// newRecordID issues an epoch-millisecond id, bumped past any id already
// taken so two records created in the same millisecond stay distinct.
// The string shape matches ids in already-persisted collections.
func newRecordID(taken map[string]bool) string {
	candidate := time.Now().UnixMilli()
	for {
		id := strconv.FormatInt(candidate, 10)
		if !taken[id] {
			return id
		}
		candidate++
	}
}
