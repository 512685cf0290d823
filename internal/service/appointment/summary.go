package appointment

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Summary is the per-status count record for one day, always carrying
// exactly the six known statuses, zero-filled.
type Summary struct {
	Waiting    int `json:"waiting"`
	Confirmed  int `json:"confirmed"`
	CheckedIn  int `json:"checked_in"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
}

// UnmarshalJSON accepts both wire shapes the backend is known to emit:
// a list of {status, count} rows or a status→count map. Unknown status
// keys are dropped; missing ones stay zero. Counts may arrive as
// numbers or numeric strings.
func (s *Summary) UnmarshalJSON(data []byte) error {
	*s = Summary{}

	var asMap map[string]flexCount
	if err := json.Unmarshal(data, &asMap); err == nil {
		for k, v := range asMap {
			s.set(Status(k), int(v))
		}
		return nil
	}

	var asRows []struct {
		Status string    `json:"status"`
		Count  flexCount `json:"count"`
	}
	if err := json.Unmarshal(data, &asRows); err != nil {
		return err
	}
	for _, row := range asRows {
		s.set(Status(row.Status), int(row.Count))
	}
	return nil
}

func (s *Summary) set(st Status, n int) {
	switch st {
	case StatusWaiting:
		s.Waiting = n
	case StatusConfirmed:
		s.Confirmed = n
	case StatusCheckedIn:
		s.CheckedIn = n
	case StatusInProgress:
		s.InProgress = n
	case StatusCompleted:
		s.Completed = n
	case StatusCancelled:
		s.Cancelled = n
	}
}

// Get returns the count for a known status, 0 otherwise.
func (s Summary) Get(st Status) int {
	switch st {
	case StatusWaiting:
		return s.Waiting
	case StatusConfirmed:
		return s.Confirmed
	case StatusCheckedIn:
		return s.CheckedIn
	case StatusInProgress:
		return s.InProgress
	case StatusCompleted:
		return s.Completed
	case StatusCancelled:
		return s.Cancelled
	default:
		return 0
	}
}

func (s Summary) Total() int {
	return s.Waiting + s.Confirmed + s.CheckedIn + s.InProgress + s.Completed + s.Cancelled
}

// flexCount tolerates counts serialized as numbers or numeric strings,
// which differs between backend deployments.
type flexCount int

func (f *flexCount) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	n, err := strconv.Atoi(string(data))
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexCount(n)
	return nil
}
