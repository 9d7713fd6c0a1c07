package autosave

import "time"

type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. The debounce window and the save notice
// expiry are both driven through it.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func NewRealScheduler() Scheduler {
	return realScheduler{}
}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
