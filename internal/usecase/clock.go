package usecase

import "time"

// Clock はテストで時刻を固定するための最小インターフェース。
type Clock interface {
	Now() time.Time
}

// RealClock は実時刻。
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}
