// Package clock provides the wall clock used outside tests.
package clock

import "time"

// System implements ports.Clock with time.Now.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}
