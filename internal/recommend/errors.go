package recommend

import "errors"

// ErrBusy means the caller already has a request in flight. The pending
// request keeps running; this one is rejected without side effects.
var ErrBusy = errors.New("a recommendation request is already in progress")
