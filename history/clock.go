package history

import "time"

// epochNow is a var, not a call to time.Now().Unix() inlined everywhere, so
// tests can override it to pin timestamps when exercising lifetime-key
// stability (spec §8 property 4).
var epochNow = func() int64 {
	return time.Now().Unix()
}
