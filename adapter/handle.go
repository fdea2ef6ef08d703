//
// Copyright 2019-2020 Nestybox, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package adapter

import "github.com/nestybox/peacemaker/domain"

// Handle is the handle-create/duplicate Event Adapter (spec §4.G). It is
// kept as its own component (guard.Guard) per the spec's component
// boundary, but exposed through the same adapter surface the other
// callbacks use so registration code can treat all OS callbacks
// uniformly.
type Handle struct {
	Guard domain.GuardServiceIface
}

// NewHandle returns a Handle adapter backed by guard.
func NewHandle(guard domain.GuardServiceIface) *Handle {
	return &Handle{Guard: guard}
}

// PreHandleOperation strips TERMINATE access from a create/duplicate
// handle request targeting objectPID when callerPID is a different
// process and objectPID is the protected process.
func (h *Handle) PreHandleOperation(objectPID, callerPID uint32, desired domain.AccessMask) domain.AccessMask {
	return h.Guard.StripTerminateAccess(objectPID, callerPID, desired)
}
