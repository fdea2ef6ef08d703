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

package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nestybox/peacemaker/domain"
)

func TestNoProtectionByDefault(t *testing.T) {
	g := New()
	assert.Zero(t, g.Protected())
	assert.Equal(t, domain.AccessTerminate, g.StripTerminateAccess(1, 2, domain.AccessTerminate))
}

func TestStripsTerminateAccessFromOtherCaller(t *testing.T) {
	g := New()
	g.Update(100)
	assert.Equal(t, uint32(100), g.Protected())

	got := g.StripTerminateAccess(100, 200, domain.AccessTerminate)
	assert.Zero(t, got&domain.AccessTerminate)
}

func TestSelfHandleIsNotStripped(t *testing.T) {
	g := New()
	g.Update(100)

	got := g.StripTerminateAccess(100, 100, domain.AccessTerminate)
	assert.Equal(t, domain.AccessTerminate, got)
}

func TestUnrelatedAccessBitsPassThrough(t *testing.T) {
	g := New()
	g.Update(100)

	const otherBit domain.AccessMask = 0x0002
	got := g.StripTerminateAccess(100, 200, otherBit)
	assert.Equal(t, otherBit, got)
}

func TestNonProtectedTargetPassesThrough(t *testing.T) {
	g := New()
	g.Update(100)

	got := g.StripTerminateAccess(999, 200, domain.AccessTerminate)
	assert.Equal(t, domain.AccessTerminate, got)
}
