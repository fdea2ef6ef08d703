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

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/nestybox/peacemaker/domain"
	"github.com/nestybox/peacemaker/mocks"
)

func TestOnThreadCreateSkipsFirstThread(t *testing.T) {
	detect := new(mocks.DetectionLogicIface)

	th := NewThread(Deps{Detect: detect})
	th.OnThreadCreate(context.Background(), true, 1, 2, 0x1000, "a", "b")

	detect.AssertNotCalled(t, "AuditPointerResolved", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	detect.AssertNotCalled(t, "AuditCaller", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOnThreadCreateAuditsStartAddressAndCaller(t *testing.T) {
	detect := new(mocks.DetectionLogicIface)
	walker := new(mocks.StackWalkerIface)

	resolved := domain.StackFrame{RawAddress: 0x1000, Executable: true}
	walker.On("Resolve", uint64(0x1000)).Return(resolved)
	walker.On("Walk", mock.Anything, 30).Return([]domain.StackFrame{}, nil)

	detect.On("AuditPointerResolved", domain.SourceThreadCreate, uint32(1), "a", "b", resolved).Return(true)
	detect.On("AuditStack", domain.SourceThreadCreate, uint32(1), "a", "b", []domain.StackFrame{}).Return(false)
	detect.On("AuditCaller", domain.SourceThreadCreate, uint32(1), uint32(2), "a", "b").Return(true)

	th := NewThread(Deps{Detect: detect, Walker: walker})
	th.OnThreadCreate(context.Background(), false, 1, 2, 0x1000, "a", "b")

	detect.AssertExpectations(t)
	walker.AssertExpectations(t)
}
