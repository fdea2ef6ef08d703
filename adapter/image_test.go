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

	"github.com/nestybox/peacemaker/mocks"
)

func TestOnImageLoadWithoutWalkerStillRecordsHistory(t *testing.T) {
	history := new(mocks.HistoryServiceIface)
	history.On("OnImageLoad", uint32(4), "/lib/a.so", mock.Anything).Return(nil)

	im := NewImage(Deps{History: history})
	im.OnImageLoad(context.Background(), 4, "/lib/a.so")

	history.AssertExpectations(t)
}

func TestOnImageLoadWithWalkerCapturesStack(t *testing.T) {
	history := new(mocks.HistoryServiceIface)
	walker := new(mocks.StackWalkerIface)

	walker.On("Walk", mock.Anything, 30).Return(nil, nil)
	history.On("OnImageLoad", uint32(4), "/lib/a.so", mock.Anything).Return(nil)

	im := NewImage(Deps{History: history, Walker: walker})
	im.OnImageLoad(context.Background(), 4, "/lib/a.so")

	walker.AssertExpectations(t)
	history.AssertExpectations(t)
}
