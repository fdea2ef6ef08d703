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

	"github.com/sirupsen/logrus"

	"github.com/nestybox/peacemaker/domain"
)

// Image is the image-load Event Adapter (spec §4.F, driven by §4.E).
type Image struct {
	Deps
}

// NewImage returns an Image adapter backed by deps.
func NewImage(deps Deps) *Image {
	return &Image{Deps: deps}
}

// OnImageLoad records the loaded image against pid's history record.
func (im *Image) OnImageLoad(ctx context.Context, pid uint32, imagePath string) {
	var frames []domain.StackFrame
	if im.Walker != nil {
		var err error
		frames, err = im.Walker.Walk(ctx, im.maxFrames())
		if err != nil {
			logrus.Warnf("adapter: stack walk failed for image load pid=%d: %v", pid, err)
		}
	}

	if err := im.History.OnImageLoad(pid, imagePath, frames); err != nil {
		logrus.Errorf("adapter: failed to record image load pid=%d image=%s: %v", pid, imagePath, err)
	}
}
