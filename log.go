// Copyright 2023 Skiff Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package skiff

import (
	vtlog "github.com/dolthub/vitess/go/vt/log"
	"github.com/sirupsen/logrus"
)

// The parser library logs through the function variables of vt/log. Route
// them all into logrus so its output obeys the process-wide logrus level.
func init() {
	// logrus handles its own flushing.
	vtlog.Flush = func() {}

	vtlog.Info = logrus.Info
	vtlog.Infof = logrus.Infof

	vtlog.Warning = logrus.Warning
	vtlog.Warningf = logrus.Warningf

	vtlog.Error = logrus.Error
	vtlog.Errorf = logrus.Errorf

	vtlog.Fatal = logrus.Fatal
	vtlog.Fatalf = logrus.Fatalf
}
