/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package ifc

import (
	"jinr.ru/greenlab/go-imu/pkg/srv"
)

// ApiClient talks to a running verification API server
type ApiClient interface {
	// Check asks the server to scan a capture file. frameSize 0 means
	// the server's configured default.
	Check(path string, frameSize int) (*srv.Record, error)
	// History fetches all persisted verification runs
	History() ([]*srv.Record, error)
}
