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

package command

import (
	"errors"
	"fmt"

	"github.com/imroc/req"

	"jinr.ru/greenlab/go-imu/pkg/command/ifc"
	"jinr.ru/greenlab/go-imu/pkg/config"
	"jinr.ru/greenlab/go-imu/pkg/srv"
)

type ApiClient struct {
	*config.Config
	ApiPrefix string
}

var _ ifc.ApiClient = &ApiClient{}

func NewApiClient(cfg *config.Config) ifc.ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: fmt.Sprintf("http://%s:%d/api", cfg.IP, srv.ApiPort),
	}
}

// Check sends a capture file path to the server for scanning
func (c *ApiClient) Check(path string, frameSize int) (*srv.Record, error) {
	request := &srv.CheckRequest{
		Path:      path,
		FrameSize: frameSize,
	}
	r, err := req.Post(fmt.Sprintf("%s/check", c.ApiPrefix), req.BodyJSON(request))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	record := &srv.Record{}
	if err = r.ToJSON(record); err != nil {
		return nil, err
	}
	return record, nil
}

// History fetches all persisted verification runs from the server
func (c *ApiClient) History() ([]*srv.Record, error) {
	r, err := req.Get(fmt.Sprintf("%s/checks", c.ApiPrefix))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	var records []*srv.Record
	if err = r.ToJSON(&records); err != nil {
		return nil, err
	}
	return records, nil
}
