package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/act4e/data-contract-tests/framework"
	"github.com/act4e/data-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// TestServiceEntity represents an entity within the test service that was
// created by calling TestServiceClient.CreateEntity: one representation
// instance for one abstraction family. Commands sent to the entity are
// synchronous: the service answers each load or save request in the HTTP
// response body.
type TestServiceEntity struct {
	owner  *TestServiceClient
	id     string
	url    string
	logger framework.Logger
	lock   sync.Mutex
}

func newTestServiceEntity(owner *TestServiceClient, id string, logger framework.Logger) *TestServiceEntity {
	return &TestServiceEntity{
		owner:  owner,
		id:     id,
		logger: logger,
	}
}

func (e *TestServiceEntity) setResourceURL(url string) {
	e.lock.Lock()
	e.url = url
	e.lock.Unlock()
}

func (e *TestServiceEntity) getResourceURL() string {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.url
}

// Close tells the test service to dispose of this entity.
func (e *TestServiceEntity) Close() error {
	e.owner.forgetEntity(e.id)

	url := e.getResourceURL()
	if url == "" {
		return nil
	}

	req, err := http.NewRequest("DELETE", url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	if resp.Body != nil {
		_ = resp.Body.Close()
	}
	if resp.StatusCode != 200 && resp.StatusCode != 204 {
		return fmt.Errorf("DELETE request to test service returned HTTP status %d", resp.StatusCode)
	}

	return nil
}

// Load asks the entity to build an object from concrete representation data,
// returning a handle to the object it created. Errors reported by the service
// come back as the signal error types the conformance checks understand.
func (e *TestServiceEntity) Load(data interface{}) (*RemoteObject, error) {
	params := servicedef.CommandParams{
		Command: servicedef.CommandLoad,
		Load:    &servicedef.LoadParams{Data: ldvalue.CopyArbitraryValue(data)},
	}
	var resp servicedef.LoadResponse
	if err := e.sendCommand(params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, errorFromRep(*resp.Error)
	}
	if resp.Object == nil || resp.Object.Ref == "" {
		return nil, errors.New("load response from test service had neither an object nor an error")
	}
	return &RemoteObject{entity: e, Ref: resp.Object.Ref, Type: resp.Object.Type}, nil
}

// Save asks the entity for the concrete representation of an object it holds.
func (e *TestServiceEntity) Save(ob *RemoteObject) (interface{}, error) {
	params := servicedef.CommandParams{
		Command: servicedef.CommandSave,
		Save:    &servicedef.SaveParams{Ref: ob.Ref},
	}
	var resp servicedef.SaveResponse
	if err := e.sendCommand(params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, errorFromRep(*resp.Error)
	}
	return resp.Data.AsArbitraryValue(), nil
}

func (e *TestServiceEntity) sendCommand(params servicedef.CommandParams, responseOut interface{}) error {
	data, err := json.Marshal(params)
	if err != nil {
		return err
	}
	e.logger.Printf("Sending command: %s", string(data))
	resp, err := http.DefaultClient.Post(e.getResourceURL(), "application/json", bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var message string
		if body, _ := io.ReadAll(resp.Body); len(body) > 0 {
			message = ": " + string(body)
		}
		return fmt.Errorf("command returned HTTP status %d%s", resp.StatusCode, message)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	e.logger.Printf("Response: %s", string(body))
	if err := json.Unmarshal(body, responseOut); err != nil {
		return fmt.Errorf("malformed JSON response from test service: %s", string(body))
	}
	return nil
}
