package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/act4e/data-contract-tests/framework"
	"github.com/act4e/data-contract-tests/reptests"
	"github.com/act4e/data-contract-tests/servicedef"
)

// TestServiceClient manages communication with a test service that hosts an
// implementation under test. It can query the service's status resource and
// create representation entities to send load/save commands to.
type TestServiceClient struct {
	baseURL        string
	logger         framework.Logger
	status         servicedef.StatusRep
	activeEntities map[string]*TestServiceEntity
	lastID         int
	lock           sync.Mutex
}

// NewTestServiceClient creates a TestServiceClient instance, and verifies that
// the test service is responding by querying its status resource. The query is
// retried until it succeeds or the timeout elapses, so the service can still be
// starting up when the harness runs.
func NewTestServiceClient(
	baseURL string,
	timeout time.Duration,
	logger framework.Logger,
) (*TestServiceClient, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	c := &TestServiceClient{
		baseURL:        baseURL,
		logger:         logger,
		activeEntities: make(map[string]*TestServiceEntity),
	}
	deadline := time.Now().Add(timeout)
WaitLoop:
	for {
		logger.Printf("Making request to %s", baseURL)
		resp, err := http.DefaultClient.Get(baseURL)
		if err == nil && resp.StatusCode == 200 {
			logger.Printf("Got 200 status from %s", baseURL)
			respData, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return nil, err
			}
			logger.Printf("Metadata: %s", string(respData))
			if err := json.Unmarshal(respData, &c.status); err != nil {
				return nil, fmt.Errorf("malformed status response from test service: %s", string(respData))
			}
			break WaitLoop
		}
		if err == nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		if !time.Now().Before(deadline) {
			if err == nil {
				err = fmt.Errorf("status code %d", resp.StatusCode)
			}
			return nil, fmt.Errorf("result of last query was: %s", err)
		}
		time.Sleep(time.Millisecond * 20)
	}

	return c, nil
}

// Status returns the metadata the test service provided in its status resource.
func (c *TestServiceClient) Status() servicedef.StatusRep {
	ret := c.status
	ret.Capabilities = append([]string(nil), c.status.Capabilities...)
	return ret
}

// Capabilities returns the list of capabilities, if any, provided by the test
// service's status resource.
func (c *TestServiceClient) Capabilities() []string {
	return append([]string(nil), c.status.Capabilities...)
}

func (c *TestServiceClient) HasCapability(desired string) bool {
	for _, capability := range c.status.Capabilities {
		if capability == desired {
			return true
		}
	}
	return false
}

func (c *TestServiceClient) MissingCapabilities() []string {
	var ret []string
	for _, capability := range reptests.AllCapabilities {
		if !c.HasCapability(capability) {
			ret = append(ret, capability)
		}
	}
	return ret
}

// CreateEntity tells the test service to create a new representation instance
// for one abstraction family, returning a TestServiceEntity to use for
// communicating about that instance.
func (c *TestServiceClient) CreateEntity(
	params servicedef.CreateEntityParams,
	logger framework.Logger,
) (*TestServiceEntity, error) {
	if logger == nil {
		logger = c.logger
	}

	c.lock.Lock()
	c.lastID++
	entityID := fmt.Sprintf("%d", c.lastID)
	entity := newTestServiceEntity(c, entityID, logger)
	c.activeEntities[entityID] = entity
	c.lock.Unlock()

	success := false
	defer func() {
		if !success {
			_ = entity.Close()
		}
	}()

	data, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	logger.Printf("Creating %s representation entity", params.Family)
	req, err := http.NewRequest("POST", c.baseURL, bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	req.Header.Add("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 && resp.StatusCode != 201 {
		var message string
		if resp.Body != nil {
			data, _ = io.ReadAll(resp.Body)
			message = ": " + string(data)
			resp.Body.Close()
		}
		return nil, fmt.Errorf("unexpected response status %d from test service%s", resp.StatusCode, message)
	}
	if resp.Body != nil {
		_ = resp.Body.Close()
	}
	resourceURL := resp.Header.Get("Location")
	if resourceURL == "" {
		return nil, errors.New("test service did not return a Location header with a resource URL")
	}
	if !strings.HasPrefix(resourceURL, "http:") && !strings.HasPrefix(resourceURL, "https:") {
		resourceURL = c.baseURL + resourceURL
	}
	entity.setResourceURL(resourceURL)

	success = true
	logger.Printf("Entity created")
	return entity, nil
}

// StopService tells the test service that the whole test run is finished and it
// should exit, if it supports being stopped this way.
func (c *TestServiceClient) StopService() error {
	req, err := http.NewRequest("DELETE", c.baseURL, nil)
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
	if resp.StatusCode >= 300 {
		return fmt.Errorf("service returned HTTP status %d", resp.StatusCode)
	}
	return nil
}

// CloseAll disposes of every entity that is still active.
func (c *TestServiceClient) CloseAll() {
	c.lock.Lock()
	entities := make([]*TestServiceEntity, 0, len(c.activeEntities))
	for _, e := range c.activeEntities {
		entities = append(entities, e)
	}
	c.lock.Unlock()

	for _, e := range entities {
		_ = e.Close()
	}
}

func (c *TestServiceClient) forgetEntity(id string) {
	c.lock.Lock()
	delete(c.activeEntities, id)
	c.lock.Unlock()
}
