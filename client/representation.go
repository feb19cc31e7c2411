package client

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/act4e/data-contract-tests/contract"
	"github.com/act4e/data-contract-tests/corpus"
	"github.com/act4e/data-contract-tests/reptests"
	"github.com/act4e/data-contract-tests/servicedef"
)

// RemoteObject is an opaque handle to an object that lives inside the test
// service. The harness never interprets Ref; it only hands it back to the same
// entity in save commands.
type RemoteObject struct {
	entity *TestServiceEntity
	Ref    string
	Type   string
}

func (o *RemoteObject) String() string {
	if o.Type != "" {
		return fmt.Sprintf("remote %s (ref %s)", o.Type, o.Ref)
	}
	return fmt.Sprintf("remote object (ref %s)", o.Ref)
}

// RepresentationFor adapts an existing entity into a representation that the
// conformance checks can drive directly.
func RepresentationFor(entity *TestServiceEntity) contract.Representation {
	return remoteRepresentation{entity: entity}
}

type remoteRepresentation struct {
	entity *TestServiceEntity
}

func (r remoteRepresentation) Load(h contract.IOHelper, data interface{}) (interface{}, error) {
	ob, err := r.entity.Load(data)
	if err != nil {
		return nil, err
	}
	return ob, nil
}

func (r remoteRepresentation) Save(h contract.IOHelper, ob interface{}) (interface{}, error) {
	remote, ok := ob.(*RemoteObject)
	if !ok {
		return nil, fmt.Errorf("expected a remote object handle, got %T", ob)
	}
	if remote.entity != r.entity {
		return nil, errors.New("remote object was created by a different entity")
	}
	return r.entity.Save(remote)
}

// serviceRepresentation drives one abstraction family through the test service,
// creating its entity the first time the family is exercised. A service that
// declares a family but cannot create the entity shows up as test failures, not
// as a harness error.
type serviceRepresentation struct {
	client *TestServiceClient
	family string
	once   sync.Once
	entity *TestServiceEntity
	err    error
}

func (r *serviceRepresentation) connect() (*TestServiceEntity, error) {
	r.once.Do(func() {
		r.entity, r.err = r.client.CreateEntity(servicedef.CreateEntityParams{
			Tag:    "representation/" + r.family,
			Family: r.family,
		}, nil)
	})
	if r.err != nil {
		return nil, fmt.Errorf("could not create %s entity in test service: %w", r.family, r.err)
	}
	return r.entity, nil
}

func (r *serviceRepresentation) Load(h contract.IOHelper, data interface{}) (interface{}, error) {
	entity, err := r.connect()
	if err != nil {
		return nil, err
	}
	ob, err := entity.Load(data)
	if err != nil {
		return nil, err
	}
	return ob, nil
}

func (r *serviceRepresentation) Save(h contract.IOHelper, ob interface{}) (interface{}, error) {
	entity, err := r.connect()
	if err != nil {
		return nil, err
	}
	remote, ok := ob.(*RemoteObject)
	if !ok {
		return nil, fmt.Errorf("expected a remote object handle, got %T", ob)
	}
	if remote.entity != entity {
		return nil, errors.New("remote object was created by a different entity")
	}
	return entity.Save(remote)
}

// errorFromRep turns a wire error into the signal error types that the
// conformance checks distinguish.
func errorFromRep(rep servicedef.ErrorRep) error {
	switch rep.Kind {
	case servicedef.ErrorKindUnimplemented:
		return contract.NotImplemented(rep.Message)
	case servicedef.ErrorKindInvalidFormat:
		return contract.InvalidFormat(rep.Message, nil)
	default:
		if rep.Message == "" {
			return errors.New("test service reported a failure with no message")
		}
		return errors.New(rep.Message)
	}
}

// NewCandidate assembles a test suite candidate from the capabilities the test
// service declared in its status resource. Loads through the service produce
// *RemoteObject handles, so every family's expected result type is overridden
// accordingly.
func NewCandidate(serviceClient *TestServiceClient) reptests.Candidate {
	name := serviceClient.Status().Description
	if name == "" {
		name = "test service"
	}
	candidate := reptests.Candidate{
		Name:            name,
		Capabilities:    serviceClient.Capabilities(),
		Representations: make(map[string]contract.Representation),
		ResultTypes:     make(map[string]reflect.Type),
	}
	for _, family := range corpus.AllowedTags {
		if serviceClient.HasCapability(family) {
			candidate.Representations[family] = &serviceRepresentation{client: serviceClient, family: family}
			candidate.ResultTypes[family] = reflect.TypeOf(&RemoteObject{})
		}
	}
	return candidate
}
