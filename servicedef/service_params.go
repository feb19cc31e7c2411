package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

const (
	CommandLoad = "load"
	CommandSave = "save"
)

// Error kinds that a test service may report from a load or save command.
const (
	ErrorKindUnimplemented = "unimplemented"
	ErrorKindInvalidFormat = "invalid_format"
	ErrorKindFailed        = "failed"
)

// StatusRep is the response body of the test service's status resource.
// Capabilities lists the abstraction families the service can represent plus
// any optional operations it supports.
type StatusRep struct {
	Description  string   `json:"description,omitempty"`
	Capabilities []string `json:"capabilities"`
}

// CreateEntityParams is the body of the POST request that creates a
// representation entity for one abstraction family.
type CreateEntityParams struct {
	Tag              string              `json:"tag"`
	Family           string              `json:"family"`
	CommandTimeoutMS ldvalue.OptionalInt `json:"commandTimeoutMs,omitempty"`
}

type CommandParams struct {
	Command string      `json:"command"`
	Load    *LoadParams `json:"load,omitempty"`
	Save    *SaveParams `json:"save,omitempty"`
}

type LoadParams struct {
	Data ldvalue.Value `json:"data"`
}

type SaveParams struct {
	Ref string `json:"ref"`
}

// ObjectRep identifies an object held inside the test service. Ref is opaque to
// the harness; Type is informational only.
type ObjectRep struct {
	Ref  string `json:"ref"`
	Type string `json:"type,omitempty"`
}

type ErrorRep struct {
	Kind    string `json:"kind"`
	Message string `json:"message,omitempty"`
}

// LoadResponse carries either the handle of the object the service built or an
// error, never both.
type LoadResponse struct {
	Object *ObjectRep `json:"object,omitempty"`
	Error  *ErrorRep  `json:"error,omitempty"`
}

// SaveResponse carries either the concrete representation data of an object or
// an error.
type SaveResponse struct {
	Data  ldvalue.Value `json:"data,omitempty"`
	Error *ErrorRep     `json:"error,omitempty"`
}
