// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package rpc

import (
	"skystore.io/skystore/pkg/resource"
)

// Id addresses a simple resource.
type Id struct {
	Id string `json:"id"`
}

// Ids addresses a linked resource by its composite key.
type Ids struct {
	Ids []resource.IDField `json:"ids"`
}

// Empty is the bodyless response.
type Empty struct{}

// ReadyRequest asks whether the service can reach its backing store.
type ReadyRequest struct{}

// ReadyResponse answers a ReadyRequest.
type ReadyResponse struct {
	Ready bool `json:"ready"`
}

// Object pairs a simple resource's key with its payload.
type Object[D any] struct {
	Id   string `json:"id"`
	Data *D     `json:"data"`
}

// IdsObject pairs a linked resource's composite key with its payload.
type IdsObject[D any] struct {
	Ids  []resource.IDField `json:"ids"`
	Data *D                 `json:"data"`
}

// Response carries a mutation result: either the stored object or the field
// errors that kept it from validating. A validation failure is a successful
// call at the transport level.
type Response[D any] struct {
	ValidationResult resource.ValidationResult `json:"validation_result"`
	Object           *Object[D]                `json:"object,omitempty"`
}

// IdsResponse is Response for linked resources.
type IdsResponse[D any] struct {
	ValidationResult resource.ValidationResult `json:"validation_result"`
	Object           *IdsObject[D]             `json:"object,omitempty"`
}

// List is a page of search hits.
type List[D any] struct {
	List []Object[D] `json:"list"`
}

// IdsList is a page of linked-resource search hits.
type IdsList[D any] struct {
	List []IdsObject[D] `json:"list"`
}

// UpdateObject names the row to update, the replacement payload, and the
// optional column mask.
type UpdateObject[D any] struct {
	Id   string   `json:"id"`
	Data *D       `json:"data"`
	Mask []string `json:"update_mask,omitempty"`
}

// UpdateIdsObject is UpdateObject for linked resources.
type UpdateIdsObject[D any] struct {
	Ids  []resource.IDField `json:"ids"`
	Data *D                 `json:"data"`
	Mask []string           `json:"update_mask,omitempty"`
}

// LinkRequest names one A-side row and the B-side ids to link.
type LinkRequest struct {
	Id          string   `json:"id"`
	OtherIdList []string `json:"other_id_list"`
}

// IdList is a bare list of ids.
type IdList struct {
	Ids []string `json:"ids"`
}
