// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package rpc

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"skystore.io/skystore/pkg/resource"
)

// LinkedService serves one composite-key resource.
type LinkedService[D any, P resource.Ptr[D]] struct {
	log    *zap.Logger
	entity string
	engine *resource.Linked[D, P]
}

// NewLinkedService wraps a linked engine for the wire.
func NewLinkedService[D any, P resource.Ptr[D]](log *zap.Logger, entity string, engine *resource.Linked[D, P]) *LinkedService[D, P] {
	return &LinkedService[D, P]{log: log, entity: entity, engine: engine}
}

// GetByIds fetches the object addressed by every key column.
func (s *LinkedService[D, P]) GetByIds(ctx context.Context, req *Ids) (_ *IdsObject[D], err error) {
	defer mon.Task()(&ctx)(&err)

	obj, err := s.engine.GetByIDs(ctx, req.Ids)
	if err != nil {
		return nil, statusError(s.log, s.entity, err)
	}
	return &IdsObject[D]{Ids: req.Ids, Data: obj}, nil
}

// Insert stores a new row; the key columns travel inside the payload.
func (s *LinkedService[D, P]) Insert(ctx context.Context, data *D) (_ *IdsResponse[D], err error) {
	defer mon.Task()(&ctx)(&err)

	obj, result, err := s.engine.Insert(ctx, data)
	if err != nil {
		return nil, statusError(s.log, s.entity, err)
	}
	if !result.Success {
		return &IdsResponse[D]{ValidationResult: result}, nil
	}

	keys := s.engine.Definition().Keys
	ids := make([]resource.IDField, 0, len(keys))
	for _, key := range keys {
		v, err := P(obj).FieldValue(key)
		if err != nil {
			return nil, statusError(s.log, s.entity, err)
		}
		ids = append(ids, resource.IDField{Field: key, Value: v.AsString()})
	}
	return &IdsResponse[D]{
		ValidationResult: result,
		Object:           &IdsObject[D]{Ids: ids, Data: obj},
	}, nil
}

// Update replaces the named row's non-key columns.
func (s *LinkedService[D, P]) Update(ctx context.Context, req *UpdateIdsObject[D]) (_ *IdsResponse[D], err error) {
	defer mon.Task()(&ctx)(&err)

	obj, result, err := s.engine.Update(ctx, req.Ids, req.Data, req.Mask)
	if err != nil {
		return nil, statusError(s.log, s.entity, err)
	}
	if !result.Success {
		return &IdsResponse[D]{ValidationResult: result}, nil
	}
	return &IdsResponse[D]{
		ValidationResult: result,
		Object:           &IdsObject[D]{Ids: req.Ids, Data: obj},
	}, nil
}

// Delete removes (or archives) the named row.
func (s *LinkedService[D, P]) Delete(ctx context.Context, req *Ids) (_ *Empty, err error) {
	defer mon.Task()(&ctx)(&err)

	if err := s.engine.Delete(ctx, req.Ids); err != nil {
		return nil, statusError(s.log, s.entity, err)
	}
	return &Empty{}, nil
}

// Search runs an advanced filter.
func (s *LinkedService[D, P]) Search(ctx context.Context, filter *resource.SearchFilter) (_ *IdsList[D], err error) {
	defer mon.Task()(&ctx)(&err)

	rows, err := s.engine.Search(ctx, filter)
	if err != nil {
		return nil, statusError(s.log, s.entity, err)
	}
	out := make([]IdsObject[D], 0, len(rows))
	for _, row := range rows {
		out = append(out, IdsObject[D]{Ids: row.IDs, Data: row.Object})
	}
	return &IdsList[D]{List: out}, nil
}

// IsReady reports backing-store health.
func (s *LinkedService[D, P]) IsReady(ctx context.Context, _ *ReadyRequest) (_ *ReadyResponse, err error) {
	defer mon.Task()(&ctx)(&err)
	return &ReadyResponse{Ready: s.engine.IsReady(ctx)}, nil
}

// Register binds the service onto the grpc server.
func (s *LinkedService[D, P]) Register(srv *grpc.Server) {
	desc := serviceDesc(s.entity, []grpc.MethodDesc{
		unaryMethod("GetByIds", func(ctx context.Context, req *Ids) (any, error) {
			return s.GetByIds(ctx, req)
		}),
		unaryMethod("Insert", func(ctx context.Context, req *D) (any, error) {
			return s.Insert(ctx, req)
		}),
		unaryMethod("Update", func(ctx context.Context, req *UpdateIdsObject[D]) (any, error) {
			return s.Update(ctx, req)
		}),
		unaryMethod("Delete", func(ctx context.Context, req *Ids) (any, error) {
			return s.Delete(ctx, req)
		}),
		unaryMethod("Search", func(ctx context.Context, req *resource.SearchFilter) (any, error) {
			return s.Search(ctx, req)
		}),
		unaryMethod("IsReady", func(ctx context.Context, req *ReadyRequest) (any, error) {
			return s.IsReady(ctx, req)
		}),
	})
	srv.RegisterService(desc, s)
}
