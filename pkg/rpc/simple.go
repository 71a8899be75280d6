// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package rpc

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"skystore.io/skystore/pkg/resource"
)

// SimpleService serves one simple resource.
type SimpleService[D any, P resource.Ptr[D]] struct {
	log    *zap.Logger
	entity string
	engine *resource.Simple[D, P]
}

// NewSimpleService wraps a simple engine for the wire.
func NewSimpleService[D any, P resource.Ptr[D]](log *zap.Logger, entity string, engine *resource.Simple[D, P]) *SimpleService[D, P] {
	return &SimpleService[D, P]{log: log, entity: entity, engine: engine}
}

func (s *SimpleService[D, P]) parseId(req *Id) (uuid.UUID, error) {
	id, err := uuid.Parse(req.Id)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "bad %s id", s.entity)
	}
	return id, nil
}

// GetById fetches one object.
func (s *SimpleService[D, P]) GetById(ctx context.Context, req *Id) (_ *Object[D], err error) {
	defer mon.Task()(&ctx)(&err)

	id, err := s.parseId(req)
	if err != nil {
		return nil, err
	}
	obj, err := s.engine.GetByID(ctx, id)
	if err != nil {
		return nil, statusError(s.log, s.entity, err)
	}
	return &Object[D]{Id: req.Id, Data: obj}, nil
}

// Insert stores a new object under a server-generated id.
func (s *SimpleService[D, P]) Insert(ctx context.Context, data *D) (_ *Response[D], err error) {
	defer mon.Task()(&ctx)(&err)

	id, obj, result, err := s.engine.Insert(ctx, data)
	if err != nil {
		return nil, statusError(s.log, s.entity, err)
	}
	if !result.Success {
		return &Response[D]{ValidationResult: result}, nil
	}
	return &Response[D]{
		ValidationResult: result,
		Object:           &Object[D]{Id: id.String(), Data: obj},
	}, nil
}

// Update replaces the named object, restricted to the mask when present.
func (s *SimpleService[D, P]) Update(ctx context.Context, req *UpdateObject[D]) (_ *Response[D], err error) {
	defer mon.Task()(&ctx)(&err)

	id, err := s.parseId(&Id{Id: req.Id})
	if err != nil {
		return nil, err
	}
	obj, result, err := s.engine.Update(ctx, id, req.Data, req.Mask)
	if err != nil {
		return nil, statusError(s.log, s.entity, err)
	}
	if !result.Success {
		return &Response[D]{ValidationResult: result}, nil
	}
	return &Response[D]{
		ValidationResult: result,
		Object:           &Object[D]{Id: req.Id, Data: obj},
	}, nil
}

// Delete archives or removes the named object.
func (s *SimpleService[D, P]) Delete(ctx context.Context, req *Id) (_ *Empty, err error) {
	defer mon.Task()(&ctx)(&err)

	id, err := s.parseId(req)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Delete(ctx, id); err != nil {
		return nil, statusError(s.log, s.entity, err)
	}
	return &Empty{}, nil
}

// Search runs an advanced filter.
func (s *SimpleService[D, P]) Search(ctx context.Context, filter *resource.SearchFilter) (_ *List[D], err error) {
	defer mon.Task()(&ctx)(&err)

	rows, err := s.engine.Search(ctx, filter)
	if err != nil {
		return nil, statusError(s.log, s.entity, err)
	}
	out := make([]Object[D], 0, len(rows))
	for _, row := range rows {
		out = append(out, Object[D]{Id: row.ID.String(), Data: row.Object})
	}
	return &List[D]{List: out}, nil
}

// IsReady reports backing-store health.
func (s *SimpleService[D, P]) IsReady(ctx context.Context, _ *ReadyRequest) (_ *ReadyResponse, err error) {
	defer mon.Task()(&ctx)(&err)
	return &ReadyResponse{Ready: s.engine.IsReady(ctx)}, nil
}

// Register binds the service onto the grpc server.
func (s *SimpleService[D, P]) Register(srv *grpc.Server) {
	desc := serviceDesc(s.entity, []grpc.MethodDesc{
		unaryMethod("GetById", func(ctx context.Context, req *Id) (any, error) {
			return s.GetById(ctx, req)
		}),
		unaryMethod("Insert", func(ctx context.Context, req *D) (any, error) {
			return s.Insert(ctx, req)
		}),
		unaryMethod("Update", func(ctx context.Context, req *UpdateObject[D]) (any, error) {
			return s.Update(ctx, req)
		}),
		unaryMethod("Delete", func(ctx context.Context, req *Id) (any, error) {
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
