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

// LinkService serves one join table. B is the linked-to resource, resolved
// through its own engine for get_linked.
type LinkService[B any, PB resource.Ptr[B]] struct {
	log    *zap.Logger
	entity string
	table  *resource.LinkTable
	b      *resource.Simple[B, PB]
}

// NewLinkService wraps a link table for the wire.
func NewLinkService[B any, PB resource.Ptr[B]](log *zap.Logger, entity string, table *resource.LinkTable, b *resource.Simple[B, PB]) *LinkService[B, PB] {
	return &LinkService[B, PB]{log: log, entity: entity, table: table, b: b}
}

func (s *LinkService[B, PB]) parseIds(req *LinkRequest) (uuid.UUID, []uuid.UUID, error) {
	a, err := uuid.Parse(req.Id)
	if err != nil {
		return uuid.Nil, nil, status.Errorf(codes.InvalidArgument, "bad %s id", s.entity)
	}
	bs := make([]uuid.UUID, 0, len(req.OtherIdList))
	for _, raw := range req.OtherIdList {
		b, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, nil, status.Errorf(codes.InvalidArgument, "bad linked id %q", raw)
		}
		bs = append(bs, b)
	}
	return a, bs, nil
}

// Link adds links from the named row to each given id.
func (s *LinkService[B, PB]) Link(ctx context.Context, req *LinkRequest) (_ *Empty, err error) {
	defer mon.Task()(&ctx)(&err)

	a, bs, err := s.parseIds(req)
	if err != nil {
		return nil, err
	}
	if err := s.table.Link(ctx, a, bs); err != nil {
		return nil, statusError(s.log, s.entity, err)
	}
	return &Empty{}, nil
}

// ReplaceLinked swaps the named row's link set for exactly the given ids.
func (s *LinkService[B, PB]) ReplaceLinked(ctx context.Context, req *LinkRequest) (_ *Empty, err error) {
	defer mon.Task()(&ctx)(&err)

	a, bs, err := s.parseIds(req)
	if err != nil {
		return nil, err
	}
	if err := s.table.ReplaceLinked(ctx, a, bs); err != nil {
		return nil, statusError(s.log, s.entity, err)
	}
	return &Empty{}, nil
}

// Unlink removes every link from the named row.
func (s *LinkService[B, PB]) Unlink(ctx context.Context, req *Id) (_ *Empty, err error) {
	defer mon.Task()(&ctx)(&err)

	a, err := uuid.Parse(req.Id)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "bad %s id", s.entity)
	}
	if err := s.table.Unlink(ctx, a); err != nil {
		return nil, statusError(s.log, s.entity, err)
	}
	return &Empty{}, nil
}

// GetLinkedIds returns the linked ids.
func (s *LinkService[B, PB]) GetLinkedIds(ctx context.Context, req *Id) (_ *IdList, err error) {
	defer mon.Task()(&ctx)(&err)

	a, err := uuid.Parse(req.Id)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "bad %s id", s.entity)
	}
	ids, err := s.table.GetLinkedIDs(ctx, a)
	if err != nil {
		return nil, statusError(s.log, s.entity, err)
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return &IdList{Ids: out}, nil
}

// GetLinked resolves the linked ids into full objects, excluding archived
// rows on the B side.
func (s *LinkService[B, PB]) GetLinked(ctx context.Context, req *Id) (_ *List[B], err error) {
	defer mon.Task()(&ctx)(&err)

	a, err := uuid.Parse(req.Id)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "bad %s id", s.entity)
	}
	rows, err := resource.GetLinked(ctx, s.table, s.b, a)
	if err != nil {
		return nil, statusError(s.log, s.entity, err)
	}
	out := make([]Object[B], 0, len(rows))
	for _, row := range rows {
		out = append(out, Object[B]{Id: row.ID.String(), Data: row.Object})
	}
	return &List[B]{List: out}, nil
}

// IsReady reports backing-store health.
func (s *LinkService[B, PB]) IsReady(ctx context.Context, _ *ReadyRequest) (_ *ReadyResponse, err error) {
	defer mon.Task()(&ctx)(&err)
	return &ReadyResponse{Ready: s.table.IsReady(ctx)}, nil
}

// Register binds the service onto the grpc server.
func (s *LinkService[B, PB]) Register(srv *grpc.Server) {
	desc := serviceDesc(s.entity, []grpc.MethodDesc{
		unaryMethod("Link", func(ctx context.Context, req *LinkRequest) (any, error) {
			return s.Link(ctx, req)
		}),
		unaryMethod("ReplaceLinked", func(ctx context.Context, req *LinkRequest) (any, error) {
			return s.ReplaceLinked(ctx, req)
		}),
		unaryMethod("Unlink", func(ctx context.Context, req *Id) (any, error) {
			return s.Unlink(ctx, req)
		}),
		unaryMethod("GetLinkedIds", func(ctx context.Context, req *Id) (any, error) {
			return s.GetLinkedIds(ctx, req)
		}),
		unaryMethod("GetLinked", func(ctx context.Context, req *Id) (any, error) {
			return s.GetLinked(ctx, req)
		}),
		unaryMethod("IsReady", func(ctx context.Context, req *ReadyRequest) (any, error) {
			return s.IsReady(ctx, req)
		}),
	})
	srv.RegisterService(desc, s)
}
