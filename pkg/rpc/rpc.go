// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

// Package rpc exposes the resource engines over grpc. Every entity gets the
// same unary method surface, so services are generic wrappers and their
// grpc.ServiceDesc is built programmatically instead of generated. Messages
// are plain structs carried by a JSON codec.
package rpc

import (
	"context"
	"encoding/json"

	"github.com/spacemonkeygo/monkit/v3"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"

	"skystore.io/skystore/pkg/resource"
)

var mon = monkit.Package()

// Codec is the JSON grpc codec carrying the wire messages.
type Codec struct{}

// Name implements encoding.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements encoding.Codec.
func (Codec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal implements encoding.Codec.
func (Codec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func init() {
	encoding.RegisterCodec(Codec{})
}

// statusError maps an engine error onto the wire taxonomy. Internal detail
// is logged server-side and never crosses the boundary.
func statusError(log *zap.Logger, table string, err error) error {
	switch {
	case resource.ErrNotFound.Has(err):
		return status.Errorf(codes.NotFound, "%s not found", table)
	case resource.ErrMalformed.Has(err):
		return status.Errorf(codes.InvalidArgument, "malformed %s request", table)
	case resource.ErrAlreadyArchived.Has(err):
		return status.Errorf(codes.Internal, "%s already archived", table)
	case resource.ErrAlreadyExists.Has(err):
		return status.Errorf(codes.AlreadyExists, "%s already exists", table)
	}
	log.Error("request failed", zap.String("table", table), zap.Error(err))
	return status.Error(codes.Internal, "error")
}

// unaryMethod adapts a typed handler into a grpc.MethodDesc.
func unaryMethod[Req any](name string, call func(ctx context.Context, req *Req) (any, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			req := new(Req)
			if err := dec(req); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(ctx, req)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: name}
			return interceptor(ctx, req, info, func(ctx context.Context, req any) (any, error) {
				return call(ctx, req.(*Req))
			})
		},
	}
}

func serviceDesc(entity string, methods []grpc.MethodDesc) *grpc.ServiceDesc {
	return &grpc.ServiceDesc{
		ServiceName: "skystore." + entity + ".Service",
		HandlerType: (*any)(nil),
		Methods:     methods,
		Metadata:    "skystore/" + entity,
	}
}
