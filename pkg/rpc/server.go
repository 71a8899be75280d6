// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package rpc

import (
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"skystore.io/skystore/pkg/catalog"
)

// Server registers one service per catalog entity on a grpc server.
type Server struct {
	log  *zap.Logger
	grpc *grpc.Server
}

// NewServer builds the grpc server for a catalog.
func NewServer(log *zap.Logger, cat *catalog.Catalog) *Server {
	srv := grpc.NewServer()

	NewSimpleService(log, "vehicle", cat.Vehicles).Register(srv)
	NewSimpleService(log, "pilot", cat.Pilots).Register(srv)
	NewSimpleService(log, "vertiport", cat.Vertiports).Register(srv)
	NewSimpleService(log, "vertipad", cat.Vertipads).Register(srv)
	NewSimpleService(log, "flight_plan", cat.FlightPlans).Register(srv)
	NewSimpleService(log, "parcel", cat.Parcels).Register(srv)
	NewSimpleService(log, "scanner", cat.Scanners).Register(srv)
	NewSimpleService(log, "parcel_scan", cat.ParcelScans).Register(srv)
	NewSimpleService(log, "adsb", cat.Telemetry).Register(srv)
	NewSimpleService(log, "user", cat.Users).Register(srv)
	NewSimpleService(log, "group", cat.Groups).Register(srv)
	NewSimpleService(log, "itinerary", cat.Itineraries).Register(srv)

	NewLinkedService(log, "flight_plan_parcel", cat.FlightPlanParcels).Register(srv)

	NewLinkService(log, "user_group", cat.UserGroups, cat.Groups).Register(srv)
	NewLinkService(log, "vehicle_group", cat.VehicleGroups, cat.Groups).Register(srv)
	NewLinkService(log, "vertiport_group", cat.VertiportGroups, cat.Groups).Register(srv)
	NewLinkService(log, "vertipad_group", cat.VertipadGroups, cat.Groups).Register(srv)
	NewLinkService(log, "itinerary_flight_plan", cat.ItineraryFlightPlans, cat.FlightPlans).Register(srv)

	return &Server{log: log, grpc: srv}
}

// Serve accepts connections until the listener closes or GracefulStop is
// called.
func (s *Server) Serve(lis net.Listener) error {
	s.log.Info("serving", zap.String("addr", lis.Addr().String()))
	return s.grpc.Serve(lis)
}

// GracefulStop drains in-flight requests and stops the server.
func (s *Server) GracefulStop() {
	s.grpc.GracefulStop()
}
