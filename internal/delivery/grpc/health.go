package grpc

import (
	"errors"
	"net"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name probes can ask for besides "".
const ServiceName = "storefront"

// HealthServer exposes the standard gRPC health checking protocol for the
// storefront process.
type HealthServer struct {
	server *grpc.Server
	health *health.Server
	log    *logrus.Logger
}

func NewHealthServer(logger *logrus.Logger) *HealthServer {
	server := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, healthServer)
	reflection.Register(server)

	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &HealthServer{
		server: server,
		health: healthServer,
		log:    logger,
	}
}

// Serve blocks until the listener fails or Stop is called.
func (s *HealthServer) Serve(lis net.Listener) error {
	s.log.Infof("gRPC health server listening on %s", lis.Addr())
	if err := s.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		s.log.Errorf("gRPC health server failed: %v", err)
		return err
	}
	return nil
}

// Stop reports NOT_SERVING to watchers and then stops gracefully.
func (s *HealthServer) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
	s.log.Info("gRPC health server stopped")
}
