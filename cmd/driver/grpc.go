package main

import (
	"fmt"
	"net"
	"net/url"

	"github.com/galecloud/gale/pkg/log"
	"google.golang.org/grpc"
)

// Listens on a single address and serves the shared gRPC server on it.
func serveGrpc(server *grpc.Server, address string) error {
	uri, err := url.Parse(address)
	if err != nil {
		return err
	}

	host := uri.Host

	switch uri.Scheme {
	case "tcp", "tcp4", "tcp6":
		if uri.Port() == "" {
			// Default port is 9090
			host = fmt.Sprintf("%s:9090", uri.Host)
		}
	case "unix":
		if uri.Path != "" {
			host = uri.Path
		}
	default:
		return fmt.Errorf("unsupported protocol: %s", uri.Scheme)
	}

	socket, err := net.Listen(uri.Scheme, host)
	if err != nil {
		return err
	}

	if uri.Scheme == "unix" {
		// Remove the socket file on shutdown
		socket.(*net.UnixListener).SetUnlinkOnClose(true)

		log.Info("Listening on", uri.Scheme, host)
	} else {
		log.Info("Listening on", uri.Scheme, socket.Addr())
	}

	return server.Serve(socket)
}
