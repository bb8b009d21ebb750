package utils

import (
	"time"

	"github.com/galecloud/gale/pkg/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
)

type GRPCOptions struct {
	// The interval between PING frames.
	KeepAliveTime *time.Duration `mapstructure:"keep_alive_time"`
	// The timeout for a PING frame to be acknowledged.
	KeepAliveTimeout *time.Duration `mapstructure:"keep_alive_timeout"`
	// Send keepalive pings even if there are no active streams (client).
	KeepAliveWithoutCalls *bool `mapstructure:"keep_alive_without_calls"`
	// Are clients allowed to send keepalive pings without active streams (server).
	PermitKeepAliveWithoutCalls *bool `mapstructure:"permit_keep_alive_without_calls"`
	// Minimum allowed interval between client pings (server).
	PermitKeepAliveTime *time.Duration `mapstructure:"permit_keep_alive_time"`
}

func (o *GRPCOptions) ToServerOptions() []grpc.ServerOption {
	opts := []grpc.ServerOption{}

	if o.KeepAliveTime != nil || o.KeepAliveTimeout != nil {
		params := keepalive.ServerParameters{}
		if o.KeepAliveTime != nil {
			params.Time = *o.KeepAliveTime
		}
		if o.KeepAliveTimeout != nil {
			params.Timeout = *o.KeepAliveTimeout
		}
		opts = append(opts, grpc.KeepaliveParams(params))
	}

	if o.PermitKeepAliveWithoutCalls != nil || o.PermitKeepAliveTime != nil {
		policy := keepalive.EnforcementPolicy{}
		if o.PermitKeepAliveWithoutCalls != nil {
			policy.PermitWithoutStream = *o.PermitKeepAliveWithoutCalls
		}
		if o.PermitKeepAliveTime != nil {
			policy.MinTime = *o.PermitKeepAliveTime
		}
		opts = append(opts, grpc.KeepaliveEnforcementPolicy(policy))
	}

	return opts
}

func (o *GRPCOptions) ToDialOptions() []grpc.DialOption {
	opts := []grpc.DialOption{}

	if o.KeepAliveTime != nil || o.KeepAliveTimeout != nil || o.KeepAliveWithoutCalls != nil {
		params := keepalive.ClientParameters{}
		if o.KeepAliveTime != nil {
			params.Time = *o.KeepAliveTime
		}
		if o.KeepAliveTimeout != nil {
			params.Timeout = *o.KeepAliveTimeout
		}
		if o.KeepAliveWithoutCalls != nil {
			params.PermitWithoutStream = *o.KeepAliveWithoutCalls
		}
		opts = append(opts, grpc.WithKeepaliveParams(params))
	}

	return opts
}

func (o *GRPCOptions) LogValues() {
	if o.KeepAliveTime == nil && o.KeepAliveTimeout == nil &&
		o.KeepAliveWithoutCalls == nil &&
		o.PermitKeepAliveWithoutCalls == nil &&
		o.PermitKeepAliveTime == nil {
		return
	}

	log.Info("  gRPC options:")

	if o.KeepAliveTime != nil {
		log.Info("    keep_alive_time =", *o.KeepAliveTime)
	}
	if o.KeepAliveTimeout != nil {
		log.Info("    keep_alive_timeout =", *o.KeepAliveTimeout)
	}
	if o.KeepAliveWithoutCalls != nil {
		log.Info("    keep_alive_without_calls =", *o.KeepAliveWithoutCalls)
	}
	if o.PermitKeepAliveWithoutCalls != nil {
		log.Info("    permit_keep_alive_without_calls =", *o.PermitKeepAliveWithoutCalls)
	}
	if o.PermitKeepAliveTime != nil {
		log.Info("    permit_keep_alive_time =", *o.PermitKeepAliveTime)
	}
}
