// Package protocol contains the wire types exchanged between the
// driver, its executors and the control CLI. The message types mirror
// driver.proto and are maintained by hand; they satisfy the legacy
// proto message interface and are adapted by the grpc proto codec.
package protocol

import (
	"github.com/golang/protobuf/proto"
)

// Version of the driver/executor protocol. Executors report it in their
// registration attributes.
const Version = "1.0.0"

// ExecutorUpdate status values.
const (
	UpdateStatusRegister  int32 = 1
	UpdateStatusHeartbeat int32 = 2
	UpdateStatusStopping  int32 = 3
)

// DriverRequest action values.
const (
	DriverActionRegistered int32 = 1
	DriverActionRejected   int32 = 2
	DriverActionStop       int32 = 3
)

// Key/value property describing an executor node.
type Attribute struct {
	Key   string `protobuf:"bytes,1,opt,name=key,proto3" json:"key,omitempty"`
	Value string `protobuf:"bytes,2,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *Attribute) Reset()         { *m = Attribute{} }
func (m *Attribute) String() string { return proto.CompactTextString(m) }
func (*Attribute) ProtoMessage()    {}

func (m *Attribute) GetKey() string {
	if m != nil {
		return m.Key
	}
	return ""
}

func (m *Attribute) GetValue() string {
	if m != nil {
		return m.Value
	}
	return ""
}

// Registration details sent by an executor in its first update.
type ExecutorRegistration struct {
	ExecutorId    string       `protobuf:"bytes,1,opt,name=executor_id,json=executorId,proto3" json:"executor_id,omitempty"`
	ApplicationId string       `protobuf:"bytes,2,opt,name=application_id,json=applicationId,proto3" json:"application_id,omitempty"`
	HostPort      string       `protobuf:"bytes,3,opt,name=host_port,json=hostPort,proto3" json:"host_port,omitempty"`
	Units         int32        `protobuf:"varint,4,opt,name=units,proto3" json:"units,omitempty"`
	MemoryMb      int32        `protobuf:"varint,5,opt,name=memory_mb,json=memoryMb,proto3" json:"memory_mb,omitempty"`
	Attributes    []*Attribute `protobuf:"bytes,6,rep,name=attributes,proto3" json:"attributes,omitempty"`
}

func (m *ExecutorRegistration) Reset()         { *m = ExecutorRegistration{} }
func (m *ExecutorRegistration) String() string { return proto.CompactTextString(m) }
func (*ExecutorRegistration) ProtoMessage()    {}

func (m *ExecutorRegistration) GetExecutorId() string {
	if m != nil {
		return m.ExecutorId
	}
	return ""
}

func (m *ExecutorRegistration) GetApplicationId() string {
	if m != nil {
		return m.ApplicationId
	}
	return ""
}

func (m *ExecutorRegistration) GetHostPort() string {
	if m != nil {
		return m.HostPort
	}
	return ""
}

func (m *ExecutorRegistration) GetUnits() int32 {
	if m != nil {
		return m.Units
	}
	return 0
}

func (m *ExecutorRegistration) GetMemoryMb() int32 {
	if m != nil {
		return m.MemoryMb
	}
	return 0
}

func (m *ExecutorRegistration) GetAttributes() []*Attribute {
	if m != nil {
		return m.Attributes
	}
	return nil
}

// Failure details reported by an executor.
type ExecutorError struct {
	Message string `protobuf:"bytes,1,opt,name=message,proto3" json:"message,omitempty"`
	Details string `protobuf:"bytes,2,opt,name=details,proto3" json:"details,omitempty"`
}

func (m *ExecutorError) Reset()         { *m = ExecutorError{} }
func (m *ExecutorError) String() string { return proto.CompactTextString(m) }
func (*ExecutorError) ProtoMessage()    {}

func (m *ExecutorError) GetMessage() string {
	if m != nil {
		return m.Message
	}
	return ""
}

func (m *ExecutorError) GetDetails() string {
	if m != nil {
		return m.Details
	}
	return ""
}

// Message sent from an executor to the driver.
type ExecutorUpdate struct {
	Status       int32                 `protobuf:"varint,1,opt,name=status,proto3" json:"status,omitempty"`
	Registration *ExecutorRegistration `protobuf:"bytes,2,opt,name=registration,proto3" json:"registration,omitempty"`
	Error        *ExecutorError        `protobuf:"bytes,3,opt,name=error,proto3" json:"error,omitempty"`
}

func (m *ExecutorUpdate) Reset()         { *m = ExecutorUpdate{} }
func (m *ExecutorUpdate) String() string { return proto.CompactTextString(m) }
func (*ExecutorUpdate) ProtoMessage()    {}

func (m *ExecutorUpdate) GetStatus() int32 {
	if m != nil {
		return m.Status
	}
	return 0
}

func (m *ExecutorUpdate) GetRegistration() *ExecutorRegistration {
	if m != nil {
		return m.Registration
	}
	return nil
}

func (m *ExecutorUpdate) GetError() *ExecutorError {
	if m != nil {
		return m.Error
	}
	return nil
}

// Message sent from the driver to an executor.
type DriverRequest struct {
	Action        int32  `protobuf:"varint,1,opt,name=action,proto3" json:"action,omitempty"`
	ApplicationId string `protobuf:"bytes,2,opt,name=application_id,json=applicationId,proto3" json:"application_id,omitempty"`
	Reason        string `protobuf:"bytes,3,opt,name=reason,proto3" json:"reason,omitempty"`
}

func (m *DriverRequest) Reset()         { *m = DriverRequest{} }
func (m *DriverRequest) String() string { return proto.CompactTextString(m) }
func (*DriverRequest) ProtoMessage()    {}

func (m *DriverRequest) GetAction() int32 {
	if m != nil {
		return m.Action
	}
	return 0
}

func (m *DriverRequest) GetApplicationId() string {
	if m != nil {
		return m.ApplicationId
	}
	return ""
}

func (m *DriverRequest) GetReason() string {
	if m != nil {
		return m.Reason
	}
	return ""
}

type StatusResponse struct {
	ApplicationId      string  `protobuf:"bytes,1,opt,name=application_id,json=applicationId,proto3" json:"application_id,omitempty"`
	ApplicationName    string  `protobuf:"bytes,2,opt,name=application_name,json=applicationName,proto3" json:"application_name,omitempty"`
	RegisteredUnits    int64   `protobuf:"varint,3,opt,name=registered_units,json=registeredUnits,proto3" json:"registered_units,omitempty"`
	ExpectedUnits      int32   `protobuf:"varint,4,opt,name=expected_units,json=expectedUnits,proto3" json:"expected_units,omitempty"`
	MinRegisteredRatio float64 `protobuf:"fixed64,5,opt,name=min_registered_ratio,json=minRegisteredRatio,proto3" json:"min_registered_ratio,omitempty"`
	Sufficient         bool    `protobuf:"varint,6,opt,name=sufficient,proto3" json:"sufficient,omitempty"`
	Ready              bool    `protobuf:"varint,7,opt,name=ready,proto3" json:"ready,omitempty"`
	Executors          int32   `protobuf:"varint,8,opt,name=executors,proto3" json:"executors,omitempty"`
	StartedAtMs        int64   `protobuf:"varint,9,opt,name=started_at_ms,json=startedAtMs,proto3" json:"started_at_ms,omitempty"`
}

func (m *StatusResponse) Reset()         { *m = StatusResponse{} }
func (m *StatusResponse) String() string { return proto.CompactTextString(m) }
func (*StatusResponse) ProtoMessage()    {}

func (m *StatusResponse) GetApplicationId() string {
	if m != nil {
		return m.ApplicationId
	}
	return ""
}

func (m *StatusResponse) GetApplicationName() string {
	if m != nil {
		return m.ApplicationName
	}
	return ""
}

func (m *StatusResponse) GetRegisteredUnits() int64 {
	if m != nil {
		return m.RegisteredUnits
	}
	return 0
}

func (m *StatusResponse) GetExpectedUnits() int32 {
	if m != nil {
		return m.ExpectedUnits
	}
	return 0
}

func (m *StatusResponse) GetMinRegisteredRatio() float64 {
	if m != nil {
		return m.MinRegisteredRatio
	}
	return 0
}

func (m *StatusResponse) GetSufficient() bool {
	if m != nil {
		return m.Sufficient
	}
	return false
}

func (m *StatusResponse) GetReady() bool {
	if m != nil {
		return m.Ready
	}
	return false
}

func (m *StatusResponse) GetExecutors() int32 {
	if m != nil {
		return m.Executors
	}
	return 0
}

func (m *StatusResponse) GetStartedAtMs() int64 {
	if m != nil {
		return m.StartedAtMs
	}
	return 0
}

type ExecutorEntry struct {
	Id             string       `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	HostPort       string       `protobuf:"bytes,2,opt,name=host_port,json=hostPort,proto3" json:"host_port,omitempty"`
	Units          int32        `protobuf:"varint,3,opt,name=units,proto3" json:"units,omitempty"`
	MemoryMb       int32        `protobuf:"varint,4,opt,name=memory_mb,json=memoryMb,proto3" json:"memory_mb,omitempty"`
	RegisteredAtMs int64        `protobuf:"varint,5,opt,name=registered_at_ms,json=registeredAtMs,proto3" json:"registered_at_ms,omitempty"`
	Attributes     []*Attribute `protobuf:"bytes,6,rep,name=attributes,proto3" json:"attributes,omitempty"`
}

func (m *ExecutorEntry) Reset()         { *m = ExecutorEntry{} }
func (m *ExecutorEntry) String() string { return proto.CompactTextString(m) }
func (*ExecutorEntry) ProtoMessage()    {}

func (m *ExecutorEntry) GetId() string {
	if m != nil {
		return m.Id
	}
	return ""
}

func (m *ExecutorEntry) GetHostPort() string {
	if m != nil {
		return m.HostPort
	}
	return ""
}

func (m *ExecutorEntry) GetUnits() int32 {
	if m != nil {
		return m.Units
	}
	return 0
}

func (m *ExecutorEntry) GetMemoryMb() int32 {
	if m != nil {
		return m.MemoryMb
	}
	return 0
}

func (m *ExecutorEntry) GetRegisteredAtMs() int64 {
	if m != nil {
		return m.RegisteredAtMs
	}
	return 0
}

func (m *ExecutorEntry) GetAttributes() []*Attribute {
	if m != nil {
		return m.Attributes
	}
	return nil
}

type ListExecutorsResponse struct {
	Executors []*ExecutorEntry `protobuf:"bytes,1,rep,name=executors,proto3" json:"executors,omitempty"`
}

func (m *ListExecutorsResponse) Reset()         { *m = ListExecutorsResponse{} }
func (m *ListExecutorsResponse) String() string { return proto.CompactTextString(m) }
func (*ListExecutorsResponse) ProtoMessage()    {}

func (m *ListExecutorsResponse) GetExecutors() []*ExecutorEntry {
	if m != nil {
		return m.Executors
	}
	return nil
}

type StopApplicationRequest struct {
	Reason string `protobuf:"bytes,1,opt,name=reason,proto3" json:"reason,omitempty"`
}

func (m *StopApplicationRequest) Reset()         { *m = StopApplicationRequest{} }
func (m *StopApplicationRequest) String() string { return proto.CompactTextString(m) }
func (*StopApplicationRequest) ProtoMessage()    {}

func (m *StopApplicationRequest) GetReason() string {
	if m != nil {
		return m.Reason
	}
	return ""
}
