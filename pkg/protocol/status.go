package protocol

// Should return a printable name for an executor update status
func UpdateStatusName(status int32) string {
	switch status {
	case UpdateStatusRegister:
		return "REGISTER"
	case UpdateStatusHeartbeat:
		return "HEARTBEAT"
	case UpdateStatusStopping:
		return "STOPPING"
	default:
		return "UNKNOWN"
	}
}

// Should return a printable name for a driver request action
func DriverActionName(action int32) string {
	switch action {
	case DriverActionRegistered:
		return "REGISTERED"
	case DriverActionRejected:
		return "REJECTED"
	case DriverActionStop:
		return "STOP"
	default:
		return "UNKNOWN"
	}
}

// Should return true if the update carries a usable registration
func (m *ExecutorUpdate) HasRegistration() bool {
	return m.GetStatus() == UpdateStatusRegister && m.GetRegistration() != nil
}
