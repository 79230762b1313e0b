package runtime

// TaskContext is handed to every function spawned via Runtime.Spawn. It is
// the Go equivalent of the Rust StopRx: a cancel-safe handle a task selects
// on alongside its own work to cooperate with shutdown.
type TaskContext struct {
	stopCh <-chan struct{}
}

// Done returns a channel that closes when the Runtime is stopping, suitable
// for use directly in a select alongside other work (spec §4.1
// wait_for_stop: "must be selected on alongside work to achieve cooperative
// cancellation").
func (tc *TaskContext) Done() <-chan struct{} {
	return tc.stopCh
}

// WaitForStop blocks until shutdown has been requested.
func (tc *TaskContext) WaitForStop() {
	<-tc.stopCh
}

// Stopped reports whether shutdown has already been requested, without
// blocking.
func (tc *TaskContext) Stopped() bool {
	select {
	case <-tc.stopCh:
		return true
	default:
		return false
	}
}
