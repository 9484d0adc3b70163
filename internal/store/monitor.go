package store

import (
	"sync/atomic"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo/description"
)

// State is the document store connection state.
type State int32

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "Connecting"
	case Connected:
		return "Connected"
	default:
		return "Disconnected"
	}
}

// Monitor tracks the connection state. Transitions:
//
//	Disconnected -> Connecting -> Connected
//	Connecting   -> Disconnected (timeout or error)
//	Connected    -> Disconnected (driver topology notification, or Disconnect)
//
// The driver may also report a recovered topology, which moves the monitor
// back to Connected; nothing here schedules reconnects itself.
type Monitor struct {
	state atomic.Int32
}

// NewMonitor returns a monitor in the Disconnected state.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// State returns the current state. Safe on a nil monitor.
func (m *Monitor) State() State {
	if m == nil {
		return Disconnected
	}
	return State(m.state.Load())
}

// Gauge returns the state as a float for metrics.
func (m *Monitor) Gauge() float64 {
	return float64(m.State())
}

func (m *Monitor) set(s State) {
	if m != nil {
		m.state.Store(int32(s))
	}
}

func (m *Monitor) beginConnect() { m.set(Connecting) }
func (m *Monitor) connected()    { m.set(Connected) }
func (m *Monitor) disconnected() { m.set(Disconnected) }

// observeTopology applies an async topology notification. While a connect
// attempt is still in progress the result of that attempt decides the state.
func (m *Monitor) observeTopology(desc description.Topology) {
	if m.State() == Connecting {
		return
	}
	if topologyAvailable(desc) {
		m.connected()
		return
	}
	m.disconnected()
}

// topologyAvailable reports whether any known server can accept writes.
// A set with only secondaries left cannot serve writes.
func topologyAvailable(desc description.Topology) bool {
	for _, srv := range desc.Servers {
		switch srv.Kind {
		case description.RSPrimary, description.Standalone, description.Mongos, description.LoadBalancer:
			return true
		}
	}
	return false
}

// serverMonitor wires driver notifications into the monitor.
func (m *Monitor) serverMonitor() *event.ServerMonitor {
	return &event.ServerMonitor{
		TopologyDescriptionChanged: func(e *event.TopologyDescriptionChangedEvent) {
			m.observeTopology(e.NewDescription)
		},
	}
}
