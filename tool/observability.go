package tool

import "sync"

// DispatchObservation captures one dispatcher invocation outcome.
type DispatchObservation struct {
	Tool       string
	Called     string
	DurationMS int64
	IsError    bool
}

// ProbeObservation captures one backend reachability check outcome.
type ProbeObservation struct {
	Healthy    bool
	StatusCode int
	DurationMS int64
}

// Observer receives gateway observability events.
type Observer interface {
	ObserveDispatch(observation DispatchObservation)
	ObserveProbe(observation ProbeObservation)
}

type noopObserver struct{}

func (noopObserver) ObserveDispatch(DispatchObservation) {}
func (noopObserver) ObserveProbe(ProbeObservation)       {}

var (
	observerMu     sync.RWMutex
	activeObserver Observer = noopObserver{}
)

// SetObserver sets the process-wide observability observer.
func SetObserver(observer Observer) {
	observerMu.Lock()
	defer observerMu.Unlock()
	if observer == nil {
		activeObserver = noopObserver{}
		return
	}
	activeObserver = observer
}

func emitDispatchObservation(observation DispatchObservation) {
	observerMu.RLock()
	observer := activeObserver
	observerMu.RUnlock()
	observer.ObserveDispatch(observation)
}

// EmitProbeObservation reports a backend probe outcome to the active
// observer. Exported because the probe loop lives outside this
// package.
func EmitProbeObservation(observation ProbeObservation) {
	observerMu.RLock()
	observer := activeObserver
	observerMu.RUnlock()
	observer.ObserveProbe(observation)
}
