package tracking

import (
	"errors"
	"sync"

	"backend-workoutmap/internal/shared/geo"
)

var ErrLocatorNotArmed = errors.New("no position request is pending")

// FixedLocator always reports the same position.
type FixedLocator struct {
	Coords geo.Coords
}

func (f FixedLocator) Locate(onSuccess func(geo.Coords), onError func(error)) {
	if !f.Coords.Valid() {
		onError(errors.New("configured position is out of range"))
		return
	}
	onSuccess(f.Coords)
}

// DeferredLocator waits for the client to report its position. Each Locate
// call arms one request that Resolve or Reject answers exactly once.
type DeferredLocator struct {
	mu        sync.Mutex
	onSuccess func(geo.Coords)
	onError   func(error)
}

func NewDeferredLocator() *DeferredLocator {
	return &DeferredLocator{}
}

func (d *DeferredLocator) Locate(onSuccess func(geo.Coords), onError func(error)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onSuccess = onSuccess
	d.onError = onError
}

func (d *DeferredLocator) Armed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.onSuccess != nil
}

func (d *DeferredLocator) Resolve(c geo.Coords) error {
	onSuccess, _, err := d.take()
	if err != nil {
		return err
	}
	onSuccess(c)
	return nil
}

func (d *DeferredLocator) Reject(cause error) error {
	_, onError, err := d.take()
	if err != nil {
		return err
	}
	onError(cause)
	return nil
}

func (d *DeferredLocator) take() (func(geo.Coords), func(error), error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.onSuccess == nil {
		return nil, nil, ErrLocatorNotArmed
	}
	onSuccess, onError := d.onSuccess, d.onError
	d.onSuccess, d.onError = nil, nil
	return onSuccess, onError, nil
}
