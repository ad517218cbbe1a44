package trigvk

import "github.com/pkg/errors"

type releaseStep struct {
	name string
	fn   func()
}

// releaser records destroy steps as resources are created and runs them in
// reverse once the device is idle. Steps are only pushed after a successful
// create, so a partially initialized context releases exactly what exists.
type releaser struct {
	idle  func() error
	steps []releaseStep
	log   func(format string, v ...interface{})
}

func (r *releaser) push(name string, fn func()) {
	r.steps = append(r.steps, releaseStep{name: name, fn: fn})
}

// pending reports the number of steps not yet released.
func (r *releaser) pending() int {
	return len(r.steps)
}

// names lists the pending steps in push order.
func (r *releaser) names() []string {
	names := make([]string, len(r.steps))
	for i, step := range r.steps {
		names[i] = step.name
	}
	return names
}

// release waits for idle, then pops every step. Safe to call repeatedly.
func (r *releaser) release() error {
	if len(r.steps) == 0 {
		return nil
	}

	var err error
	if r.idle != nil {
		if ierr := r.idle(); ierr != nil {
			err = errors.Wrap(ierr, "wait for device idle")
		}
	}

	for i := len(r.steps) - 1; i >= 0; i-- {
		step := r.steps[i]
		if r.log != nil {
			r.log("destroy %s", step.name)
		}
		step.fn()
	}
	r.steps = nil
	r.idle = nil
	return err
}
