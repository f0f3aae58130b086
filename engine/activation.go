package engine

import (
	"fmt"

	"github.com/siana-blue/poufalouf/core"
	"github.com/siana-blue/poufalouf/event"
)

// Activate runs the idle to activated transition of id
//
// An already activated entity is left untouched and reports false, so continued contact never
// re-triggers. Otherwise the entity's OnActivate hook decides; on acceptance the activator is
// recorded and EventActivated is queued. The state is set before the hook runs so an effect
// that activates back toward its activator cannot recurse.
func (w *World) Activate(id, activator core.Entity) (bool, error) {
	obj, ok := w.objects.Get(id)
	if !ok {
		return false, fmt.Errorf("%w: %d", ErrUnknownEntity, id)
	}
	a, ok := obj.(Activable)
	if !ok {
		return false, fmt.Errorf("%w: %s %d", ErrNotActivable, obj.Body().Kind, id)
	}
	st := a.Activation()
	if st.Activated {
		return false, nil
	}

	st.Activated = true
	st.Activator = activator
	if !a.OnActivate(w, id, activator) {
		st.Reset(id)
		return false, nil
	}

	w.activations++
	w.emit(event.EventActivated, &event.ActivationPayload{Entity: id, Kind: obj.Body().Kind, Activator: activator})
	return true, nil
}

// Deactivate returns id to idle with self as activator
func (w *World) Deactivate(id core.Entity) error {
	obj, ok := w.objects.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEntity, id)
	}
	a, ok := obj.(Activable)
	if !ok {
		return fmt.Errorf("%w: %s %d", ErrNotActivable, obj.Body().Kind, id)
	}
	st := a.Activation()
	if !st.Activated {
		return nil
	}

	activator := st.Activator
	a.OnDeactivate(w, id)
	st.Reset(id)
	w.emit(event.EventDeactivated, &event.ActivationPayload{Entity: id, Kind: obj.Body().Kind, Activator: activator})
	return nil
}

// IsActivated reports the activation state of id, false for non-activable entities
func (w *World) IsActivated(id core.Entity) bool {
	obj, ok := w.objects.Get(id)
	if !ok {
		return false
	}
	a, ok := obj.(Activable)
	return ok && a.Activation().Activated
}

// Activator returns who activated id, id itself while idle, NoEntity when not activable
func (w *World) Activator(id core.Entity) core.Entity {
	obj, ok := w.objects.Get(id)
	if !ok {
		return core.NoEntity
	}
	a, ok := obj.(Activable)
	if !ok {
		return core.NoEntity
	}
	return a.Activation().Activator
}

// Activations returns the lifetime count of accepted activations
func (w *World) Activations() int64 {
	return w.activations
}
