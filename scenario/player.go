package scenario

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wlkit/wlkit"
	"github.com/wlkit/wlkit/backend"
	"github.com/wlkit/wlkit/errors"
)

// Player drives one Backend through a Scenario. Setup and Run must be
// called from the goroutine that drives the backend; the bridge's
// callbacks fire synchronously from inside Run.
type Player struct {
	be  *backend.Backend
	sc  *Scenario
	ids map[string]wlkit.NativeID
}

// NewPlayer binds a scenario to a backend.
func NewPlayer(be *backend.Backend, sc *Scenario) *Player {
	return &Player{
		be:  be,
		sc:  sc,
		ids: make(map[string]wlkit.NativeID),
	}
}

// Setup creates every output and device the scenario declares. Call it
// after the event bridge is attached so the announcements are adopted.
func (p *Player) Setup() error {
	for _, o := range p.sc.Outputs {
		obj, err := p.be.CreateOutput(o.state())
		if err != nil {
			return err
		}
		p.ids[o.Name] = obj.ID()
	}
	for _, d := range p.sc.Devices {
		st, err := d.state()
		if err != nil {
			return err
		}
		obj, err := p.be.CreateInput(st)
		if err != nil {
			return err
		}
		p.ids[d.Name] = obj.ID()
	}
	Logger().Info("scenario set up",
		zap.String("name", p.sc.Name),
		zap.Int("outputs", len(p.sc.Outputs)),
		zap.Int("devices", len(p.sc.Devices)))
	return nil
}

// Run plays the timed steps. It returns when the last step has fired,
// or earlier with the context's error if ctx is done.
func (p *Player) Run(ctx context.Context) error {
	start := time.Now()
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for _, step := range p.sc.Steps {
		if wait := time.Duration(step.At) - time.Since(start); wait > 0 {
			timer.Reset(wait)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
		if err := p.apply(step); err != nil {
			return errors.Wrap(errors.KindInvalidData, err,
				"applying step "+step.Action)
		}
	}
	return nil
}

func (p *Player) apply(step Step) error {
	id, ok := p.ids[step.Target]
	if !ok {
		return errors.InvalidData("unknown target %q", step.Target)
	}
	if step.Action == ActionDestroy {
		Logger().Debug("destroying object",
			zap.String("target", step.Target),
			zap.String("id", id.String()))
		return p.be.Destroy(id)
	}
	event, payload := step.payload()
	Logger().Debug("emitting event",
		zap.String("target", step.Target),
		zap.String("event", event))
	return p.be.Emit(id, event, payload)
}

// ID resolves a scenario object name to the native identity Setup gave
// it.
func (p *Player) ID(name string) (wlkit.NativeID, bool) {
	id, ok := p.ids[name]
	return id, ok
}
