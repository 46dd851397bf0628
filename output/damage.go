package output

// Damage accumulates the regions of an output that need repainting. Its
// lifetime matches the native output exactly: created when the output is
// wrapped, destroyed once, only when the output really dies, never when a
// transient upgrade's scope ends.
type Damage struct {
	regions []Region
	whole   bool
	dead    bool
}

// Region is a damaged rectangle in output-local coordinates.
type Region struct {
	X, Y          int32
	Width, Height int32
}

func newDamage() *Damage {
	return &Damage{}
}

// Add marks a region as damaged.
func (d *Damage) Add(r Region) {
	if d.whole {
		return
	}
	d.regions = append(d.regions, r)
}

// AddWhole marks the entire output as damaged.
func (d *Damage) AddWhole() {
	d.whole = true
	d.regions = nil
}

// Take returns the accumulated damage and resets the tracker, typically
// once per frame. A nil slice with whole=false means nothing to repaint.
func (d *Damage) Take() (regions []Region, whole bool) {
	regions, whole = d.regions, d.whole
	d.regions = nil
	d.whole = false
	return regions, whole
}

// Pending reports whether any damage is waiting.
func (d *Damage) Pending() bool {
	return d.whole || len(d.regions) > 0
}

// Destroyed reports whether the tracker has been torn down.
func (d *Damage) Destroyed() bool {
	return d.dead
}

// destroy runs at most once, from the output's destroy finalizer.
func (d *Damage) destroy() {
	if d.dead {
		panic("output: damage tracker destroyed twice")
	}
	d.dead = true
	d.regions = nil
}
