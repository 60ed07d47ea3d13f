package reactive

// Phase says whether reads in a frame are recorded as dependencies.
type Phase uint8

const (
	// Building frames record every store read.
	Building Phase = iota
	// Committed frames drop reads. They are pushed while effects re-run and
	// while post-mount callbacks execute.
	Committed
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case Building:
		return "Building"
	case Committed:
		return "Committed"
	default:
		return "Unknown"
	}
}

// frame is one level of the capture stack.
type frame struct {
	phase Phase
	deps  []*Source
	seen  map[*Source]struct{}
}

// record appends src to the frame's dependency set once.
func (f *frame) record(src *Source) {
	if f.phase != Building {
		return
	}
	if _, ok := f.seen[src]; ok {
		return
	}
	if f.seen == nil {
		f.seen = make(map[*Source]struct{})
	}
	f.seen[src] = struct{}{}
	f.deps = append(f.deps, src)
}

// TrackingContext holds the capture stack of a Runtime.
// Capture pushes a Building frame on entry and pops it on exit, so nested
// captures record into their own frame only.
type TrackingContext struct {
	frames []*frame
}

// Phase returns the phase of the innermost frame.
// With no frame on the stack reads are not recorded, which is reported as
// Committed.
func (c *TrackingContext) Phase() Phase {
	if len(c.frames) == 0 {
		return Committed
	}
	return c.frames[len(c.frames)-1].phase
}

// Depth returns the number of frames on the stack.
func (c *TrackingContext) Depth() int {
	return len(c.frames)
}

func (c *TrackingContext) push(p Phase) *frame {
	f := &frame{phase: p}
	c.frames = append(c.frames, f)
	return f
}

func (c *TrackingContext) pop() *frame {
	n := len(c.frames)
	f := c.frames[n-1]
	c.frames[n-1] = nil
	c.frames = c.frames[:n-1]
	return f
}

// record registers a read with the innermost frame, if any.
func (c *TrackingContext) record(src *Source) {
	if len(c.frames) == 0 {
		return
	}
	c.frames[len(c.frames)-1].record(src)
}
