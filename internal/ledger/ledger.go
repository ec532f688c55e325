package ledger

// Ledger is the append-only delivery log of one innings.
//
// Ledger is not safe for concurrent use. Scoring has exactly one writer;
// callers sharing a ledger across goroutines must serialize access.
type Ledger struct {
	deliveries []Delivery
	ids        IDGenerator
	clock      *Clock
	locked     bool
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithIDGenerator overrides the UUIDv7 id generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(l *Ledger) {
		if g != nil {
			l.ids = g
		}
	}
}

// WithClock overrides the sequence clock.
func WithClock(c *Clock) Option {
	return func(l *Ledger) {
		if c != nil {
			l.clock = c
		}
	}
}

// New returns an empty ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		deliveries: []Delivery{},
		ids:        UUIDv7Generator{},
		clock:      NewClock(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append adds d to the end of the log and returns it as stored.
//
// The id is generated when d.ID is empty. Seq, Over and BallInOver are
// always assigned by the ledger; any values on d are ignored. Append
// never rejects on over size: the engine, not the ledger, owns the
// six-ball boundary.
func (l *Ledger) Append(d Delivery) (Delivery, error) {
	if l.locked {
		return Delivery{}, lockedError("append")
	}
	if d.ID == "" {
		d.ID = l.ids.Generate()
	}
	pos := PositionFor(l.LegalCount())
	d.Seq = l.clock.Next()
	d.Over = pos.Over
	d.BallInOver = pos.BallInOver
	l.deliveries = append(l.deliveries, d)
	return d, nil
}

// Amend applies p to the delivery with the given id. Positions of other
// deliveries are not recomputed.
//
// An unknown id returns a NOT_FOUND error and changes nothing.
func (l *Ledger) Amend(id string, p Patch) (Delivery, error) {
	if l.locked {
		return Delivery{}, lockedError("amend")
	}
	i := l.indexOf(id)
	if i < 0 {
		return Delivery{}, notFoundError("amend", id)
	}
	l.deliveries[i] = p.Apply(l.deliveries[i])
	return l.deliveries[i], nil
}

// DeleteLast removes the most recent delivery. On an empty log it is a
// no-op and reports false.
func (l *Ledger) DeleteLast() (Delivery, bool, error) {
	if l.locked {
		return Delivery{}, false, lockedError("delete last")
	}
	n := len(l.deliveries)
	if n == 0 {
		return Delivery{}, false, nil
	}
	last := l.deliveries[n-1]
	l.deliveries = l.deliveries[:n-1]
	return last, true, nil
}

// Delete removes the delivery with the given id from any position.
func (l *Ledger) Delete(id string) (Delivery, error) {
	if l.locked {
		return Delivery{}, lockedError("delete")
	}
	i := l.indexOf(id)
	if i < 0 {
		return Delivery{}, notFoundError("delete", id)
	}
	removed := l.deliveries[i]
	l.deliveries = append(l.deliveries[:i], l.deliveries[i+1:]...)
	return removed, nil
}

// Lock rejects all further mutations. Locking is permanent.
func (l *Ledger) Lock() {
	l.locked = true
}

// Locked reports whether Lock has been called.
func (l *Ledger) Locked() bool {
	return l.locked
}

// Get returns the delivery with the given id.
func (l *Ledger) Get(id string) (Delivery, bool) {
	i := l.indexOf(id)
	if i < 0 {
		return Delivery{}, false
	}
	return l.deliveries[i], true
}

// At returns the delivery at 0-based log index i.
func (l *Ledger) At(i int) (Delivery, bool) {
	if i < 0 || i >= len(l.deliveries) {
		return Delivery{}, false
	}
	return l.deliveries[i], true
}

// Deliveries returns a copy of the log in bowling order.
// Returns an empty slice, never nil.
func (l *Ledger) Deliveries() []Delivery {
	out := make([]Delivery, len(l.deliveries))
	copy(out, l.deliveries)
	return out
}

// Len returns the number of deliveries in the log.
func (l *Ledger) Len() int {
	return len(l.deliveries)
}

// LegalCount returns the number of legal deliveries in the log.
func (l *Ledger) LegalCount() int {
	n := 0
	for _, d := range l.deliveries {
		if d.Legal() {
			n++
		}
	}
	return n
}

// Positions re-derives the over/ball-in-over of every delivery from the
// current order of the log, parallel to Deliveries.
func (l *Ledger) Positions() []Position {
	out := make([]Position, len(l.deliveries))
	legal := 0
	for i, d := range l.deliveries {
		out[i] = PositionFor(legal)
		if d.Legal() {
			legal++
		}
	}
	return out
}

func (l *Ledger) indexOf(id string) int {
	for i, d := range l.deliveries {
		if d.ID == id {
			return i
		}
	}
	return -1
}
