package ledger

// WicketKind names how a batter was dismissed.
type WicketKind string

const (
	WicketBowled  WicketKind = "Bowled"
	WicketCaught  WicketKind = "Caught"
	WicketRunOut  WicketKind = "Run-out"
	WicketLBW     WicketKind = "LBW"
	WicketStumped WicketKind = "Stumped"
)

// WicketKinds lists the supported dismissal kinds in display order.
var WicketKinds = []WicketKind{WicketBowled, WicketCaught, WicketRunOut, WicketLBW, WicketStumped}

// Valid reports whether k is one of the supported kinds.
func (k WicketKind) Valid() bool {
	for _, known := range WicketKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Delivery is one ball record.
//
// Runs already includes the one-run penalty for a wide or no-ball.
// Over and BallInOver are the position stamped when the delivery was
// appended; see Ledger.Positions for positions derived from the current log.
type Delivery struct {
	ID         string     `json:"id"`
	Seq        int64      `json:"seq"`
	Over       int        `json:"over"`
	BallInOver int        `json:"ball_in_over"`
	Runs       int        `json:"runs"`
	Wide       bool       `json:"wide,omitempty"`
	NoBall     bool       `json:"no_ball,omitempty"`
	Bye        bool       `json:"bye,omitempty"`
	LegBye     bool       `json:"leg_bye,omitempty"`
	Wicket     bool       `json:"wicket,omitempty"`
	WicketKind WicketKind `json:"wicket_kind,omitempty"`
	StrikerID  string     `json:"striker_id"`
	BowlerID   string     `json:"bowler_id"`
}

// Legal reports whether the delivery counts toward the six-ball over.
func (d Delivery) Legal() bool {
	return !d.Wide && !d.NoBall
}

// Penalty returns the extra run folded into Runs for a wide or no-ball.
func (d Delivery) Penalty() int {
	if d.Legal() {
		return 0
	}
	return 1
}

// RunsOffBat returns Runs without the penalty run.
func (d Delivery) RunsOffBat() int {
	r := d.Runs - d.Penalty()
	if r < 0 {
		return 0
	}
	return r
}

// Patch is a partial update applied by Amend. Nil fields are left as is.
type Patch struct {
	Runs       *int        `json:"runs,omitempty" yaml:"runs,omitempty"`
	Wide       *bool       `json:"wide,omitempty" yaml:"wide,omitempty"`
	NoBall     *bool       `json:"no_ball,omitempty" yaml:"no_ball,omitempty"`
	Bye        *bool       `json:"bye,omitempty" yaml:"bye,omitempty"`
	LegBye     *bool       `json:"leg_bye,omitempty" yaml:"leg_bye,omitempty"`
	Wicket     *bool       `json:"wicket,omitempty" yaml:"wicket,omitempty"`
	WicketKind *WicketKind `json:"wicket_kind,omitempty" yaml:"wicket_kind,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Runs == nil && p.Wide == nil && p.NoBall == nil && p.Bye == nil &&
		p.LegBye == nil && p.Wicket == nil && p.WicketKind == nil
}

// Apply returns d with the patch's fields replaced.
func (p Patch) Apply(d Delivery) Delivery {
	if p.Runs != nil {
		d.Runs = *p.Runs
	}
	if p.Wide != nil {
		d.Wide = *p.Wide
	}
	if p.NoBall != nil {
		d.NoBall = *p.NoBall
	}
	if p.Bye != nil {
		d.Bye = *p.Bye
	}
	if p.LegBye != nil {
		d.LegBye = *p.LegBye
	}
	if p.Wicket != nil {
		d.Wicket = *p.Wicket
		if !d.Wicket {
			d.WicketKind = ""
		}
	}
	if p.WicketKind != nil {
		d.WicketKind = *p.WicketKind
	}
	return d
}

// Position is an over/ball-in-over pair.
type Position struct {
	Over       int `json:"over"`
	BallInOver int `json:"ball_in_over"`
}

// PositionFor derives the position of the next delivery after legal prior
// legal deliveries.
func PositionFor(legal int) Position {
	return Position{Over: legal / 6, BallInOver: legal % 6}
}
