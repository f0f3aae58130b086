package component

// AnimationStatus is the logical animation an entity is playing
type AnimationStatus uint8

const (
	AnimIdle AnimationStatus = iota
	AnimMoving
	AnimJumping
	AnimActivated
	AnimRotating
	AnimExploding
	AnimSpent
	AnimConsumed
	AnimFlying
	AnimImpact
	AnimDying
	AnimHurt
)

var animationStatusNames = [...]string{
	"idle", "moving", "jumping", "activated", "rotating", "exploding",
	"spent", "consumed", "flying", "impact", "dying", "hurt",
}

func (s AnimationStatus) String() string {
	if int(s) < len(animationStatusNames) {
		return animationStatusNames[s]
	}
	return "invalid"
}

// Animator is the frame clock an entity consults to sequence its effects
type Animator interface {
	Status() AnimationStatus
	// TimerReachedZero reports that the last frame of the current status has elapsed
	TimerReachedZero() bool
	FrameIndex() int
	FrameCount() int
	SetStatus(AnimationStatus)
	// Advance moves the clock by one update
	Advance()
}

// AnimationComponent is a frame clock driven by entity updates (pure data plus clock logic)
// Each status owns a frame count; every frame lasts TicksPerFrame updates
type AnimationComponent struct {
	Frames        map[AnimationStatus]int
	TicksPerFrame int

	status AnimationStatus
	frame  int
	timer  int
}

// NewAnimation returns a clock in the idle status
func NewAnimation(ticksPerFrame int, frames map[AnimationStatus]int) *AnimationComponent {
	if ticksPerFrame < 1 {
		ticksPerFrame = 1
	}
	a := &AnimationComponent{Frames: frames, TicksPerFrame: ticksPerFrame}
	a.reset()
	return a
}

func (a *AnimationComponent) Status() AnimationStatus { return a.status }

func (a *AnimationComponent) FrameIndex() int { return a.frame }

// FrameCount returns the frames of the current status, 1 when unlisted
func (a *AnimationComponent) FrameCount() int {
	if n, ok := a.Frames[a.status]; ok && n > 0 {
		return n
	}
	return 1
}

func (a *AnimationComponent) TimerReachedZero() bool {
	return a.frame == a.FrameCount()-1 && a.timer == 0
}

// SetStatus restarts the clock on a status change, no-op when unchanged
func (a *AnimationComponent) SetStatus(s AnimationStatus) {
	if s == a.status {
		return
	}
	a.status = s
	a.reset()
}

func (a *AnimationComponent) Advance() {
	if a.timer > 0 {
		a.timer--
	}
	if a.timer == 0 && a.frame < a.FrameCount()-1 {
		a.frame++
		a.timer = a.TicksPerFrame
	}
}

func (a *AnimationComponent) reset() {
	a.frame = 0
	a.timer = a.TicksPerFrame
}
