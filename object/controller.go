package object

import "github.com/siana-blue/poufalouf/core"

// Intent is what a controller wants its character to do this update
type Intent struct {
	Direction core.Direction // NoDirection stands still
	Jump      bool
	Fire      bool
}

// Controller supplies intents to a character, one call per character update
type Controller interface {
	Intent() Intent
}

// ControllerFunc adapts a function to Controller
type ControllerFunc func() Intent

func (f ControllerFunc) Intent() Intent { return f() }

// Script replays a fixed list of intents, then idles or starts over when Loop is set
type Script struct {
	Steps []Intent
	Loop  bool
	next  int
}

func (s *Script) Intent() Intent {
	if len(s.Steps) == 0 {
		return Intent{}
	}
	if s.next >= len(s.Steps) {
		if !s.Loop {
			return Intent{}
		}
		s.next = 0
	}
	in := s.Steps[s.next]
	s.next++
	return in
}
