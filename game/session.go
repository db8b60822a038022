package game

// Session tracks play state and per-session statistics. The loop stops
// advancing the simulation while paused; time and distance only
// accumulate during play.
type Session struct {
	paused      bool
	gameTime    float64
	sessionTime float64
	distance    float64
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) Update(dt float64) {
	if s.paused {
		return
	}
	s.gameTime += dt
	s.sessionTime += dt
}

func (s *Session) TogglePause()  { s.paused = !s.paused }
func (s *Session) Pause()        { s.paused = true }
func (s *Session) Resume()       { s.paused = false }
func (s *Session) Playing() bool { return !s.paused }
func (s *Session) Paused() bool  { return s.paused }

// Restart begins a new session but keeps total game time running.
func (s *Session) Restart() {
	s.paused = false
	s.sessionTime = 0
	s.distance = 0
}

func (s *Session) AddDistance(d float64) { s.distance += d }

func (s *Session) GameTime() float64    { return s.gameTime }
func (s *Session) SessionTime() float64 { return s.sessionTime }
func (s *Session) Distance() float64    { return s.distance }
