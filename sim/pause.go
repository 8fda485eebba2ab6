package sim

// PauseChoice is the outcome of pause menu input
type PauseChoice int

const (
	PauseNone PauseChoice = iota
	PauseResume
	PauseMainMenu
)

// PauseItems are the pause menu entries in order
var PauseItems = []string{"Resume", "Main Menu"}

// PauseMenu tracks who paused and restores menu control on resume
type PauseMenu struct {
	Selected int

	session        *Session
	paused         bool
	owner          int
	prevController int
}

// NewPauseMenu creates a pause menu bound to a session
func NewPauseMenu(s *Session) *PauseMenu {
	return &PauseMenu{session: s, owner: NoPlayer, prevController: NoPlayer}
}

// Paused reports whether the game is paused
func (p *PauseMenu) Paused() bool { return p.paused }

// Owner returns the pausing player
func (p *PauseMenu) Owner() int { return p.owner }

// Pause hands menu control to player
func (p *PauseMenu) Pause(player int) {
	if p.paused {
		return
	}
	p.paused = true
	p.owner = player
	p.Selected = 0
	p.prevController = p.session.MenuController
	p.session.MenuController = player
}

// Resume gives menu control back to whoever held it before the pause
func (p *PauseMenu) Resume() {
	if !p.paused {
		return
	}
	p.paused = false
	p.owner = NoPlayer
	p.session.MenuController = p.prevController
}

// Update handles pause input. While unpaused any of players may pause;
// while paused only the owner drives the menu.
func (p *PauseMenu) Update(menu *MenuInput, players []int) PauseChoice {
	if !p.paused {
		for _, pl := range players {
			if menu.Pressed(ActionPause, pl) {
				p.Pause(pl)
				break
			}
		}
		return PauseNone
	}

	o := p.owner
	switch {
	case menu.Pressed(ActionPause, o), menu.Pressed(ActionBack, o):
		p.Resume()
		return PauseResume
	case menu.Pressed(ActionUp, o):
		p.Selected = (p.Selected + len(PauseItems) - 1) % len(PauseItems)
	case menu.Pressed(ActionDown, o):
		p.Selected = (p.Selected + 1) % len(PauseItems)
	case menu.Pressed(ActionConfirm, o):
		choice := PauseResume
		if p.Selected == 1 {
			choice = PauseMainMenu
		}
		p.Resume()
		return choice
	}
	return PauseNone
}
