package game

// Notifier receives the events of a game. Calls are made on the goroutine that
// drives the game and must return quickly.
type Notifier interface {
	GameStarted(state BoardState)
	StonePlaced(state BoardState, move Move)
	SlotFull(column int)
	TurnChanged(player Player)
	Won(state BoardState)
	Draw(state BoardState)
}

// Fanout returns a notifier that passes every event to each of the specified
// notifiers in order. Nil notifiers are ignored.
func Fanout(notifiers ...Notifier) Notifier {
	var f fanout
	for _, n := range notifiers {
		if n != nil {
			f = append(f, n)
		}
	}

	return f
}

type fanout []Notifier

func (f fanout) GameStarted(state BoardState) {
	for _, n := range f {
		n.GameStarted(state)
	}
}

func (f fanout) StonePlaced(state BoardState, move Move) {
	for _, n := range f {
		n.StonePlaced(state, move)
	}
}

func (f fanout) SlotFull(column int) {
	for _, n := range f {
		n.SlotFull(column)
	}
}

func (f fanout) TurnChanged(player Player) {
	for _, n := range f {
		n.TurnChanged(player)
	}
}

func (f fanout) Won(state BoardState) {
	for _, n := range f {
		n.Won(state)
	}
}

func (f fanout) Draw(state BoardState) {
	for _, n := range f {
		n.Draw(state)
	}
}
