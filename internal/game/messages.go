package game

// Messages are the advisory lines shown at the top of the playfield.
var Messages = []string{
	"You're in a Stateless Relationship",
	"Too much Padding in life?",
	"Don't let null values bring you down",
	"Widget overflow detected in your heart",
	"Hot reload your attitude!",
	"setState() your mind",
	"Building... please wait",
	"Async/await for better days",
	"Your code is more stable than this game",
}

func (e *Engine) pickMessage() {
	e.session.Message = Messages[e.rng.Intn(len(Messages))]
	e.session.MessageTicks = e.tuning.Message.Ticks
}

func (e *Engine) stepMessage() {
	e.session.MessageTicks--
	if e.session.MessageTicks <= 0 {
		e.pickMessage()
	}
}
