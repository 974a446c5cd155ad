package scheduler

// Outcome is the result of reviewing one card. The set of outcomes is closed:
// Correct, Wrong, Edit and Delete.
type Outcome interface {
	outcome()
}

// Correct promotes the card to the next box.
type Correct struct{}

// Wrong sends the card back to box 1.
type Wrong struct{}

// Edit replaces the card content. Blank fields keep the stored value.
type Edit struct {
	Question string
	Answer   string
}

// Delete removes the card.
type Delete struct{}

func (Correct) outcome() {}
func (Wrong) outcome()   {}
func (Edit) outcome()    {}
func (Delete) outcome()  {}
