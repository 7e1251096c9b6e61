package field

//Cell is the state of a single grid slot
//three independent flags are packed into one byte:
//the committed state, the intent for the next generation and the "changed on last commit" mark
type Cell uint8

const (
	cellAlive Cell = 1 << iota
	cellPending
	cellChanged
)

//newCell returns the dead cell marked as changed, so the first consumer sees every cell as freshly set
func newCell() Cell {
	return cellChanged
}

//SetIntent records the state the cell should get on the next Commit
func (c *Cell) SetIntent(alive bool) {
	if alive {
		*c |= cellPending
	} else {
		*c &^= cellPending
	}
}

//MakeAlive records the alive intent
func (c *Cell) MakeAlive() {
	c.SetIntent(true)
}

//MakeDead records the dead intent
func (c *Cell) MakeDead() {
	c.SetIntent(false)
}

//Commit applies the intent to the committed state and recomputes the changed flag
func (c *Cell) Commit() {
	pending := *c&cellPending != 0
	next := *c &^ (cellAlive | cellChanged)
	if pending {
		next |= cellAlive
	}
	if pending != c.IsAlive() {
		next |= cellChanged
	}
	*c = next
}

//IsAlive returns the committed state
func (c Cell) IsAlive() bool {
	return c&cellAlive != 0
}

//HasChanged reports whether the last Commit flipped the committed state
func (c Cell) HasChanged() bool {
	return c&cellChanged != 0
}
