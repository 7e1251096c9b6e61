package field

import "testing"

func TestNewCell(t *testing.T) {
	c := newCell()
	if c.IsAlive() {
		t.Fatalf("new cell is alive")
	}
	if !c.HasChanged() {
		t.Fatalf("new cell should be marked as changed")
	}
}

func TestCellCommit(t *testing.T) {
	c := newCell()

	c.MakeAlive()
	if c.IsAlive() {
		t.Fatalf("intent is visible before commit")
	}
	c.Commit()
	if !c.IsAlive() || !c.HasChanged() {
		t.Fatalf("after dead->alive commit alive=%v changed=%v", c.IsAlive(), c.HasChanged())
	}

	c.MakeAlive()
	c.Commit()
	if !c.IsAlive() || c.HasChanged() {
		t.Fatalf("after alive->alive commit alive=%v changed=%v", c.IsAlive(), c.HasChanged())
	}

	c.SetIntent(false)
	c.SetIntent(false)
	c.Commit()
	if c.IsAlive() || !c.HasChanged() {
		t.Fatalf("after alive->dead commit alive=%v changed=%v", c.IsAlive(), c.HasChanged())
	}

	c.Commit()
	if c.IsAlive() || c.HasChanged() {
		t.Fatalf("after dead->dead commit alive=%v changed=%v", c.IsAlive(), c.HasChanged())
	}
}
