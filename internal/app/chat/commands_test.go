package chat

import "testing"

func TestInterpreterActive(t *testing.T) {
	pool := NewPool(nil)
	alice, _ := newMember("1", "alice")
	bob, _ := newMember("2", "bob")
	pool.AddConnection(alice)
	pool.AddConnection(bob)

	if got := NewInterpreter(pool).Execute("active"); got != "(2) alice, bob" {
		t.Errorf("Expected %q, got %q", "(2) alice, bob", got)
	}
}

func TestInterpreterActiveCountsOpenButListsAll(t *testing.T) {
	pool := NewPool(nil)
	alice, _ := newMember("1", "alice")
	bob, bobConn := newMember("2", "bob")
	pool.AddConnection(alice)
	pool.AddConnection(bob)
	bobConn.setState(StateClosed)

	if got := NewInterpreter(pool).Execute("active"); got != "(1) alice, bob" {
		t.Errorf("Expected %q, got %q", "(1) alice, bob", got)
	}
}

func TestInterpreterHelp(t *testing.T) {
	i := NewInterpreter(NewPool(nil))

	if got := i.Execute("help"); got != HelpText {
		t.Errorf("Expected help text, got %q", got)
	}
}

func TestInterpreterUnknown(t *testing.T) {
	i := NewInterpreter(NewPool(nil))

	if got := i.Execute("foo"); got != "Command not found: foo" {
		t.Errorf("Expected %q, got %q", "Command not found: foo", got)
	}
	if i.Known("foo") || !i.Known("help") || !i.Known("active") {
		t.Error("Known() disagrees with the command set")
	}
}

func TestInterpreterDoesNotMutatePool(t *testing.T) {
	pool := NewPool(nil)
	alice, aliceConn := newMember("1", "alice")
	pool.AddConnection(alice)

	i := NewInterpreter(pool)
	i.Execute("active")
	i.Execute("help")
	i.Execute("nope")

	if pool.Len() != 1 || aliceConn.count() != 0 {
		t.Error("Interpreter must neither mutate the pool nor send frames")
	}
}
