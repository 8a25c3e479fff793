package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	arena "go-arena"
)

func TestPublishNeverBlocks(t *testing.T) {
	st := MakeState()

	// Nobody consumes; pushing far past the channel capacity must
	// still return.
	for i := 0; i < 3*cap(st.Events); i++ {
		st.Publish("move", uuid.Nil, arena.Message{"n": i})
	}

	if len(st.Events) != cap(st.Events) {
		t.Errorf("backlog holds %d events", len(st.Events))
	}
	ev := <-st.Events
	if ev.Type != "move" {
		t.Errorf("event type is %q", ev.Type)
	}
	if ev.Stamp.IsZero() {
		t.Error("event has no timestamp")
	}
}

type nop struct{}

func (nop) Start(*State, *Conf) {}
func (nop) Shutdown()           {}
func (nop) String() string      { return "nop" }

func TestRegister(t *testing.T) {
	st := MakeState()
	st.Register(nop{})
	if st.Database != nil {
		t.Error("plain manager mistaken for a database")
	}
	if len(st.Managers) != 1 {
		t.Errorf("%d managers registered", len(st.Managers))
	}

	st.Running = true
	defer func() {
		if recover() == nil {
			t.Error("late registration did not panic")
		}
	}()
	st.Register(nop{})
}

// A configuration file decodes over the flag-set defaults, so its
// values win over the command line.
func TestConfFilePrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.toml")
	err := os.WriteFile(path, []byte("[game]\nmove-timeout = 5000000000\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	old := cfile
	cfile = path
	defer func() { cfile = old }()

	c := LoadConf()
	if c.Game.MoveTimeout != 5*time.Second {
		t.Errorf("move timeout is %s, want the file's 5s", c.Game.MoveTimeout)
	}
	// Sections the file omits keep their defaults.
	if c.Isol.Image != defaultConfig.Isol.Image {
		t.Errorf("image became %q", c.Isol.Image)
	}
}

func TestConfRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := defaultConfig.Dump(&buf); err != nil {
		t.Fatal(err)
	}

	var c Conf
	if _, err := toml.NewDecoder(&buf).Decode(&c); err != nil {
		t.Fatal(err)
	}

	if c.Game.MoveTimeout != defaultConfig.Game.MoveTimeout {
		t.Errorf("move timeout became %s", c.Game.MoveTimeout)
	}
	if c.Isol.Image != defaultConfig.Isol.Image {
		t.Errorf("image became %q", c.Isol.Image)
	}
	if c.Tourn.Games != defaultConfig.Tourn.Games {
		t.Errorf("games became %d", c.Tourn.Games)
	}
}
