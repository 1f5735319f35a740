package stage

import (
	goerrors "errors"
	"strings"
	"testing"

	"github.com/barragelab/barrage/errors"
)

func TestDefaultStage(t *testing.T) {
	st, err := Default()
	if err != nil {
		t.Fatalf("Default error: %v", err)
	}

	if st.Name != "opening" {
		t.Errorf("name = %q", st.Name)
	}
	if st.Canvas.Width != 600 || st.Canvas.Height != 600 {
		t.Errorf("canvas = %+v", st.Canvas)
	}
	if st.Field.X != 50 || st.Field.Y != 30 || st.Field.Width != 500 || st.Field.Height != 540 {
		t.Errorf("field = %+v", st.Field)
	}
	if st.Player.Pos.X != 300 || st.Player.Pos.Y != 475 {
		t.Errorf("player pos = %+v", st.Player.Pos)
	}
	if st.Player.Lives != 3 {
		t.Errorf("lives = %d", st.Player.Lives)
	}
	if len(st.Bullets) != 4 {
		t.Fatalf("expected 4 bullets, got %d", len(st.Bullets))
	}
	if len(st.Enemies) != 1 {
		t.Fatalf("expected 1 enemy, got %d", len(st.Enemies))
	}

	accel := st.Bullets[1]
	if len(accel.Events) != 1 || accel.Events[0].At != 60 || accel.Events[0].SetAcc == nil {
		t.Errorf("expected a set_acc event at frame 60, got %+v", accel.Events)
	}
	if got := accel.Events[0].SetAcc; got.X != 0.05 || got.Y != 0.02 {
		t.Errorf("set_acc = %+v", got)
	}

	spawns := st.Enemies[0].Spawns
	if len(spawns) != 1 || spawns[0].At != 180 || spawns[0].Pos.X != 100 {
		t.Errorf("enemy spawns = %+v", spawns)
	}
}

func TestParseDefaults(t *testing.T) {
	st, err := Parse([]byte(`
name: tiny
field: {x: 0, y: 0, width: 600, height: 600}
player:
  pos: {x: 300, y: 300}
`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if st.Canvas.Width != 600 || st.Canvas.Height != 600 {
		t.Errorf("expected default canvas 600x600, got %+v", st.Canvas)
	}
	if st.Player.Lives != 3 {
		t.Errorf("expected default 3 lives, got %d", st.Player.Lives)
	}
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("\t:not yaml"))
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !goerrors.Is(err, &errors.Error{Phase: errors.PhaseStage, Kind: errors.KindInvalidData}) {
		t.Fatalf("expected stage/invalid_data, got %v", err)
	}
}

func TestValidateFailures(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{
			"field outside canvas",
			`
field: {x: 500, y: 30, width: 200, height: 540}
player: {pos: {x: 550, y: 300}}
`,
			"field exceeds the canvas",
		},
		{
			"player outside field",
			`
field: {x: 50, y: 30, width: 500, height: 540}
player: {pos: {x: 10, y: 10}}
`,
			"player starts outside",
		},
		{
			"event with two actions",
			`
field: {x: 50, y: 30, width: 500, height: 540}
player: {pos: {x: 300, y: 475}}
bullets:
  - pos: {x: 300, y: 50}
    vel: {x: 0, y: 4}
    events:
      - at: 60
        set_vel: {x: 1, y: 1}
        set_acc: {x: 0, y: 0.1}
`,
			"exactly one action",
		},
		{
			"events out of order",
			`
field: {x: 50, y: 30, width: 500, height: 540}
player: {pos: {x: 300, y: 475}}
bullets:
  - pos: {x: 300, y: 50}
    vel: {x: 0, y: 4}
    events:
      - at: 60
        set_acc: {x: 0, y: 0.1}
      - at: 30
        set_vel: {x: 1, y: 1}
`,
			"strictly increasing",
		},
		{
			"enemy with pattern and spawns",
			`
field: {x: 50, y: 30, width: 500, height: 540}
player: {pos: {x: 300, y: 475}}
enemies:
  - pos: {x: 300, y: 50}
    pattern: burst
    spawns:
      - at: 10
        pos: {x: 100, y: 100}
        vel: {x: 0, y: 0}
`,
			"mutually exclusive",
		},
		{
			"spawn at frame zero",
			`
field: {x: 50, y: 30, width: 500, height: 540}
player: {pos: {x: 300, y: 475}}
enemies:
  - pos: {x: 300, y: 50}
    spawns:
      - at: 0
        pos: {x: 100, y: 100}
        vel: {x: 0, y: 0}
`,
			"spawn frame must be positive",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !goerrors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindNotFound}) {
		t.Fatalf("expected load/not_found, got %v", err)
	}
}
