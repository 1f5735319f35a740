//go:build js && wasm

// Command wasm is the browser host. Compiled with GOOS=js GOARCH=wasm it
// exposes two globals to the page:
//
//	barrageStart(canvasId?, stageYaml?)  -> null | error string
//	barrageStop()                        -> null
//
// barrageStart binds a session to the canvas element, installs document
// key listeners and drives the loop from requestAnimationFrame, passing the
// callback's DOMHighResTimeStamp straight to the frame clock. When the run
// ends the session stops itself and invokes barrageOnGameOver(score) if the
// page defined it.
package main

import (
	"context"
	"math"
	"syscall/js"

	"github.com/barragelab/barrage/engine"
	"github.com/barragelab/barrage/game"
	"github.com/barragelab/barrage/geom"
	"github.com/barragelab/barrage/stage"
)

var current *session

func main() {
	js.Global().Set("barrageStart", js.FuncOf(start))
	js.Global().Set("barrageStop", js.FuncOf(stop))

	// Keep the Go runtime alive; the page drives everything via callbacks.
	select {}
}

func start(_ js.Value, args []js.Value) any {
	if current != nil {
		return "a session is already running; call barrageStop() first"
	}

	canvasID := "canvas"
	if len(args) > 0 {
		canvasID = args[0].String()
	}

	st, err := loadStage(args)
	if err != nil {
		return err.Error()
	}
	for _, e := range st.Enemies {
		if e.Pattern != "" {
			return "compiled patterns are not supported in the browser host"
		}
	}

	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", canvasID)
	if canvas.IsNull() {
		return "no canvas element with id " + canvasID
	}
	canvas.Set("width", st.Canvas.Width)
	canvas.Set("height", st.Canvas.Height)

	g := game.New(st, nil)
	if err := g.Initialize(context.Background()); err != nil {
		return err.Error()
	}

	s := &session{
		game:   g,
		render: newCanvasRenderer(canvas),
		loop:   engine.NewLoop(js.Global().Get("performance").Call("now").Float()),
		input:  engine.NewInput(0),
		keys:   engine.NewKeyState(),
	}
	s.install(doc)
	current = s
	return js.Null()
}

func stop(_ js.Value, _ []js.Value) any {
	if current != nil {
		current.teardown()
		current = nil
	}
	return js.Null()
}

func loadStage(args []js.Value) (*stage.Stage, error) {
	if len(args) > 1 && args[1].Type() == js.TypeString {
		return stage.Parse([]byte(args[1].String()))
	}
	return stage.Default()
}

// session owns one running game: its loop state, the DOM callbacks and the
// pending animation frame handle.
type session struct {
	game   *game.Shooter
	render *canvasRenderer
	loop   *engine.Loop
	input  *engine.Input
	keys   *engine.KeyState

	doc     js.Value
	frame   js.Func
	keydown js.Func
	keyup   js.Func
	rafID   int
}

func (s *session) install(doc js.Value) {
	s.doc = doc

	s.keydown = js.FuncOf(func(_ js.Value, args []js.Value) any {
		s.input.Push(engine.KeyEvent{Code: args[0].Get("code").String(), Down: true})
		return nil
	})
	s.keyup = js.FuncOf(func(_ js.Value, args []js.Value) any {
		s.input.Push(engine.KeyEvent{Code: args[0].Get("code").String(), Down: false})
		return nil
	})
	doc.Call("addEventListener", "keydown", s.keydown)
	doc.Call("addEventListener", "keyup", s.keyup)

	s.frame = js.FuncOf(func(_ js.Value, args []js.Value) any {
		s.loop.Step(args[0].Float(), s.input, s.keys, s.game, s.render)

		if s.game.Over() {
			score := s.game.Score()
			stop(js.Value{}, nil)
			if cb := js.Global().Get("barrageOnGameOver"); cb.Type() == js.TypeFunction {
				cb.Invoke(score)
			}
			return nil
		}

		s.rafID = js.Global().Call("requestAnimationFrame", s.frame).Int()
		return nil
	})
	s.rafID = js.Global().Call("requestAnimationFrame", s.frame).Int()
}

func (s *session) teardown() {
	js.Global().Call("cancelAnimationFrame", s.rafID)
	s.doc.Call("removeEventListener", "keydown", s.keydown)
	s.doc.Call("removeEventListener", "keyup", s.keyup)
	s.frame.Release()
	s.keydown.Release()
	s.keyup.Release()
}

// canvasRenderer strokes onto a CanvasRenderingContext2D.
type canvasRenderer struct {
	ctx js.Value
}

func newCanvasRenderer(canvas js.Value) *canvasRenderer {
	ctx := canvas.Call("getContext", "2d")
	ctx.Set("lineWidth", 2)
	return &canvasRenderer{ctx: ctx}
}

func (r *canvasRenderer) Clear(rect geom.Rect) {
	r.ctx.Call("clearRect", rect.X, rect.Y, rect.Width, rect.Height)
}

func (r *canvasRenderer) SetColor(name string) {
	r.ctx.Set("strokeStyle", name)
}

func (r *canvasRenderer) StrokeRect(rect geom.Rect) {
	r.ctx.Call("strokeRect", rect.X, rect.Y, rect.Width, rect.Height)
}

func (r *canvasRenderer) StrokeLine(a, b geom.Point) {
	r.ctx.Call("beginPath")
	r.ctx.Call("moveTo", a.X, a.Y)
	r.ctx.Call("lineTo", b.X, b.Y)
	r.ctx.Call("stroke")
}

func (r *canvasRenderer) StrokeCircle(center geom.Point, radius float32) {
	r.ctx.Call("beginPath")
	r.ctx.Call("arc", center.X, center.Y, radius, 0, 2*math.Pi)
	r.ctx.Call("stroke")
}
