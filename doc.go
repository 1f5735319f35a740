// Package barrage is a fixed-timestep 2D bullet-dodging game engine.
//
// The simulation core is pure Go and host-agnostic. Hosts drive it through
// three narrow interfaces defined in this package: a Game advanced one frame
// at a time, a KeySet of currently pressed keys, and a Renderer that strokes
// primitives onto whatever surface the host owns.
//
// # Architecture Overview
//
// The module is organized into packages with distinct responsibilities:
//
//	barrage/             Root package with the Game, Renderer and KeySet interfaces
//	├── geom/            Points, vectors and rectangles
//	├── engine/          Fixed-timestep loop, key state, input queue
//	├── game/            The shooter: level, player, enemies, bullets
//	├── stage/           YAML stage definitions and the embedded default stage
//	├── pattern/         Bullet pattern sources, including wazero-hosted WASM plugins
//	├── render/
//	│   └── imagecanvas/ Renderer over image.RGBA for previews and tests
//	├── score/           SQLite hiscore store
//	├── config/          Environment configuration
//	├── errors/          Structured error types
//	└── cmd/
//	    ├── wasm/        Browser host bridge (js/wasm, canvas 2D)
//	    ├── play/        Terminal host (bubbletea)
//	    └── serve/       Development server for the web assets
//
// # Quick Start
//
// Run a game headlessly:
//
//	st, _ := stage.Default()
//	g := game.New(st, nil)
//	if err := g.Initialize(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	loop := engine.NewLoop(0)
//	keys := engine.NewKeyState()
//	input := engine.NewInput(0)
//	loop.Step(16.7, input, keys, g, renderer)
//
// Hosts schedule Step however their environment dictates: the browser build
// calls it from a requestAnimationFrame callback with the performance-clock
// timestamp, the terminal build from a 60 Hz tick message. The loop converts
// wall-clock deltas into whole simulation frames, so all hosts produce the
// same sequence of updates for the same inputs.
//
// # Concurrency Model
//
// The simulation is single-threaded and cooperative: one goroutine owns the
// Game and calls Step. Host event handlers run on other goroutines and only
// touch the engine.Input queue, which is the sole synchronized boundary.
package barrage
