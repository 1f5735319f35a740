package engine

// KeyState is the set of currently pressed key codes. It implements
// barrage.KeySet. KeyState is not synchronized: it belongs to the goroutine
// running the loop, and hosts feed it through an Input queue.
type KeyState struct {
	pressed map[string]struct{}
}

// NewKeyState returns an empty key state.
func NewKeyState() *KeyState {
	return &KeyState{pressed: make(map[string]struct{})}
}

// Pressed reports whether the key with the given code is held down.
func (k *KeyState) Pressed(code string) bool {
	_, ok := k.pressed[code]
	return ok
}

func (k *KeyState) press(code string) {
	k.pressed[code] = struct{}{}
}

func (k *KeyState) release(code string) {
	delete(k.pressed, code)
}
