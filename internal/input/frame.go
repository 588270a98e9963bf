package input

import "github.com/go-gl/glfw/v3.3/glfw"

// Frame is the per-frame input snapshot the renderer contract's input
// layer promises: a pointer delta plus scroll since the last frame, and
// a {up, left, down, right, pointer} boolean map. It's consumed
// directly by internal/camera.Update(dx, dy, dscroll).
type Frame struct {
	DX, DY, DScroll float64
	Up, Left, Down, Right bool
	Pointer bool
}

// HandleCursorPosEvent accumulates a raw GLFW cursor-move callback into
// the frame's pending delta. Deltas accumulate between calls to
// ConsumeFrame so a pointer-lock callback firing multiple times per
// render frame doesn't lose motion.
func (im *InputManager) HandleCursorPosEvent(x, y float64) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if im.havePointer {
		im.pendingDX += x - im.lastX
		im.pendingDY += y - im.lastY
	}
	im.lastX, im.lastY = x, y
	im.havePointer = true
}

// HandleScrollEvent accumulates a raw GLFW scroll callback.
func (im *InputManager) HandleScrollEvent(yoff float64) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.pendingDScroll += yoff
}

// SetPointerLocked marks whether the pointer is currently captured.
// Per §6, a frame's dx/dy/dscroll are only meaningful while the pointer
// is locked; ConsumeFrame still reports them but sets Pointer false so
// a camera consuming the frame can ignore them.
func (im *InputManager) SetPointerLocked(locked bool) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.pointerLocked = locked
	if !locked {
		im.havePointer = false
	}
}

// SetCursorPosCallback wires cursor-move and scroll GLFW callbacks the
// same way SetKeyCallback wires key events.
func (im *InputManager) SetCursorPosCallback(window *glfw.Window) {
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		im.HandleCursorPosEvent(x, y)
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		im.HandleScrollEvent(yoff)
	})
}

// ConsumeFrame drains the pending pointer delta and scroll into a Frame
// and reports the directional action map, then resets the accumulators
// for the next frame. Movement actions (WASD by default) stand in for
// §6's abstract up/left/down/right.
func (im *InputManager) ConsumeFrame() Frame {
	im.mu.Lock()
	f := Frame{
		DX:      im.pendingDX,
		DY:      im.pendingDY,
		DScroll: im.pendingDScroll,
		Pointer: im.pointerLocked,
	}
	im.pendingDX, im.pendingDY, im.pendingDScroll = 0, 0, 0
	im.mu.Unlock()

	f.Up = im.IsActive(ActionMoveForward)
	f.Down = im.IsActive(ActionMoveBackward)
	f.Left = im.IsActive(ActionMoveLeft)
	f.Right = im.IsActive(ActionMoveRight)
	return f
}
