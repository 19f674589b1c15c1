package blaster

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyA int = iota
	KeyD
	KeyF
	KeyG
	KeyQ
	KeyR
	KeyS
	KeyW
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyF1
	KeyShift
	MouseButtonLeft
	MouseButtonRight
	keyCount
)

type InputModule struct{}

type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	MouseX, MouseY float64

	WindowWidth, WindowHeight int
}

// Set records the state of key for this frame and derives the edge flags.
func (input *Input) Set(key int, down bool) {
	if down && !input.Pressed[key] {
		input.JustPressed[key] = true
	}
	if !down && input.Pressed[key] {
		input.JustReleased[key] = true
	}
	input.Pressed[key] = down
}

func (input *Input) endFrame() {
	input.JustPressed = [keyCount]bool{}
	input.JustReleased = [keyCount]bool{}
}

// Install polls the window when one exists. Without a window the Input
// resource is driven through Set, which is how tests and headless runs feed it.
func (mod InputModule) Install(app *App, cmd *Commands) {
	input := &Input{}
	if ws, ok := Resource[WindowState](app); ok {
		input.WindowWidth, input.WindowHeight = ws.WindowWidth, ws.WindowHeight
		cmd.UseSystem(System(inputSystem).InStage(PreUpdate))
	}
	cmd.AddResources(input)
	cmd.UseSystem(System(inputEndFrameSystem).InStage(Finale))
}

func inputSystem(s *WindowState, input *Input, cmd *Commands) {
	glfw.PollEvents()
	if s.windowGlfw.ShouldClose() {
		cmd.Quit()
	}

	for key, glfwKey := range keyToGlfw {
		input.Set(key, s.windowGlfw.GetKey(glfwKey) == glfw.Press)
	}
	input.Set(MouseButtonLeft, s.windowGlfw.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press)
	input.Set(MouseButtonRight, s.windowGlfw.GetMouseButton(glfw.MouseButtonRight) == glfw.Press)

	input.MouseX, input.MouseY = s.windowGlfw.GetCursorPos()
	input.WindowWidth, input.WindowHeight = s.windowGlfw.GetSize()
}

func inputEndFrameSystem(input *Input) {
	input.endFrame()
}

var keyToGlfw = map[int]glfw.Key{
	KeyA:      glfw.KeyA,
	KeyD:      glfw.KeyD,
	KeyF:      glfw.KeyF,
	KeyG:      glfw.KeyG,
	KeyQ:      glfw.KeyQ,
	KeyR:      glfw.KeyR,
	KeyS:      glfw.KeyS,
	KeyW:      glfw.KeyW,
	KeySpace:  glfw.KeySpace,
	KeyEnter:  glfw.KeyEnter,
	KeyEscape: glfw.KeyEscape,
	KeyTab:    glfw.KeyTab,
	KeyRight:  glfw.KeyRight,
	KeyLeft:   glfw.KeyLeft,
	KeyDown:   glfw.KeyDown,
	KeyUp:     glfw.KeyUp,
	KeyF1:     glfw.KeyF1,
	KeyShift:  glfw.KeyLeftShift,
}
