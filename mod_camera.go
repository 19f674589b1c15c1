package blaster

import (
	"math"

	"github.com/gekko3d/blaster/fx/core"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraModule provides the core.CameraState resource that the particle step
// billboards against. Arrow keys orbit the camera around Target.
type CameraModule struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	// OrbitSpeed is in radians per second.
	OrbitSpeed float32
}

type CameraRig struct {
	Target     mgl32.Vec3
	OrbitSpeed float32
	ZoomSpeed  float32
}

func (mod CameraModule) Install(app *App, cmd *Commands) {
	cam := core.NewCameraState()
	if mod.Position != (mgl32.Vec3{}) {
		cam.Position = mod.Position
	}
	cam.LookAt(mod.Target)

	speed := mod.OrbitSpeed
	if speed == 0 {
		speed = 1
	}
	cmd.AddResources(cam, &CameraRig{Target: mod.Target, OrbitSpeed: speed, ZoomSpeed: 5})
	cmd.UseSystem(System(cameraControlSystem).InStage(PreUpdate))
}

func cameraControlSystem(cam *core.CameraState, rig *CameraRig, input *Input, t *Time) {
	cam.SetViewport(input.WindowWidth, input.WindowHeight)

	dt := t.Delta()
	var yaw, zoom float32
	if input.Pressed[KeyLeft] {
		yaw -= rig.OrbitSpeed * dt
	}
	if input.Pressed[KeyRight] {
		yaw += rig.OrbitSpeed * dt
	}
	if input.Pressed[KeyUp] {
		zoom -= rig.ZoomSpeed * dt
	}
	if input.Pressed[KeyDown] {
		zoom += rig.ZoomSpeed * dt
	}
	if yaw == 0 && zoom == 0 {
		return
	}
	orbitCamera(cam, rig.Target, yaw, zoom)
}

// orbitCamera rotates the camera about the vertical axis through target and
// moves it along the view ray, keeping at least one unit of distance.
func orbitCamera(cam *core.CameraState, target mgl32.Vec3, yaw, zoom float32) {
	offset := cam.Position.Sub(target)
	sin, cos := math.Sincos(float64(yaw))
	offset = mgl32.Vec3{
		offset.X()*float32(cos) - offset.Z()*float32(sin),
		offset.Y(),
		offset.X()*float32(sin) + offset.Z()*float32(cos),
	}
	dist := offset.Len()
	if dist > 1e-6 {
		next := max(dist+zoom, 1)
		offset = offset.Mul(next / dist)
	}
	cam.Position = target.Add(offset)
	cam.LookAt(target)
}
