package system

import (
	"math"

	"github.com/milk9111/splashfx/common"
	"github.com/milk9111/splashfx/ecs"
	"github.com/milk9111/splashfx/ecs/component"
)

// CameraSystem eases the camera so the player sits at the view centre. The
// camera transform is the view's top-left corner in world space.
type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if !ecs.IsAlive(w, cs.camEntity) {
		cs.camEntity, _ = ecs.First(w, component.CameraComponent.Kind())
	}
	if !ecs.IsAlive(w, cs.targetEntity) {
		cs.targetEntity, _ = ecs.First(w, component.PlayerTagComponent.Kind())
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	goalX := target.X - cam.Width/(2*zoom)
	goalY := target.Y - cam.Height/(2*zoom)

	// Smoothness is the fraction of the gap closed per 1/60s.
	alpha := 1.0
	if cam.Smoothness > 0 && cam.Smoothness < 1 {
		alpha = 1 - math.Pow(1-cam.Smoothness, w.TimeStep()*60)
	}
	camTransform.X = common.Lerp(camTransform.X, goalX, alpha)
	camTransform.Y = common.Lerp(camTransform.Y, goalY, alpha)
}
