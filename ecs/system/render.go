package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/splashfx/ecs"
	"github.com/milk9111/splashfx/ecs/component"
	"golang.org/x/image/colornames"
)

var (
	zoneFill     = color.RGBA{R: 40, G: 110, B: 220, A: 110}
	zoneEdge     = color.RGBA{R: 120, G: 180, B: 255, A: 220}
	solidFill    = color.RGBA{R: 90, G: 80, B: 70, A: 255}
	actorFill    = color.RGBA{R: 230, G: 200, B: 120, A: 255}
	wetActorFill = color.RGBA{R: 120, G: 220, B: 230, A: 255}
	rayColor     = colornames.Crimson
	hitColor     = colornames.Gold
)

// RenderSystem draws the world with flat shapes: zones, solids, actors and
// droplets. Debug adds splash rays and trigger state.
type RenderSystem struct {
	Debug bool
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func cameraTransform(w *ecs.World) (float64, float64, float64) {
	camX, camY, zoom := 0.0, 0.0, 1.0
	e, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return camX, camY, zoom
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		camX, camY = t.X, t.Y
	}
	if c, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok && c.Zoom > 0 {
		zoom = c.Zoom
	}
	return camX, camY, zoom
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	camX, camY, zoom := cameraTransform(w)
	rect := func(x, y, wd, ht float64, clr color.Color) {
		vector.FillRect(screen, float32((x-camX)*zoom), float32((y-camY)*zoom), float32(wd*zoom), float32(ht*zoom), clr, false)
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, b *component.PhysicsBody, t *component.Transform) {
		if !b.Static {
			return
		}
		wd, ht := bodySize(b)
		x, y := t.X+b.OffsetX, t.Y+b.OffsetY
		if !b.AlignTopLeft {
			x -= wd / 2
			y -= ht / 2
		}
		rect(x, y, wd, ht, solidFill)
	})

	for _, e := range ecs.Query(w, component.TransformComponent.Kind()) {
		box, ok := actorBounds(w, e)
		if !ok {
			continue
		}
		clr := actorFill
		if st, ok := ecs.Get(w, e, component.SplashTriggerComponent.Kind()); ok && st.Trigger.InWater() {
			clr = wetActorFill
		}
		rect(box.x, box.y, box.w, box.h, clr)
	}

	ecs.ForEach2(w, component.ParticleComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Particle, t *component.Transform) {
		fade := 1.0
		if p.Lifetime > 0 {
			fade = 1 - p.Age/p.Lifetime
		}
		clr := p.Color
		clr.A = uint8(float64(clr.A) * fade)
		vector.FillCircle(screen, float32((t.X-camX)*zoom), float32((t.Y-camY)*zoom), float32(p.Size*zoom), clr, true)
	})

	ecs.ForEach2(w, component.ZoneComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, z *component.Zone, t *component.Transform) {
		box, ok := zoneBounds(z, t)
		if !ok {
			return
		}
		rect(box.x, box.y, box.w, box.h, zoneFill)
		vector.StrokeRect(screen, float32((box.x-camX)*zoom), float32((box.y-camY)*zoom), float32(box.w*zoom), float32(box.h*zoom), 1, zoneEdge, false)
	})

	if r.Debug {
		r.drawDebug(w, screen, camX, camY, zoom)
	}
}

func (r *RenderSystem) drawDebug(w *ecs.World, screen *ebiten.Image, camX, camY, zoom float64) {
	line := 0
	ecs.ForEach(w, component.SplashTriggerComponent.Kind(), func(e ecs.Entity, st *component.SplashTrigger) {
		if st.Trigger == nil {
			return
		}
		if st.Count > 0 {
			o, a := st.Last.Origin, st.Last.Anchor
			vector.StrokeLine(screen, float32((o.X-camX)*zoom), float32((o.Y-camY)*zoom), float32((a.X-camX)*zoom), float32((a.Y-camY)*zoom), 1, rayColor, false)
			vector.FillCircle(screen, float32((a.X-camX)*zoom), float32((a.Y-camY)*zoom), 3, hitColor, false)
		}
		text := fmt.Sprintf("entity %s  in_water=%v  cooldown=%.2f  splashes=%d", e, st.Trigger.InWater(), st.Trigger.Cooldown(), st.Count)
		ebitenutil.DebugPrintAt(screen, text, 10, 24+line*16)
		line++
	})
}
