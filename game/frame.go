package game

import (
	"github.com/bytearena/streetboids/common/utils/vector"
	"github.com/bytearena/streetboids/game/boid"
	"github.com/bytearena/streetboids/game/street"
)

type FrameStreet struct {
	From  vector.Vector2 `json:"from"`
	To    vector.Vector2 `json:"to"`
	Width float64        `json:"width"`
	Color string         `json:"color"`
}

type FrameBoid struct {
	Id       int            `json:"id"`
	Type     boid.Type      `json:"type"`
	Position vector.Vector2 `json:"position"`
	Velocity vector.Vector2 `json:"velocity"`
	Radius   float64        `json:"radius"`
	Color    string         `json:"color"`
	Street   int            `json:"street"`
}

// Frame is a read-only copy of the world, safe to hand to other goroutines.
type Frame struct {
	WorldId  string        `json:"world"`
	Turn     uint32        `json:"turn"`
	Viewport Viewport      `json:"viewport"`
	Streets  []FrameStreet `json:"streets"`
	Boids    []FrameBoid   `json:"boids"`
}

func (w *World) Snapshot() Frame {
	frame := Frame{
		WorldId:  w.id.String(),
		Turn:     w.turn.GetSeq(),
		Viewport: w.viewport,
		Streets:  make([]FrameStreet, 0, w.streets.Len()),
		Boids:    make([]FrameBoid, 0, len(w.boids)),
	}

	for _, s := range w.streets.Streets() {
		frame.Streets = append(frame.Streets, FrameStreet{
			From:  s.StartingPoint,
			To:    s.End(),
			Width: s.Width,
			Color: street.Color,
		})
	}

	for _, b := range w.activeBoids() {
		frame.Boids = append(frame.Boids, FrameBoid{
			Id:       b.GetId(),
			Type:     b.GetType(),
			Position: b.GetPosition(),
			Velocity: b.GetVelocity(),
			Radius:   b.GetRadius(),
			Color:    b.GetColor(),
			Street:   b.GetStreetIdx(),
		})
	}

	return frame
}
