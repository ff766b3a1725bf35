package types

import (
	"github.com/bytearena/streetboids/game"
	"github.com/bytearena/streetboids/game/boid"
	"github.com/pkg/errors"
)

const (
	MessageInit   = "init"
	MessageFrame  = "frame"
	MessageParams = "params"
	MessageError  = "error"
)

type VizMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type VizInitMessageData struct {
	Tps    int         `json:"tps"`
	Frame  game.Frame  `json:"frame"`
	Params game.Params `json:"params"`
}

// IncomingMessage is sent by the viz client when the user moves a control.
type IncomingMessage struct {
	Type     string  `json:"type"`
	Value    float64 `json:"value"`
	BoidType string  `json:"boidtype"`
	Enabled  bool    `json:"enabled"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

const (
	IncomingCaution         = "caution"
	IncomingQuickness       = "quickness"
	IncomingSliderCaution   = "slider-caution"
	IncomingSliderQuickness = "slider-quickness"
	IncomingEnable          = "enable"
	IncomingResize          = "resize"
)

// Apply forwards one client message to the simulation.
func (msg IncomingMessage) Apply(instance SimulationInstance) error {
	switch msg.Type {
	case IncomingCaution:
		return instance.SetCaution(msg.Value)
	case IncomingQuickness:
		return instance.SetQuickness(msg.Value)
	case IncomingSliderCaution:
		return instance.SetCaution(game.CautionFromSlider(msg.Value))
	case IncomingSliderQuickness:
		return instance.SetQuickness(game.QuicknessFromSlider(msg.Value))
	case IncomingEnable:
		t, ok := boid.ParseType(msg.BoidType)
		if !ok {
			return errors.Errorf("unknown boid type %q", msg.BoidType)
		}
		return instance.SetTypeEnabled(t, msg.Enabled)
	case IncomingResize:
		return instance.Resize(msg.Width, msg.Height)
	}

	return errors.Errorf("unknown message type %q", msg.Type)
}
