package handler

import (
	"encoding/json"
	"net/http"

	"github.com/bytearena/streetboids/common/utils"
	"github.com/bytearena/streetboids/game"
	"github.com/bytearena/streetboids/game/boid"
	"github.com/bytearena/streetboids/vizserver/types"
	"github.com/pkg/errors"
)

// ParamsRequest only touches the fields that are present.
type ParamsRequest struct {
	Caution   *float64           `json:"caution"`
	Quickness *float64           `json:"quickness"`
	Enabled   map[boid.Type]bool `json:"enabled"`
	Viewport  *game.Viewport     `json:"viewport"`
}

func (req ParamsRequest) apply(instance types.SimulationInstance) error {
	if req.Caution != nil {
		if err := instance.SetCaution(*req.Caution); err != nil {
			return err
		}
	}

	if req.Quickness != nil {
		if err := instance.SetQuickness(*req.Quickness); err != nil {
			return err
		}
	}

	for t, enabled := range req.Enabled {
		if err := instance.SetTypeEnabled(t, enabled); err != nil {
			return err
		}
	}

	if req.Viewport != nil {
		return instance.Resize(req.Viewport.Width, req.Viewport.Height)
	}

	return nil
}

func Params(vizworld *types.VizWorld) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		instance := vizworld.GetInstance()

		if r.Method == http.MethodPost {
			var req ParamsRequest

			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, errors.Wrap(err, "could not decode params"))
				return
			}

			if err := req.apply(instance); err != nil {
				writeError(w, err)
				return
			}
		}

		writeJSON(w, http.StatusOK, instance.GetParams())
	}
}

func writeError(w http.ResponseWriter, err error) {
	utils.Debug("viz-server", err.Error())
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	utils.Check(err, "Failed to marshal response")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
