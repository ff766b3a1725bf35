package types

import (
	"github.com/bytearena/streetboids/common/utils"
)

type VizWorld struct {
	instance SimulationInstance
	pool     *WatcherMap
}

func NewVizWorld(instance SimulationInstance) *VizWorld {
	return &VizWorld{
		pool:     NewWatcherMap(),
		instance: instance,
	}
}

func (vizworld *VizWorld) GetInstance() SimulationInstance {
	return vizworld.instance
}

func (vizworld *VizWorld) GetId() string {
	return vizworld.instance.GetWorldId()
}

// SetWatcher registers the watcher and sends it the current frame so the
// client can draw before the next tick.
func (vizworld *VizWorld) SetWatcher(watcher *Watcher) error {
	vizworld.pool.Set(watcher.GetId(), watcher)

	initMsg := VizMessage{
		Type: MessageInit,
		Data: VizInitMessageData{
			Tps:    vizworld.instance.GetTps(),
			Frame:  vizworld.instance.Snapshot(),
			Params: vizworld.instance.GetParams(),
		},
	}

	err := watcher.WriteJSON(initMsg)
	if err != nil {
		utils.Debug("viz-server", "Could not send init message JSON; "+err.Error())
	}

	return err
}

func (vizworld *VizWorld) RemoveWatcher(watcherid string) {
	vizworld.pool.Remove(watcherid)
}

func (vizworld *VizWorld) GetNumberWatchers() int {
	return vizworld.pool.Size()
}
