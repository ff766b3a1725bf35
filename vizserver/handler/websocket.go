package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/bytearena/streetboids/common/utils"
	"github.com/bytearena/streetboids/vizserver/types"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// Websocket streams frames to one watcher, at most framerate per second,
// and applies the parameter changes the watcher sends back. It returns
// when the client goes away or shutdown is closed.
func Websocket(vizworld *types.VizWorld, framerate rate.Limit, shutdown <-chan struct{}) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		}

		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Print("upgrade:", err)
			return
		}

		instance := vizworld.GetInstance()
		watcher := types.NewWatcher(c)

		// subscribe before the init frame so no tick falls in between
		frames := instance.SubscribeStateObservation()
		done := make(chan struct{})

		defer func() {
			close(done)
			instance.UnsubscribeStateObservation(frames)
			vizworld.RemoveWatcher(watcher.GetId())
			c.Close()
			utils.DebugWithContext("viz-server", "watcher left", utils.Context{
				"watcher":  watcher.GetId(),
				"watchers": vizworld.GetNumberWatchers(),
			})
		}()

		if err := vizworld.SetWatcher(watcher); err != nil {
			return
		}

		utils.DebugWithContext("viz-server", "watcher joined", utils.Context{
			"watcher":  watcher.GetId(),
			"watchers": vizworld.GetNumberWatchers(),
		})

		clientclosedsocket := make(chan struct{})
		incomingmsg := make(chan []byte)

		// reading is also how a client side close gets noticed
		go func(client *websocket.Conn) {
			defer close(clientclosedsocket)

			for {
				_, p, err := client.ReadMessage()
				if err != nil {
					return
				}

				select {
				case incomingmsg <- p:
				case <-done:
					return
				}
			}
		}(c)

		limiter := rate.NewLimiter(framerate, 1)

		for {
			select {
			case <-shutdown:
				c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			case <-clientclosedsocket:
				return
			case p := <-incomingmsg:
				if err := handleIncoming(watcher, instance, p); err != nil {
					return
				}
			case frame := <-frames:
				if !limiter.Allow() {
					continue
				}

				if err := watcher.WriteJSON(types.VizMessage{Type: types.MessageFrame, Data: frame}); err != nil {
					return
				}
			}
		}
	}
}

// handleIncoming answers every client message with the resulting params, or
// with an error message. Only a failed write is returned.
func handleIncoming(watcher *types.Watcher, instance types.SimulationInstance, p []byte) error {
	var msg types.IncomingMessage

	err := json.Unmarshal(p, &msg)
	if err == nil {
		err = msg.Apply(instance)
	} else {
		err = errors.Wrap(err, "could not decode message")
	}

	if err != nil {
		utils.Debug("viz-server", "rejected message: "+err.Error())
		return watcher.WriteJSON(types.VizMessage{Type: types.MessageError, Data: err.Error()})
	}

	return watcher.WriteJSON(types.VizMessage{Type: types.MessageParams, Data: instance.GetParams()})
}
