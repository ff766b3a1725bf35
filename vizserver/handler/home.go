package handler

import (
	"html/template"
	"net/http"

	"github.com/bytearena/streetboids/vizserver/types"
)

var homeTemplate = template.Must(template.New("home").Parse(`<h2>streetboids</h2>
<p>World {{.Id}} at {{.Tps}} ticks per second, turn {{.Turn}}.</p>
<p>{{.Boids}} boids on {{.Streets}} streets, {{.Watchers}} watchers right now.</p>
<p>Frames are streamed on <a href="/ws">/ws</a>; parameters live on <a href="/params">/params</a>.</p>
`))

type homeData struct {
	Id       string
	Tps      int
	Turn     uint32
	Boids    int
	Streets  int
	Watchers int
}

func Home(vizworld *types.VizWorld) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		instance := vizworld.GetInstance()
		frame := instance.Snapshot()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		homeTemplate.Execute(w, homeData{
			Id:       frame.WorldId,
			Tps:      instance.GetTps(),
			Turn:     frame.Turn,
			Boids:    len(frame.Boids),
			Streets:  len(frame.Streets),
			Watchers: vizworld.GetNumberWatchers(),
		})
	}
}
