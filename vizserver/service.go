package vizserver

import (
	"context"
	"net/http"
	"os"
	"sync"
	"time"

	"log"

	"github.com/bytearena/streetboids/common/utils"
	apphandler "github.com/bytearena/streetboids/vizserver/handler"
	"github.com/bytearena/streetboids/vizserver/types"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/ttacon/chalk"
	"golang.org/x/time/rate"
)

const shutdownTimeout = 5 * time.Second

type VizService struct {
	addr      string
	vizworld  *types.VizWorld
	health    http.Handler
	framerate rate.Limit

	shutdown     chan struct{}
	shutdownOnce sync.Once
}

// NewVizService serves instance on addr. framerate caps the frames sent to
// each watcher; health may be nil.
func NewVizService(addr string, instance types.SimulationInstance, health http.Handler, framerate rate.Limit) *VizService {
	return &VizService{
		addr:      addr,
		vizworld:  types.NewVizWorld(instance),
		health:    health,
		framerate: framerate,
		shutdown:  make(chan struct{}),
	}
}

func (viz *VizService) GetVizWorld() *types.VizWorld {
	return viz.vizworld
}

func (viz *VizService) Router() http.Handler {
	logger := os.Stdout
	router := mux.NewRouter()

	router.Handle("/", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(apphandler.Home(viz.vizworld)),
	)).Methods("GET")

	router.Handle("/ws", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(apphandler.Websocket(viz.vizworld, viz.framerate, viz.shutdown)),
	)).Methods("GET")

	router.Handle("/params", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(apphandler.Params(viz.vizworld)),
	)).Methods("GET", "POST")

	if viz.health != nil {
		router.Handle("/health", viz.health).Methods("GET")
	}

	return router
}

// Close ends every websocket stream. The HTTP listener, if any, is stopped
// by ListenAndServe's context.
func (viz *VizService) Close() {
	viz.shutdownOnce.Do(func() {
		close(viz.shutdown)
	})
}

// ListenAndServe blocks until ctx is done or the listener fails.
func (viz *VizService) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:    viz.addr,
		Handler: viz.Router(),
	}
	server.RegisterOnShutdown(viz.Close)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)

		select {
		case <-ctx.Done():
		case <-viz.shutdown:
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			utils.WarnWith(errors.Wrap(err, "viz server did not shut down cleanly"))
		}
	}()

	log.Println(chalk.Green.Color("VIZ Listening on " + viz.addr))

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		<-stopped
		return nil
	}

	viz.Close()
	<-stopped

	return errors.Wrap(err, "viz server failed on "+viz.addr)
}
