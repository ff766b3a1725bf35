package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"syscall"
	"time"

	"github.com/cheggaaa/pb"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/ttacon/chalk"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/bytearena/streetboids/common/healthcheck"
	"github.com/bytearena/streetboids/common/influxdb"
	"github.com/bytearena/streetboids/common/utils"
	"github.com/bytearena/streetboids/config"
	"github.com/bytearena/streetboids/game"
	"github.com/bytearena/streetboids/simserver"
	"github.com/bytearena/streetboids/vizserver"
)

const (
	TIME_BEFORE_FORCE_QUIT = 10 * time.Second
)

func main() {
	app := makeapp()

	if err := app.Run(os.Args); err != nil {
		utils.FailWith(err)
	}
}

var worldFlags = []cli.Flag{
	cli.StringFlag{Name: "config", Value: "", Usage: "JSON configuration file; flags override its values"},
	cli.Float64Flag{Name: "width", Usage: "Viewport width"},
	cli.Float64Flag{Name: "height", Usage: "Viewport height"},
	cli.IntFlag{Name: "boids", Usage: "Number of boids; derived from the viewport when unset"},
	cli.Int64Flag{Name: "seed", Usage: "Random seed; the clock when unset"},
	cli.Float64Flag{Name: "caution", Usage: "Initial global caution"},
	cli.Float64Flag{Name: "quickness", Usage: "Initial global quickness"},
	cli.IntFlag{Name: "parallelism", Usage: "Workers computing steering forces"},
	cli.BoolFlag{Name: "broadphase", Usage: "Use the R-tree broad phase for collisions"},
	cli.StringSliceFlag{Name: "disable", Usage: "Boid type to leave out (moto, car, bus); repeatable"},
}

func makeapp() *cli.App {
	app := cli.NewApp()
	app.Description = "Traffic of motos, cars and buses flocking on a street grid"
	app.Name = "streetboids"
	app.Version = utils.GetVersion()

	app.Commands = []cli.Command{
		{
			Name:    "serve",
			Aliases: []string{"s"},
			Usage:   "Run the simulation and stream it to viz clients",
			Flags: append([]cli.Flag{
				cli.StringFlag{Name: "host", Usage: "Host serving the viz"},
				cli.IntFlag{Name: "port", Usage: "Port serving the viz"},
				cli.IntFlag{Name: "tps", Usage: "Number of ticks per second"},
				cli.IntFlag{Name: "maxfps", Usage: "Frames per second pushed to each watcher"},
			}, worldFlags...),
			Action: func(c *cli.Context) error {
				conf, err := resolveConfig(c)
				if err != nil {
					return err
				}

				return serveAction(conf)
			},
		},
		{
			Name:    "simulate",
			Aliases: []string{"sim"},
			Usage:   "Run the simulation headless for a number of ticks",
			Flags: append([]cli.Flag{
				cli.IntFlag{Name: "ticks", Value: 1000, Usage: "Number of ticks to run"},
				cli.BoolFlag{Name: "dump", Usage: "Dump the final frame"},
				cli.BoolFlag{Name: "no-progress", Usage: "Hide the progress bar"},
				cli.BoolFlag{Name: "profile", Usage: "Enable execution profiling"},
			}, worldFlags...),
			Action: func(c *cli.Context) error {
				conf, err := resolveConfig(c)
				if err != nil {
					return err
				}

				return simulateAction(conf, c.Int("ticks"), c.Bool("dump"), !c.Bool("no-progress"), c.Bool("profile"))
			},
		},
	}

	return app
}

// resolveConfig loads the configuration file, if any, and applies the flags
// that were explicitly set.
func resolveConfig(c *cli.Context) (config.Config, error) {
	conf := config.Default()

	if filename := c.String("config"); filename != "" {
		loaded, err := config.Load(filename)
		if err != nil {
			return conf, err
		}
		conf = loaded
	}

	if c.IsSet("host") {
		conf.Server.Host = c.String("host")
	}
	if c.IsSet("port") {
		conf.Server.Port = c.Int("port")
	}
	if c.IsSet("tps") {
		conf.Server.Tps = c.Int("tps")
	}
	if c.IsSet("maxfps") {
		conf.Server.Maxfps = c.Int("maxfps")
	}
	if c.IsSet("width") {
		conf.World.Width = c.Float64("width")
	}
	if c.IsSet("height") {
		conf.World.Height = c.Float64("height")
	}
	if c.IsSet("boids") {
		conf.World.Boids = c.Int("boids")
	}
	if c.IsSet("seed") {
		conf.World.Seed = c.Int64("seed")
	}
	if c.IsSet("caution") {
		conf.World.Caution = c.Float64("caution")
	}
	if c.IsSet("quickness") {
		conf.World.Quickness = c.Float64("quickness")
	}
	if c.IsSet("parallelism") {
		conf.World.Parallelism = c.Int("parallelism")
	}
	if c.IsSet("broadphase") {
		conf.World.Broadphase = c.Bool("broadphase")
	}
	if c.IsSet("disable") {
		conf.World.Disabled = c.StringSlice("disable")
	}

	return conf, errors.Wrap(conf.Validate(), "invalid command line")
}

func makeWorld(conf config.Config) (*game.World, error) {
	opts, err := conf.WorldOptions()
	if err != nil {
		return nil, err
	}

	return game.NewWorld(opts)
}

func serveAction(conf config.Config) error {
	world, err := makeWorld(conf)
	if err != nil {
		return err
	}

	metrics, err := influxdb.NewClient("streetboids")
	if err != nil {
		utils.WarnWith(err)
	}

	srv := simserver.NewServer(world, conf.Server.Tps, metrics)

	health := healthcheck.NewHealthCheckServer()
	health.Register("ticking", srv.HealthCheck)
	health.Register("metrics", metrics.HealthCheck)

	viz := vizserver.NewVizService(conf.Addr(), srv, health, rate.Limit(conf.Server.Maxfps))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx) })
	g.Go(func() error { return viz.ListenAndServe(ctx) })

	go func() {
		<-ctx.Done()
		log.Println(chalk.Yellow.Color("Shutting down"))

		<-time.After(TIME_BEFORE_FORCE_QUIT)
		log.Println(chalk.Red.Color("Graceful shutdown timed out, forcing quit"))
		os.Exit(1)
	}()

	return g.Wait()
}

func simulateAction(conf config.Config, ticks int, dump bool, progress bool, shouldProfile bool) error {
	if ticks <= 0 {
		return errors.Errorf("ticks must be positive, got %d", ticks)
	}

	if shouldProfile {
		f, err := os.Create("./cpu.prof")
		if err != nil {
			return errors.Wrap(err, "could not create CPU profile")
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			return errors.Wrap(err, "could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	world, err := makeWorld(conf)
	if err != nil {
		return err
	}

	var bar *pb.ProgressBar
	if progress {
		bar = pb.New(ticks)
		bar.Output = os.Stderr
		bar.ShowSpeed = true
		bar.Start()
	}

	start := time.Now()
	collisions := runTicks(world, ticks, bar)

	if bar != nil {
		bar.Finish()
	}

	elapsed := time.Since(start)
	log.Println(chalk.Green.Color(
		strconv.Itoa(ticks) + " ticks in " + elapsed.String() + "; " +
			strconv.Itoa(collisions) + " collisions; " +
			strconv.Itoa(len(world.Boids())) + " boids on " + strconv.Itoa(world.GetStreets().Len()) + " streets",
	))

	if dump {
		spew.Dump(world.Snapshot())
	}

	return nil
}

func runTicks(g game.GameInterface, ticks int, bar *pb.ProgressBar) int {
	collisions := 0

	for i := 0; i < ticks; i++ {
		report := g.Tick()
		collisions += report.Collisions.Resolved

		if bar != nil {
			bar.Increment()
		}
	}

	return collisions
}
