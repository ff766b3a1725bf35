package config

import (
	"encoding/json"
	"io/ioutil"
	"strconv"
	"time"

	"github.com/bytearena/streetboids/game"
	"github.com/bytearena/streetboids/game/boid"
	"github.com/pkg/errors"
)

type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
	Tps  int    `json:"tps"`

	// Maxfps caps the frames pushed to each viz watcher.
	Maxfps int `json:"maxfps"`
}

type WorldConfig struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Boids <= 0 derives the count from the viewport; Seed 0 seeds from the clock.
	Boids int   `json:"boids"`
	Seed  int64 `json:"seed"`

	Caution   float64 `json:"caution"`
	Quickness float64 `json:"quickness"`

	Parallelism      int      `json:"parallelism"`
	Maxspawnattempts int      `json:"maxspawnattempts"`
	Broadphase       bool     `json:"broadphase"`
	Disabled         []string `json:"disabled"`
}

type Config struct {
	Server ServerConfig `json:"server"`
	World  WorldConfig  `json:"world"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:   "localhost",
			Port:   8080,
			Tps:    60,
			Maxfps: 30,
		},
		World: WorldConfig{
			Width:            1280,
			Height:           720,
			Caution:          game.DefaultCaution,
			Quickness:        game.DefaultQuickness,
			Parallelism:      1,
			Maxspawnattempts: game.DefaultMaxSpawnAttempts,
		},
	}
}

// Load reads a JSON file on top of the defaults and validates the result.
func Load(filename string) (Config, error) {
	config := Default()

	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return config, errors.Wrap(err, "could not read configuration")
	}

	if err := json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrap(err, "could not parse configuration "+filename)
	}

	if err := config.Validate(); err != nil {
		return config, errors.Wrap(err, "invalid configuration "+filename)
	}

	return config, nil
}

func (c Config) Validate() error {
	if c.Server.Tps <= 0 {
		return errors.Errorf("tps must be positive, got %d", c.Server.Tps)
	}

	if c.Server.Maxfps <= 0 {
		return errors.Errorf("maxfps must be positive, got %d", c.Server.Maxfps)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.Errorf("port out of range, got %d", c.Server.Port)
	}

	if c.World.Width <= 0 || c.World.Height <= 0 {
		return errors.Errorf("world must have a positive size, got %vx%v", c.World.Width, c.World.Height)
	}

	if c.World.Quickness < game.MinQuickness {
		return errors.Errorf("quickness must be at least %v, got %v", game.MinQuickness, c.World.Quickness)
	}

	if c.World.Caution < 0 {
		return errors.Errorf("caution must be positive, got %v", c.World.Caution)
	}

	if _, err := c.World.disabledTypes(); err != nil {
		return err
	}

	return nil
}

func (c Config) Addr() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

func (w WorldConfig) disabledTypes() ([]boid.Type, error) {
	types := make([]boid.Type, 0, len(w.Disabled))

	for _, name := range w.Disabled {
		t, ok := boid.ParseType(name)
		if !ok {
			return nil, errors.Errorf("unknown boid type %q in disabled", name)
		}
		types = append(types, t)
	}

	return types, nil
}

func (c Config) WorldOptions() (game.Options, error) {
	disabled, err := c.World.disabledTypes()
	if err != nil {
		return game.Options{}, err
	}

	opts := game.DefaultOptions(c.World.Width, c.World.Height)
	opts.NumBoids = c.World.Boids
	opts.Caution = c.World.Caution
	opts.Quickness = c.World.Quickness
	opts.Parallelism = c.World.Parallelism
	opts.MaxSpawnAttempts = c.World.Maxspawnattempts
	opts.BroadPhase = c.World.Broadphase
	opts.Disabled = disabled

	if c.World.Seed != 0 {
		opts.Seed = c.World.Seed
	} else {
		opts.Seed = time.Now().UnixNano()
	}

	return opts, nil
}
