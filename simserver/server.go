package simserver

import (
	"context"
	"log"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bytearena/streetboids/common/assert"
	"github.com/bytearena/streetboids/common/influxdb"
	"github.com/bytearena/streetboids/common/utils"
	"github.com/bytearena/streetboids/game"
	"github.com/bytearena/streetboids/game/boid"
	"github.com/pkg/errors"
	"github.com/ttacon/chalk"
)

type TearDownCallback func() error

// Server drives a World at a fixed rate and fans its frames out to
// observers. Every access to the world goes through worldMutex.
type Server struct {
	world      *game.World
	worldMutex sync.Mutex

	tickspersec int
	monitorfreq time.Duration

	startOnce   sync.Once
	stopticking chan struct{}
	loops       sync.WaitGroup

	stateobservers      []chan game.Frame
	stateobserversMutex sync.RWMutex

	metrics          *influxdb.Client
	nbTicks          *influxdb.Counter
	nbCollisions     *influxdb.Counter
	nbActive         int64
	lastTickUnixNano int64

	debugNbTicks      int64
	debugNbCollisions int64

	tearDownCallbacks      []TearDownCallback
	tearDownCallbacksMutex sync.Mutex
}

func NewServer(world *game.World, tickspersec int, metrics *influxdb.Client) *Server {
	assert.Assertf(tickspersec > 0, "ticks per second must be positive, got %d", tickspersec)

	if metrics == nil {
		metrics = influxdb.NewStubClient("streetboids", 5*time.Second)
	}

	return &Server{
		world:        world,
		tickspersec:  tickspersec,
		monitorfreq:  time.Second,
		stopticking:  make(chan struct{}),
		metrics:      metrics,
		nbTicks:      influxdb.NewCounter(),
		nbCollisions: influxdb.NewCounter(),
	}
}

func (s *Server) GetTps() int {
	return s.tickspersec
}

// Start launches the tick loop, the console monitoring and the metrics
// reporting. It is a no-op past the first call.
func (s *Server) Start() {
	s.startOnce.Do(func() {
		utils.DebugWithContext("sim-server", "Starting", utils.Context{
			"world": s.GetWorldId(),
			"tps":   s.tickspersec,
		})

		s.loops.Add(2)
		go s.monitoring()
		go s.startTicking()

		s.metrics.Loop(s.reportMetrics)
		s.AddTearDownCall(func() error {
			s.metrics.TearDown()
			return nil
		})
	})
}

// Run starts the server and blocks until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	s.Start()
	<-ctx.Done()
	s.Stop()

	return nil
}

func (s *Server) Stop() {
	utils.Debug("sim-server", "TearDown from stop")
	s.TearDown()
}

func (s *Server) startTicking() {
	defer s.loops.Done()

	tickduration := time.Duration((1000000 / time.Duration(s.tickspersec)) * time.Microsecond)
	pacer := newPacer(tickduration, time.Now())

	// polls faster than the tick rate so that a late wakeup does not skip a tick
	ticker := time.NewTicker(tickduration / pollsPerTick)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopticking:
			log.Println(chalk.Yellow.Color("Received stop ticking signal"))
			return
		case now := <-ticker.C:
			if pacer.ready(now) {
				s.DoTick()
			}
		}
	}
}

// DoTick runs one step of the world and publishes the resulting frame.
func (s *Server) DoTick() game.TickReport {
	s.worldMutex.Lock()
	report := s.world.Tick()

	var frame game.Frame
	hasObservers := s.countObservers() > 0
	if hasObservers {
		frame = s.world.Snapshot()
	}
	s.worldMutex.Unlock()

	s.nbTicks.Add(1)
	s.nbCollisions.Add(report.Collisions.Resolved)
	atomic.AddInt64(&s.debugNbTicks, 1)
	atomic.AddInt64(&s.debugNbCollisions, int64(report.Collisions.Resolved))
	atomic.StoreInt64(&s.nbActive, int64(report.Active))
	atomic.StoreInt64(&s.lastTickUnixNano, time.Now().UnixNano())

	seq := int(report.Turn.GetSeq())
	dolog := s.tickspersec > 0 && seq%(s.tickspersec*10) == 0

	if dolog {
		log.Println(chalk.Yellow.Color("######## Tick ######## " + strconv.Itoa(seq)))
	}

	if hasObservers {
		s.publish(frame)
	}

	if dolog {
		log.Println(chalk.Yellow.Color("Goroutines in flight : " + strconv.Itoa(runtime.NumGoroutine())))
	}

	return report
}

func (s *Server) countObservers() int {
	s.stateobserversMutex.RLock()
	defer s.stateobserversMutex.RUnlock()

	return len(s.stateobservers)
}

// publish never blocks the tick loop: an observer that has not consumed the
// previous frame misses this one.
func (s *Server) publish(frame game.Frame) {
	s.stateobserversMutex.RLock()
	defer s.stateobserversMutex.RUnlock()

	for _, subscriber := range s.stateobservers {
		select {
		case subscriber <- frame:
		default:
		}
	}
}

func (s *Server) SubscribeStateObservation() chan game.Frame {
	ch := make(chan game.Frame, 1)

	s.stateobserversMutex.Lock()
	s.stateobservers = append(s.stateobservers, ch)
	s.stateobserversMutex.Unlock()

	return ch
}

func (s *Server) UnsubscribeStateObservation(ch chan game.Frame) {
	s.stateobserversMutex.Lock()
	defer s.stateobserversMutex.Unlock()

	for i, subscriber := range s.stateobservers {
		if subscriber == ch {
			s.stateobservers = append(s.stateobservers[:i], s.stateobservers[i+1:]...)
			return
		}
	}
}

func (s *Server) Snapshot() game.Frame {
	s.worldMutex.Lock()
	defer s.worldMutex.Unlock()

	return s.world.Snapshot()
}

func (s *Server) GetParams() game.Params {
	s.worldMutex.Lock()
	defer s.worldMutex.Unlock()

	return s.world.GetParams()
}

func (s *Server) GetWorldId() string {
	s.worldMutex.Lock()
	defer s.worldMutex.Unlock()

	return s.world.GetId().String()
}

func (s *Server) GetTurn() utils.Tickturn {
	s.worldMutex.Lock()
	defer s.worldMutex.Unlock()

	return s.world.GetTurn()
}

func (s *Server) SetCaution(value float64) error {
	if value < 0 {
		return errors.Errorf("caution must be positive, got %v", value)
	}

	s.worldMutex.Lock()
	s.world.SetCaution(value)
	s.worldMutex.Unlock()

	return nil
}

func (s *Server) SetQuickness(value float64) error {
	if value < game.MinQuickness {
		return errors.Errorf("quickness must be at least %v, got %v", game.MinQuickness, value)
	}

	s.worldMutex.Lock()
	s.world.SetQuickness(value)
	s.worldMutex.Unlock()

	return nil
}

func (s *Server) SetTypeEnabled(t boid.Type, enabled bool) error {
	if !t.IsValid() {
		return errors.Errorf("unknown boid type %d", int(t))
	}

	s.worldMutex.Lock()
	s.world.SetTypeEnabled(t, enabled)
	s.worldMutex.Unlock()

	return nil
}

func (s *Server) Resize(width, height float64) error {
	if width <= 0 || height <= 0 {
		return errors.Errorf("viewport must have a positive size, got %vx%v", width, height)
	}

	s.worldMutex.Lock()
	s.world.Resize(width, height)
	s.worldMutex.Unlock()

	return nil
}

// HealthCheck fails once the loop has not ticked for a full second.
func (s *Server) HealthCheck() (error, bool) {
	last := atomic.LoadInt64(&s.lastTickUnixNano)
	if last == 0 {
		return nil, false
	}

	return nil, time.Since(time.Unix(0, last)) < time.Second+time.Second/time.Duration(s.tickspersec)
}

func (s *Server) AddTearDownCall(fn TearDownCallback) {
	s.tearDownCallbacksMutex.Lock()
	defer s.tearDownCallbacksMutex.Unlock()

	s.tearDownCallbacks = append(s.tearDownCallbacks, fn)
}

// TearDown stops the loops and runs the teardown callbacks in reverse
// order. Calling it again is a no-op.
func (s *Server) TearDown() {
	s.tearDownCallbacksMutex.Lock()
	defer s.tearDownCallbacksMutex.Unlock()

	select {
	case <-s.stopticking:
		return
	default:
		close(s.stopticking)
	}

	s.loops.Wait()

	for i := len(s.tearDownCallbacks) - 1; i >= 0; i-- {
		utils.Debug("teardown", "Executing TearDownCallback")
		if err := s.tearDownCallbacks[i](); err != nil {
			utils.WarnWith(errors.Wrap(err, "teardown callback failed"))
		}
	}

	// Reset to avoid calling teardown callback multiple times
	s.tearDownCallbacks = make([]TearDownCallback, 0)
}
