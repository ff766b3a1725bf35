package simserver

import (
	"log"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/bytearena/streetboids/common/utils"
	"github.com/pkg/errors"
	"github.com/ttacon/chalk"
)

func (s *Server) monitoring() {
	defer s.loops.Done()

	debugNbTicks := int64(0)
	debugNbCollisions := int64(0)

	for {
		select {
		case <-s.stopticking:
			return
		case <-time.After(s.monitorfreq):
			nbTicks := atomic.LoadInt64(&s.debugNbTicks)
			nbCollisions := atomic.LoadInt64(&s.debugNbCollisions)

			log.Println(chalk.Cyan.Color(
				"-- MONITORING -- " +
					strconv.FormatInt(nbTicks-debugNbTicks, 10) + " ticks per " + s.monitorfreq.String() + "; " +
					strconv.FormatInt(nbCollisions-debugNbCollisions, 10) + " collisions per " + s.monitorfreq.String() + "; " +
					strconv.FormatInt(atomic.LoadInt64(&s.nbActive), 10) + " active boids",
			))

			debugNbTicks = nbTicks
			debugNbCollisions = nbCollisions
		}
	}
}

func (s *Server) reportMetrics() {
	err := s.metrics.WriteAppMetric("simulation", map[string]interface{}{
		"ticks":      s.nbTicks.GetAndReset(),
		"collisions": s.nbCollisions.GetAndReset(),
		"active":     int(atomic.LoadInt64(&s.nbActive)),
	})

	if err != nil {
		utils.WarnWith(errors.Wrap(err, "could not report simulation metrics"))
	}
}
