package healthcheck

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/bytearena/streetboids/common/utils"
)

type HealthCheckServer struct {
	checkers []namedChecker
	lock     sync.RWMutex
}

type namedChecker struct {
	name    string
	handler HealthCheckHandler
}

type HealthChecks struct {
	Status bool
	Name   string
	Error  string `json:",omitempty"`
}

type HealthCheckHttpResponse struct {
	Checks     []HealthChecks
	StatusCode int
}

// HealthCheckHandler reports ok=false for a degraded component and a non-nil
// error when the component could not be checked at all.
type HealthCheckHandler func() (err error, ok bool)

func NewHealthCheckServer() *HealthCheckServer {
	return &HealthCheckServer{}
}

func (server *HealthCheckServer) Register(name string, handler HealthCheckHandler) {
	server.lock.Lock()
	server.checkers = append(server.checkers, namedChecker{name, handler})
	server.lock.Unlock()
}

func (server *HealthCheckServer) Check() HealthCheckHttpResponse {
	res := HealthCheckHttpResponse{
		Checks:     make([]HealthChecks, 0),
		StatusCode: http.StatusOK,
	}

	server.lock.RLock()
	defer server.lock.RUnlock()

	for _, checker := range server.checkers {
		err, checkerRes := checker.handler()

		check := HealthChecks{
			Name:   checker.name,
			Status: err == nil && checkerRes,
		}

		if err != nil {
			check.Error = err.Error()
			res.StatusCode = http.StatusInternalServerError
		} else if !checkerRes && res.StatusCode == http.StatusOK {
			res.StatusCode = http.StatusServiceUnavailable
		}

		res.Checks = append(res.Checks, check)
	}

	return res
}

func (server *HealthCheckServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res := server.Check()

	data, err := json.Marshal(res)
	utils.Check(err, "Failed to marshal response")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)
	w.Write(data)
}
