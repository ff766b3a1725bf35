package influxdb

import (
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/bytearena/streetboids/common/utils"
	"github.com/pkg/errors"

	"github.com/influxdata/influxdb/client/v2"
)

const reportFrequency = 5 * time.Second

type Client struct {
	isStub bool

	database       string
	appName        string
	influxdbClient client.Client
	tickerChannel  *time.Ticker

	stop     chan struct{}
	stopOnce sync.Once
	loops    sync.WaitGroup
}

func createHttpClient(addr string) (client.Client, error) {
	return client.NewHTTPClient(client.HTTPConfig{
		Addr: addr,
	})
}

func createBatchPoints(db string) (client.BatchPoints, error) {
	return client.NewBatchPoints(client.BatchPointsConfig{
		Database: db,
	})
}

// NewClient reads INFLUXDB_ADDR and INFLUXDB_DB. When neither is set the
// returned client only logs the metrics it is given.
func NewClient(appName string) (*Client, error) {
	return newClient(appName, os.Getenv("INFLUXDB_ADDR"), os.Getenv("INFLUXDB_DB"), reportFrequency)
}

func NewStubClient(appName string, frequency time.Duration) *Client {
	return &Client{
		isStub:        true,
		tickerChannel: time.NewTicker(frequency),
		appName:       appName,
		stop:          make(chan struct{}),
	}
}

func newClient(appName, influxdbAddr, influxdbDb string, frequency time.Duration) (*Client, error) {
	stubClient := NewStubClient(appName, frequency)

	if influxdbAddr == "" && influxdbDb == "" {
		utils.Debug("influxdb", "No client has been configured")
		return stubClient, nil
	}

	influxdbClient, clientErr := createHttpClient(influxdbAddr)
	if clientErr != nil {
		return stubClient, errors.Wrap(clientErr, "could not create influxdb client for "+influxdbAddr)
	}

	// validates the database name before any report goes out
	if _, batchpointsErr := createBatchPoints(influxdbDb); batchpointsErr != nil {
		return stubClient, errors.Wrap(batchpointsErr, "could not create batch points for "+influxdbDb)
	}

	utils.Debug("influxdb", "Influxdb reporting is enabled")

	return &Client{
		isStub: false,

		influxdbClient: influxdbClient,
		database:       influxdbDb,
		tickerChannel:  stubClient.tickerChannel,
		appName:        appName,
		stop:           stubClient.stop,
	}, nil
}

func (c *Client) IsStub() bool {
	return c.isStub
}

func (c *Client) WriteAppMetric(name string, fields map[string]interface{}) error {
	if c.isStub {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		str := name
		for _, k := range keys {
			switch v := fields[k].(type) {
			case int:
				str += " " + k + "=" + strconv.Itoa(v)
			case float64:
				str += " " + k + "=" + strconv.FormatFloat(v, 'f', 2, 64)
			}
		}

		utils.Debug("influxdb-debug", str)
		return nil
	}

	tags := map[string]string{"app": c.appName}

	pt, err := client.NewPoint(name, tags, fields, time.Now())
	if err != nil {
		return errors.Wrap(err, "could not create point "+name)
	}

	// a fresh batch per write, the previous one has already been flushed
	bp, err := createBatchPoints(c.database)
	if err != nil {
		return errors.Wrap(err, "could not create batch points")
	}

	bp.AddPoint(pt)

	return errors.Wrap(c.influxdbClient.Write(bp), "could not write to influxdb")
}

// HealthCheck pings the server; a stub client is always healthy.
func (c *Client) HealthCheck() (error, bool) {
	if c.isStub {
		return nil, true
	}

	if _, _, err := c.influxdbClient.Ping(time.Second); err != nil {
		return errors.Wrap(err, "influxdb did not answer"), false
	}

	return nil, true
}

// Loop calls fn on every report period until TearDown.
func (c *Client) Loop(fn func()) {
	c.loops.Add(1)

	go func() {
		defer c.loops.Done()

		for {
			select {
			case <-c.stop:
				return
			case <-c.tickerChannel.C:
				fn()
			}
		}
	}()
}

// TearDown stops every loop and waits for them to return. It may be called
// more than once.
func (c *Client) TearDown() {
	c.stopOnce.Do(func() {
		c.tickerChannel.Stop()
		close(c.stop)

		if c.influxdbClient != nil {
			c.influxdbClient.Close()
		}
	})

	c.loops.Wait()
}
