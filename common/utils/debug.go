package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type Context map[string]interface{}

type Message struct {
	Time    string  `json:"time"`
	Service string  `json:"service"`
	Message string  `json:"message"`
	Context Context `json:"context"`
}

var (
	debugOut   io.Writer = os.Stdout
	debugMutex           = &sync.Mutex{}
)

// SetDebugOutput redirects Debug lines; nil restores stdout.
func SetDebugOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	debugMutex.Lock()
	debugOut = w
	debugMutex.Unlock()
}

func Debug(service string, message string) {
	DebugWithContext(service, message, nil)
}

func DebugWithContext(service string, message string, extra Context) {
	context := make(Context, len(extra)+1)

	if hostname, err := os.Hostname(); err == nil {
		context["hostname"] = hostname
	}

	for k, v := range extra {
		context[k] = v
	}

	messageStruct := Message{
		Time:    time.Now().Format(time.RFC3339),
		Service: service,
		Message: message,
		Context: context,
	}

	data, _ := json.Marshal(messageStruct)

	debugMutex.Lock()
	fmt.Fprintln(debugOut, string(data))
	debugMutex.Unlock()
}
