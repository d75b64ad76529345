// Package batch drives the lifecycle of one Livy batch: submission,
// polling to a terminal state, optional secondary verification, log
// drain, and guaranteed close.
package batch

import "encoding/json"

// Submission holds the optional parameters of a batch submission,
// using the Livy wire field names.
//
// Every field is optional. The serialization rule is: a field is
// included in the payload iff it is non-empty, via omitempty. Zero
// resource counts (cores, executors) and empty strings mean "unset" and
// are deliberately omitted so the cluster defaults apply; there is no
// way to request literally zero cores.
type Submission struct {
	File           string            `json:"file,omitempty"`
	ProxyUser      string            `json:"proxyUser,omitempty"`
	ClassName      string            `json:"className,omitempty"`
	Args           []string          `json:"args,omitempty"`
	Jars           []string          `json:"jars,omitempty"`
	PyFiles        []string          `json:"pyFiles,omitempty"`
	Files          []string          `json:"files,omitempty"`
	DriverMemory   string            `json:"driverMemory,omitempty"`
	DriverCores    int               `json:"driverCores,omitempty"`
	ExecutorMemory string            `json:"executorMemory,omitempty"`
	ExecutorCores  int               `json:"executorCores,omitempty"`
	NumExecutors   int               `json:"numExecutors,omitempty"`
	Archives       []string          `json:"archives,omitempty"`
	Queue          string            `json:"queue,omitempty"`
	Name           string            `json:"name,omitempty"`
	Conf           map[string]string `json:"conf,omitempty"`
}

// Payload serializes the submission, containing exactly the non-empty
// fields.
func (s *Submission) Payload() ([]byte, error) {
	return json.Marshal(s)
}

// Batch state vocabulary as reported by the status endpoint. Any other
// value is a terminal failure.
const (
	StateStarting = "starting"
	StateRunning  = "running"
	StateSuccess  = "success"
)
