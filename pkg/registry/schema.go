// pkg/registry/schema.go
package registry

// Activity describes one BPMN service task the worker manager can serve.
type Activity struct {
	TaskType    string   `json:"taskType" yaml:"taskType"`
	DisplayName string   `json:"displayName" yaml:"displayName"`
	Description string   `json:"description" yaml:"description"`
	Category    string   `json:"category" yaml:"category"`
	Inputs      []string `json:"inputs" yaml:"inputs"`
	Outputs     []string `json:"outputs" yaml:"outputs"`
	ErrorCodes  []string `json:"errorCodes" yaml:"errorCodes"`
	Timeout     string   `json:"timeout" yaml:"timeout"`
}
