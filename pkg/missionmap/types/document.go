package types

import "time"

// DocumentVersion marks the envelope schema generated documents carry
const DocumentVersion = "missionmap/v1"

// Fingerprints records the canonical hash of each generation input.
// Comparing fingerprints against freshly loaded inputs reveals drift.
type Fingerprints struct {
	Analysis       string `yaml:"analysis" json:"analysis"`
	PhaseTemplates string `yaml:"phase_templates" json:"phase_templates"`
	TaskTemplates  string `yaml:"task_templates" json:"task_templates"`
	Profiles       string `yaml:"profiles" json:"profiles"`
	Weights        string `yaml:"weights" json:"weights"`
}

// Document is a saved mission plan: identity metadata, the analysis
// snapshot, input fingerprints, and the three pipeline results
type Document struct {
	Version   string    `yaml:"version" json:"version"`
	ID        string    `yaml:"id" json:"id"`
	CreatedAt time.Time `yaml:"created_at" json:"created_at"`

	Analysis Analysis `yaml:"analysis" json:"analysis"`

	Fingerprints Fingerprints `yaml:"fingerprints" json:"fingerprints"`

	Decomposition *Decomposition `yaml:"decomposition" json:"decomposition"`
	TaskGraph     *TaskGraph     `yaml:"task_graph" json:"task_graph"`
	Mission       *Mission       `yaml:"mission" json:"mission"`
}
