package buildpipeline

import "time"

// Stage identifies one of the five template-simplification stages.
type Stage string

const (
	// StageLex is tokenizing source into a token.List.
	StageLex Stage = "lex"
	// StageSpecialization is S1: specialization expansion.
	StageSpecialization Stage = "specialization"
	// StageDeclarations is S2: declaration discovery.
	StageDeclarations Stage = "declarations"
	// StageInstantiations is S3: instantiation discovery and
	// default-argument propagation.
	StageInstantiations Stage = "instantiations"
	// StageMonomorphize is S4: the monomorphization loop.
	StageMonomorphize Stage = "monomorphize"
	// StageCleanup is S5: declaration removal and residual cleanup.
	StageCleanup Stage = "cleanup"
)

// Stages lists every stage in pipeline order, for callers that want to
// report relative shares (see the "Rel. share" column the stage budget
// was derived from) or pre-seed a timings table.
var Stages = []Stage{StageLex, StageSpecialization, StageDeclarations, StageInstantiations, StageMonomorphize, StageCleanup}

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the task is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the task is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the task is done.
	StatusDone Status = "done"
	// StatusError indicates the task encountered an error.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the overall pipeline when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) ensure() {
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] = dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	if t.stages == nil {
		return false
	}
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
