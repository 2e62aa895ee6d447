package main

import (
	"fmt"
	"io"
	"time"

	"detemplate/internal/buildpipeline"
)

func printStageTimings(out io.Writer, timings buildpipeline.Timings) {
	if out == nil {
		return
	}
	var printErr error
	if timings.Has(buildpipeline.StageLex) {
		_, printErr = fmt.Fprintf(out, "lexed %.1f ms\n", toMillis(timings.Duration(buildpipeline.StageLex)))
		if printErr != nil {
			panic(printErr)
		}
	}
	discovery := timings.Sum(buildpipeline.StageSpecialization, buildpipeline.StageDeclarations, buildpipeline.StageInstantiations)
	if discovery > 0 {
		_, printErr = fmt.Fprintf(out, "discovered %.1f ms\n", toMillis(discovery))
		if printErr != nil {
			panic(printErr)
		}
	}
	if timings.Has(buildpipeline.StageMonomorphize) {
		_, printErr = fmt.Fprintf(out, "monomorphized %.1f ms\n", toMillis(timings.Duration(buildpipeline.StageMonomorphize)))
		if printErr != nil {
			panic(printErr)
		}
	}
	if timings.Has(buildpipeline.StageCleanup) {
		_, printErr = fmt.Fprintf(out, "cleaned up %.1f ms\n", toMillis(timings.Duration(buildpipeline.StageCleanup)))
		if printErr != nil {
			panic(printErr)
		}
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
