package templatesimplifier

import (
	"detemplate/internal/diag"
	"detemplate/internal/numfold"
	"detemplate/internal/token"
)

// Result carries the two by-products of a run, alongside the in-place list
// mutation: whether the input contained any template at all, and the full
// set of mangled monomorph names generated.
type Result struct {
	ContainsTemplates bool
	Monomorphs        map[string]bool
}

// StageSpecialization through StageCleanup name the five pipeline stages
// Run reports through its onStage hook, in the order they run.
const (
	StageSpecialization = "specialization"
	StageDeclarations   = "declarations"
	StageInstantiations = "instantiations"
	StageMonomorphize   = "monomorphize"
	StageCleanup        = "cleanup"
)

// Run drives the five-stage pipeline over list: specialization expansion
// (S1), declaration discovery (S2), instantiation discovery and
// default-argument propagation (S3), the monomorphization loop (S4), and
// declaration removal plus cleanup (S5). It mutates list in place and
// never itself returns an error; see the package doc for the best-effort
// philosophy. reporter may be nil, in which case debug events
// are simply dropped regardless of settings. onStage, if non-nil, is
// called immediately before each stage starts, letting a caller time or
// report progress per stage without reaching into the package internals.
func Run(list *token.List, settings Settings, reporter diag.Reporter, onStage func(stage string)) Result {
	report := func(stage string) {
		if onStage != nil {
			onStage(stage)
		}
	}

	monomorphs := map[string]bool{}

	report(StageSpecialization)
	expandSpecializations(list, monomorphs)

	report(StageDeclarations)
	decls, containsTemplates := discoverDeclarations(list)
	if !containsTemplates {
		return Result{ContainsTemplates: false, Monomorphs: monomorphs}
	}

	report(StageInstantiations)
	// Fold constant arguments such as "1+2" before use sites are counted.
	for pass := 0; pass < maxDivergence && numfold.Fold(list); pass++ {
	}
	sites := discoverInstantiations(list, decls)
	sites = propagateDefaultArguments(list, decls, sites)

	for pass := 0; pass < maxDivergence && numfold.Fold(list); pass++ {
	}

	sites = filterUnbalancedSites(list, sites, settings, reporter)

	report(StageMonomorphize)
	sites = monomorphize(list, decls, sites, monomorphs, settings, reporter)
	_ = sites

	report(StageCleanup)
	removeDeclarations(list, decls)
	cleanupResidualAngles(list)

	return Result{ContainsTemplates: true, Monomorphs: monomorphs}
}
