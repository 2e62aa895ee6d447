// Package driver wires the lexer, the template simplifier and the
// diagnostic bag together behind the two entry points the CLI calls: one
// that just tokenizes a file, and one that runs the full simplification
// pipeline over it.
package driver

import (
	"fmt"
	"time"

	"detemplate/internal/buildpipeline"
	"detemplate/internal/diag"
	"detemplate/internal/lexer"
	"detemplate/internal/source"
	"detemplate/internal/templatesimplifier"
	"detemplate/internal/token"
)

// TokenizeResult carries everything a caller needs to render or inspect a
// lexed file.
type TokenizeResult struct {
	Tokens  *token.List
	FileSet *source.FileSet
	Bag     *diag.Bag
}

// Tokenize loads path, lexes it, and returns the resulting token list plus
// any lexical diagnostics (bounded by maxDiagnostics).
func Tokenize(path string, maxDiagnostics int) (TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return TokenizeResult{}, fmt.Errorf("loading %s: %w", path, err)
	}

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	list := token.NewList(fs)
	lexer.Tokenize(list, fs.Get(id), lexer.Options{Reporter: diagLexReporter{reporter: reporter}})

	return TokenizeResult{Tokens: list, FileSet: fs, Bag: bag}, nil
}

// SimplifyResult carries the tokenized-and-simplified stream plus the
// template simplifier's by-products.
type SimplifyResult struct {
	Tokens  *token.List
	FileSet *source.FileSet
	Bag     *diag.Bag
	Result  templatesimplifier.Result
	Timings buildpipeline.Timings
}

// Simplify loads path, lexes it, and runs the template simplifier over
// the resulting list in place. progress may be nil; when set, it receives
// an Event for path at the start of lexing and before each simplifier
// stage, and Timings records how long each stage took.
func Simplify(path string, maxDiagnostics int, settings templatesimplifier.Settings, progress buildpipeline.ProgressSink) (SimplifyResult, error) {
	var timings buildpipeline.Timings
	emit := func(stage buildpipeline.Stage, status buildpipeline.Status) {
		if progress != nil {
			progress.OnEvent(buildpipeline.Event{File: path, Stage: stage, Status: status})
		}
	}
	timeStage := func(stage buildpipeline.Stage, fn func()) {
		emit(stage, buildpipeline.StatusWorking)
		start := time.Now()
		fn()
		timings.Set(stage, time.Since(start))
	}

	var tok TokenizeResult
	var err error
	timeStage(buildpipeline.StageLex, func() {
		tok, err = Tokenize(path, maxDiagnostics)
	})
	if err != nil {
		emit(buildpipeline.StageLex, buildpipeline.StatusError)
		return SimplifyResult{}, err
	}

	reporter := diag.BagReporter{Bag: tok.Bag}

	stageOf := map[string]buildpipeline.Stage{
		templatesimplifier.StageSpecialization: buildpipeline.StageSpecialization,
		templatesimplifier.StageDeclarations:   buildpipeline.StageDeclarations,
		templatesimplifier.StageInstantiations: buildpipeline.StageInstantiations,
		templatesimplifier.StageMonomorphize:   buildpipeline.StageMonomorphize,
		templatesimplifier.StageCleanup:        buildpipeline.StageCleanup,
	}
	var current buildpipeline.Stage
	var currentStart time.Time
	finishCurrent := func() {
		if current != "" {
			timings.Set(current, time.Since(currentStart))
		}
	}
	result := templatesimplifier.Run(tok.Tokens, settings, reporter, func(stage string) {
		finishCurrent()
		current = stageOf[stage]
		currentStart = time.Now()
		emit(current, buildpipeline.StatusWorking)
	})
	finishCurrent()

	emit(buildpipeline.StageCleanup, buildpipeline.StatusDone)

	return SimplifyResult{Tokens: tok.Tokens, FileSet: tok.FileSet, Bag: tok.Bag, Result: result, Timings: timings}, nil
}

// diagLexReporter adapts lexer.Reporter onto diag.Reporter so the lexer's
// simple (kind, span, msg) calls land in the same Bag the simplifier
// reports into.
type diagLexReporter struct {
	reporter diag.Reporter
}

func (r diagLexReporter) Report(kind string, span source.Span, msg string) {
	code := diag.LexUnknownChar
	switch kind {
	case diag.LexUnterminatedString.ID():
		code = diag.LexUnterminatedString
	case diag.LexUnterminatedBlockComment.ID():
		code = diag.LexUnterminatedBlockComment
	case diag.LexBadNumber.ID():
		code = diag.LexBadNumber
	}
	r.reporter.Report(code, diag.SevWarning, span, msg, nil, nil)
}
