package fileio

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoEvaluator is returned by RegisterExpression when no evaluator is
// supplied, which is also what NewJSEvaluator returns in builds without the
// js_eval tag.
var ErrNoEvaluator = errors.New("fileio: no expression evaluator")

// Evaluator compiles migration expressions for one expression language.
type Evaluator interface {
	Engine() string
	Compile(expression string) (CompiledRule, error)
}

// CompiledRule runs a compiled migration expression.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// RuleContext is what a migration expression sees. Data is the payload being
// upgraded and the expression result replaces it.
type RuleContext struct {
	Data     any
	Now      *time.Time
	FileType string
	From     Version
	To       Version
}

func (ctx RuleContext) timestamp() time.Time {
	if ctx.Now != nil {
		return *ctx.Now
	}
	return time.Now().UTC()
}

// variables returns the named values bound into every engine. Top level keys
// of map payloads come first so the reserved names always win.
func (ctx RuleContext) variables() map[string]any {
	vars := map[string]any{}
	if payload, ok := ctx.Data.(map[string]any); ok {
		for key, value := range payload {
			vars[key] = value
		}
	}
	vars["data"] = ctx.Data
	vars["fileType"] = ctx.FileType
	vars["from"] = ctx.From.String()
	vars["to"] = ctx.To.String()
	return vars
}

// RuleMigration adapts a compiled rule into a MigrationFunc for the edge
// fileType from -> to.
func RuleMigration(rule CompiledRule, fileType string, from, to Version) MigrationFunc {
	return func(data any) (any, error) {
		return rule.Evaluate(RuleContext{
			Data:     data,
			FileType: fileType,
			From:     from,
			To:       to,
		})
	}
}

// RegisterExpression compiles expression with evaluator and registers the
// result as the migration of fileType from -> to.
func (r *Registry) RegisterExpression(fileType string, from, to Version, evaluator Evaluator, expression string) error {
	if !r.HasFileType(fileType) {
		return r.unknownFileType(fileType)
	}
	if evaluator == nil {
		return fmt.Errorf("%w: %s %s -> %s", ErrNoEvaluator, fileType, from, to)
	}
	rule, err := evaluator.Compile(expression)
	if err != nil {
		return wrapEvaluationError(evaluator.Engine(), expression, fileType, err)
	}
	return r.RegisterMigration(fileType, from, to, RuleMigration(rule, fileType, from, to))
}

func emptyExpressionError(engine string) error {
	return &EvaluationError{Engine: engine, Err: errors.New("expression must not be empty")}
}
