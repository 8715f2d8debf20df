package fileio

import (
	"errors"
	"fmt"
)

// EvaluationError captures the engine and expression of a failed migration
// rule alongside the originating error.
type EvaluationError struct {
	Engine   string
	Expr     string
	FileType string
	Err      error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	fileType := e.FileType
	if fileType == "" {
		fileType = "<none>"
	}
	return fmt.Sprintf("fileio: %s rule %s file_type=%s: %v", e.Engine, describeExpression(e.Expr), fileType, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapEvaluationError(engine, expr, fileType string, err error) error {
	if err == nil {
		return nil
	}

	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		if evalErr.Engine == "" {
			evalErr.Engine = engine
		}
		if evalErr.Expr == "" {
			evalErr.Expr = expr
		}
		if evalErr.FileType == "" {
			evalErr.FileType = fileType
		}
		return evalErr
	}

	return &EvaluationError{
		Engine:   engine,
		Expr:     expr,
		FileType: fileType,
		Err:      err,
	}
}
