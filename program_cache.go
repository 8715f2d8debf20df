package fileio

// ProgramCache stores compiled expression programs keyed by engine and
// expression.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

func programCacheKey(engine, expression string) string {
	return engine + ":" + expression
}
