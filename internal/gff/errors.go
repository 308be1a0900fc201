package gff

// LineError reports a line that does not fit the nine-column tabular
// shape or carries an unparsable field. It aborts the whole read; no
// partial record set is returned.
type LineError struct {
	Msg string
}

func (e *LineError) Error() string {
	return "line error: " + e.Msg
}

// ConfigError reports a filter configuration that can never take
// effect, such as a source expression matching none of the recognized
// source names. It is raised before any input is read.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Msg
}
