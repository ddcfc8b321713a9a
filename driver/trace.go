package driver

import "github.com/kallisti-dev/grammardeck/grammar"

// TraceEventKind classifies a TraceEvent.
type TraceEventKind int

const (
	// TraceShift fires when a driver consumes one input token.
	TraceShift TraceEventKind = iota
	// TraceReduce fires when a driver applies a rule.
	TraceReduce
	// TraceHalt fires once, when the driver accepts.
	TraceHalt
)

// TraceEvent describes one step of a running parse. Rule is only valid for
// TraceReduce.
type TraceEvent struct {
	Kind TraceEventKind
	Pos  int
	Rule grammar.Rule
}

// TraceFunc is called after every shift, reduce, and the final halt, if
// registered with SetTrace. There is no dependency on a logging library
// here: callers that want logging wire a TraceFunc that calls into whatever
// logger they already use.
type TraceFunc func(TraceEvent)
