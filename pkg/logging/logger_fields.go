package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Domain field helpers

func Component(name string) Field {
	return String("component", name)
}

func EntityID(id string) Field {
	return String("entity_id", id)
}

// EdgeKey identifies an edge by its endpoint ids
func EdgeKey(source, target string) Field {
	return String("edge", source+"--"+target)
}

func LoadID(id string) Field {
	return String("load_id", id)
}

func NodeCount(n int) Field {
	return Int("nodes", n)
}

func EdgeCount(n int) Field {
	return Int("edges", n)
}

func Zoom(scale float64) Field {
	return Float64("zoom", scale)
}

func Generation(gen uint64) Field {
	return Field{Key: "generation", Value: gen}
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Source(s string) Field {
	return String("source", s)
}
