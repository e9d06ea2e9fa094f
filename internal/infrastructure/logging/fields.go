package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// Shared field keys, so desktop and application ids can be grepped across
// components.
const (
	KeyDesktop    = "desktop_id"
	KeyApp        = "app"
	KeyConnection = "conn_id"
	KeyTrace      = "trace_id"
)

// Desktop tags an entry with a desktop id.
func Desktop(id fmt.Stringer) zap.Field {
	return zap.Stringer(KeyDesktop, id)
}

// App tags an entry with an application id.
func App[T ~string](id T) zap.Field {
	return zap.String(KeyApp, string(id))
}

// Connection tags an entry with a stream connection id.
func Connection(id fmt.Stringer) zap.Field {
	return zap.Stringer(KeyConnection, id)
}

// Trace tags an entry with a trace id.
func Trace(id fmt.Stringer) zap.Field {
	return zap.Stringer(KeyTrace, id)
}
