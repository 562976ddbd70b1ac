// Package statsview runs a local HTTP server offering runtime statistics of the
// emulator process. Underlying functionality is provided by
// "github.com/go-echarts/statsview".
//
// After launch, graphical statistics are viewable at:
//
//	localhost:12600/debug/statsview
//
// and the standard Go pprof statistics at:
//
//	localhost:12600/debug/pprof/
package statsview
