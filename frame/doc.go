// Package frame carries the stroke list of one rendered frame to an output
// backend.
//
// A Frame is produced by a sketch.Collector, played back once into a
// Backend and discarded. Backends are looked up by name through a registry
// that follows the database/sql driver pattern:
//
//	import _ "github.com/gogpu/sketch/frame/backends/raster"
//
//	b, err := frame.NewBackend("raster")
//	if err != nil {
//	    // backend not linked in
//	}
//	if err := f.Playback(b); err != nil {
//	    // ...
//	}
//	b.(frame.FileBackend).SaveToFile("out.png")
package frame
