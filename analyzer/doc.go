// Package analyzer decodes captured USB Power Delivery traffic.
//
// An Analyzer pulls frames from a FrameSource, parses each one with the
// message package and reports the result through callbacks. Chunked
// extended messages are reassembled into complete payloads per SOP and
// message type.
//
// Basic usage:
//
//	capture, err := trace.Parse("session.txt")
//	if err != nil {
//	    return err
//	}
//
//	a := analyzer.New(analyzer.WithMessageHandler(func(r analyzer.Result) {
//	    fmt.Printf("%4d %s\n", r.Index, r.Frame)
//	}))
//	stats, err := a.Run(ctx, analyzer.NewSliceSource(capture))
//
// Frames that fail to decode do not stop a run unless WithStopOnError is
// set; they are counted in Stats and passed to the ErrorHandler.
package analyzer
