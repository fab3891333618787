// Package recording captures legend drawing as typed commands.
//
// A Recorder implements legend.Canvas. Instead of producing pixels it
// stores one command per call; FinishRecording returns an immutable
// Recording that can be inspected in tests or replayed onto any other
// canvas, for example the raster backend:
//
//	rec := recording.NewRecorder(500, 500)
//	if _, err := engine.Render(rec, 500, 500, polygons); err != nil {
//	    return err
//	}
//	r := rec.FinishRecording()
//
//	backend, err := recording.NewBackend("raster")
//	if err != nil {
//	    return err
//	}
//	if err := r.Playback(backend); err != nil {
//	    return err
//	}
//
// Backends register themselves by name from init, following the
// database/sql driver pattern.
package recording
