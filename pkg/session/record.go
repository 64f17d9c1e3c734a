package session

import "github.com/patchbay/sessioncore/pkg/midi"

// RecordNoteEvents feeds one block's classified note events into every
// slot of the track that is in ClipRecording state. Each note-on and
// note-off updates the track's KeyGrid and is recorded directly at
// blockStartBeat; the grid is not compared across blocks to derive
// notes. A note held across the clip's loop boundary is split into two
// notes, and a note-on at or past the loop point grows the clip (see
// growClipIfNeeded).
func (s *Session) RecordNoteEvents(track int, events []midi.Classified, blockStartBeat float64) {
	if track < 0 || track >= len(s.Tracks) {
		return
	}
	grid := &s.keyGrids[track]

	for _, ev := range events {
		switch ev.Kind {
		case midi.EventNoteOn:
			grid.NoteOn(ev.Channel, ev.Key)
			s.recordNoteOn(track, ev.Channel, ev.Key, ev.Velocity, blockStartBeat)
		case midi.EventNoteOff:
			grid.NoteOff(ev.Channel, ev.Key)
			s.recordNoteOff(track, ev.Channel, ev.Key, blockStartBeat)
		}
	}
}

func (s *Session) recordNoteOn(track int, channel, key uint8, velocity float64, atBeat float64) {
	for _, slot := range s.Clips[track] {
		if slot.State != ClipRecording {
			continue
		}
		s.growClipIfNeeded(slot, atBeat)
		relBeat := wrapModulo(atBeat-slot.recStartBeat, slot.LengthBeats)
		if len(slot.Notes) >= MaxNotesPerClip {
			continue
		}
		if slot.openNotes == nil {
			slot.openNotes = make(map[uint8]int)
		}
		idx := len(slot.Notes)
		slot.Notes = append(slot.Notes, Note{
			Pitch:    key,
			Start:    relBeat,
			Velocity: velocity,
		})
		slot.openNotes[key] = idx
	}
}

func (s *Session) recordNoteOff(track int, channel, key uint8, atBeat float64) {
	for _, slot := range s.Clips[track] {
		if slot.State != ClipRecording || slot.openNotes == nil {
			continue
		}
		idx, open := slot.openNotes[key]
		if !open {
			continue
		}
		relBeat := wrapModulo(atBeat-slot.recStartBeat, slot.LengthBeats)
		start := slot.Notes[idx].Start
		if relBeat < start {
			// held across the loop boundary: close the tail segment at
			// the loop point and open a new head segment at 0, per
			// spec.md's scenario 3 rather than reporting one wrapped
			// duration.
			slot.Notes[idx].Duration = slot.LengthBeats - start
			if len(slot.Notes) < MaxNotesPerClip {
				slot.Notes = append(slot.Notes, Note{
					Pitch:    key,
					Start:    0,
					Duration: relBeat,
					Velocity: slot.Notes[idx].Velocity,
				})
			}
		} else {
			slot.Notes[idx].Duration = relBeat - start
		}
		delete(slot.openNotes, key)
	}
}

// growClipIfNeeded is called for each recorded note-on. A clip with no
// length yet gets DefaultClipBars bars; otherwise the length grows by
// DefaultClipBars bars until it exceeds the beats elapsed since record
// start, so an overdub pass that runs long isn't truncated. A note held
// past the loop point without a new note-on does not grow the clip.
func (s *Session) growClipIfNeeded(slot *ClipSlot, atBeat float64) {
	if slot.LengthBeats <= 0 {
		slot.LengthBeats = DefaultClipBars * s.Transport.BeatsPerBar
		return
	}
	elapsed := atBeat - slot.recStartBeat
	for elapsed >= slot.LengthBeats {
		slot.LengthBeats += DefaultClipBars * s.Transport.BeatsPerBar
	}
}
