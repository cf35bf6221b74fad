package pogen

import (
	"bytes"
	"fmt"
	"math"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type (
	// Note is a rendered event: start time, duration until next event,
	// sounding time and accent in seconds, and a raw pitch where 0 is middle C.
	Note struct {
		Start float64
		Pulse
		Pitch float64
	}

	MIDIOptions struct {
		TicksPerBeat int     // resolution of the file; 0 means 960
		BPM          float64 // tempo used to convert seconds to ticks; 0 means DefaultBPM
		Channel      uint8   // 0-15
		Velocity     uint8   // velocity of a fully accented note; 0 means 127
	}
)

// MIDI encodes notes into a single track Standard MIDI File. Notes with zero
// accent or zero sustain are rests and produce no events.
func MIDI(notes []Note, opt MIDIOptions) ([]byte, error) {
	if opt.TicksPerBeat <= 0 {
		opt.TicksPerBeat = 960
	}
	if opt.BPM <= 0 {
		opt.BPM = DefaultBPM
	}
	if opt.Velocity == 0 || opt.Velocity > 127 {
		opt.Velocity = 127
	}
	if opt.Channel > 15 {
		return nil, fmt.Errorf("midi channel %d out of range", opt.Channel)
	}
	ticksPerSecond := float64(opt.TicksPerBeat) * opt.BPM / 60
	type event struct {
		tick uint32
		off  bool
		msg  midi.Message
	}
	var events []event
	for _, n := range notes {
		if n.Acc <= 0 || n.Sus <= 0 {
			continue
		}
		key := clamp(int(math.Round(n.Pitch))+60, 0, 127)
		vel := clamp(int(math.Round(LimitUnit(n.Acc)*float64(opt.Velocity))), 1, 127)
		start := uint32(math.Round(math.Max(n.Start, 0) * ticksPerSecond))
		end := uint32(math.Round(math.Max(n.Start+n.Sus, 0) * ticksPerSecond))
		if end <= start {
			end = start + 1
		}
		events = append(events,
			event{start, false, midi.NoteOn(opt.Channel, uint8(key), uint8(vel))},
			event{end, true, midi.NoteOff(opt.Channel, uint8(key))})
	}
	// note offs go before note ons on the same tick, so repeated keys retrigger
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(opt.TicksPerBeat)
	var tr smf.Track
	tr.Add(0, smf.MetaTempo(opt.BPM))
	var last uint32
	for _, e := range events {
		tr.Add(e.tick-last, e.msg)
		last = e.tick
	}
	tr.Close(0)
	if err := s.Add(tr); err != nil {
		return nil, fmt.Errorf("could not add track: %v", err)
	}
	buf := new(bytes.Buffer)
	if _, err := s.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("MIDI failed: %v", err)
	}
	return buf.Bytes(), nil
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
