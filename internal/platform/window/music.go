package window

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const sampleRate = 44100

// Background tune: a slow arpeggio, one note per beat.
var (
	tuneNotes = []float64{
		261.63, 329.63, 392.00, 523.25, // C major
		220.00, 261.63, 329.63, 440.00, // A minor
		174.61, 220.00, 261.63, 349.23, // F major
		196.00, 246.94, 293.66, 392.00, // G major
	}
	beatSeconds = 0.3
)

// synthTune renders the tune as 16-bit little-endian stereo PCM, the format
// ebiten's audio players expect.
func synthTune(rate int) []byte {
	beat := int(float64(rate) * beatSeconds)
	attack := float64(max(rate/200, 1))
	buf := make([]byte, 0, len(tuneNotes)*beat*4)
	var frame [4]byte

	for _, freq := range tuneNotes {
		for i := 0; i < beat; i++ {
			t := float64(i) / float64(rate)
			// Short attack, exponential decay.
			env := math.Min(1, float64(i)/attack) * math.Exp(-3*float64(i)/float64(beat))
			v := 0.6*math.Sin(2*math.Pi*freq*t) + 0.2*math.Sin(4*math.Pi*freq*t)
			s := int16(v * env * 0.5 * math.MaxInt16)
			binary.LittleEndian.PutUint16(frame[0:], uint16(s))
			binary.LittleEndian.PutUint16(frame[2:], uint16(s))
			buf = append(buf, frame[:]...)
		}
	}
	return buf
}

// music loops the background tune and follows the game's music flag.
type music struct {
	player *audio.Player
}

// newMusic prepares the looping player. It does not start playback.
func newMusic(volume float64) (*music, error) {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}

	pcm := synthTune(ctx.SampleRate())
	loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	p, err := ctx.NewPlayer(loop)
	if err != nil {
		return nil, err
	}
	p.SetVolume(volume)
	return &music{player: p}, nil
}

// sync starts or pauses playback to match on.
func (m *music) sync(on bool) {
	if m == nil {
		return
	}
	switch {
	case on && !m.player.IsPlaying():
		m.player.Play()
	case !on && m.player.IsPlaying():
		m.player.Pause()
	}
}

func (m *music) close() error {
	if m == nil {
		return nil
	}
	return m.player.Close()
}
