package util

import "sync"

// DefaultSeed is the seed the board stream starts from and returns to on reset
const DefaultSeed uint64 = 2024

const chachaRounds = 12

// BitSource yields one pseudo-random bit per call
type BitSource interface {
	NextBool() bool
}

// Stream is a deterministic ChaCha12 keystream read one 32-bit word at a time.
// Two streams built from the same seed produce the same sequence.
type Stream struct {
	key     [8]uint32
	counter uint64
	block   [16]uint32
	pos     int
}

// NewStream creates a stream positioned at the start of the keystream for seed
func NewStream(seed uint64) *Stream {
	s := &Stream{}
	s.Seed(seed)
	return s
}

// Seed rewinds the stream to the start of the keystream for seed
func (s *Stream) Seed(seed uint64) {
	s.key = expandSeed(seed)
	s.counter = 0
	s.pos = len(s.block)
}

// NextUint32 returns the next keystream word
func (s *Stream) NextUint32() uint32 {
	if s.pos >= len(s.block) {
		chachaBlock(&s.block, &s.key, s.counter, chachaRounds)
		s.counter++
		s.pos = 0
	}
	w := s.block[s.pos]
	s.pos++
	return w
}

// NextBool consumes one word and reports whether its top bit is set
func (s *Stream) NextBool() bool {
	return s.NextUint32()>>31 == 1
}

// LockedStream owns a Stream and the mutex guarding it
type LockedStream struct {
	mu     sync.Mutex
	seed   uint64
	stream *Stream
}

// NewLockedStream creates a guarded stream that reseeds to seed on Reseed
func NewLockedStream(seed uint64) *LockedStream {
	return &LockedStream{seed: seed, stream: NewStream(seed)}
}

// Seed returns the seed Reseed rewinds to
func (l *LockedStream) Seed() uint64 { return l.seed }

// Reseed rewinds the stream to its configured seed
func (l *LockedStream) Reseed() {
	l.mu.Lock()
	l.stream.Seed(l.seed)
	l.mu.Unlock()
}

// Draw runs fn with exclusive access to the stream
func (l *LockedStream) Draw(fn func(src BitSource)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.stream)
}
