package game

import (
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"cookie4/internal/util"
)

const noWinnerText = "No winner.\n"

func winText(team Cell) string { return team.Glyph() + " wins!\n" }

// Table owns the shared board and the mutex guarding it
type Table struct {
	mu    sync.Mutex
	board Board
}

// NewTable creates a table holding an empty board
func NewTable() *Table {
	return &Table{board: NewBoard()}
}

// Recorder receives board activity, typically to export it as metrics
type Recorder interface {
	Placement(team Cell, result string)
	Outcome(source string, o Outcome)
	Reset()
}

type nopRecorder struct{}

func (nopRecorder) Placement(Cell, string)   {}
func (nopRecorder) Outcome(string, Outcome) {}
func (nopRecorder) Reset()                   {}

// Reply is a rendered board plus the outcome it was rendered for
type Reply struct {
	Text    string
	Outcome Outcome
}

// Service serializes every board verb over one table and one random stream
type Service struct {
	table  *Table
	stream *util.LockedStream
	rec    Recorder
	logger *log.Logger
}

type Option func(*Service)

func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.rec = r
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService builds the board service over an existing table and stream
func NewService(table *Table, stream *util.LockedStream, opts ...Option) *Service {
	s := &Service{
		table:  table,
		stream: stream,
		rec:    nopRecorder{},
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Show renders the current board, adding the winner line when there is one
func (s *Service) Show() Reply {
	s.table.mu.Lock()
	defer s.table.mu.Unlock()

	o := Evaluate(&s.table.board)
	text := s.table.board.Render()
	if o.State == Won {
		text += winText(o.Winner)
	}
	return Reply{Text: text, Outcome: o}
}

// Reset empties the board and rewinds the random stream to its seed
func (s *Service) Reset() Reply {
	s.table.mu.Lock()
	defer s.table.mu.Unlock()

	s.stream.Reseed()
	s.table.board = NewBoard()
	s.rec.Reset()
	s.logger.Debug("board reset", "seed", s.stream.Seed())
	return Reply{Text: s.table.board.Render(), Outcome: Outcome{State: InProgress}}
}

// Place drops a piece for team into a 1-based column.
// ErrGameOver and ErrColFull come with the unchanged board in the reply.
func (s *Service) Place(team Cell, column int) (Reply, error) {
	if !team.IsTeam() {
		s.rec.Placement(team, "bad_request")
		return Reply{}, ErrInvalidTeam
	}
	if column < 1 || column > Size {
		s.rec.Placement(team, "bad_request")
		return Reply{}, ErrColOutOfRange
	}

	s.table.mu.Lock()
	defer s.table.mu.Unlock()

	o, err := Place(&s.table.board, column-1, team)
	text := s.table.board.Render()
	switch {
	case errors.Is(err, ErrGameOver):
		s.rec.Placement(team, "game_over")
		return Reply{Text: text + winText(o.Winner), Outcome: o}, err
	case errors.Is(err, ErrColFull):
		s.rec.Placement(team, "column_full")
		return Reply{Text: text + noWinnerText, Outcome: o}, err
	case err != nil:
		return Reply{}, err
	}

	s.rec.Placement(team, "ok")
	s.logger.Debug("piece placed", "team", team, "column", column, "state", o.State)
	switch o.State {
	case Won:
		s.rec.Outcome("place", o)
		s.logger.Info("game won", "team", o.Winner)
		text += winText(o.Winner)
	case Draw:
		s.rec.Outcome("place", o)
		text += noWinnerText
	}
	return Reply{Text: text, Outcome: o}, nil
}

// RandomBoard replaces the board with one drawn from the shared stream, whatever its state
func (s *Service) RandomBoard() Reply {
	s.table.mu.Lock()
	defer s.table.mu.Unlock()

	s.stream.Draw(func(src util.BitSource) {
		s.table.board = RandomBoard(src)
	})

	o := Evaluate(&s.table.board)
	s.rec.Outcome("random", o)
	text := s.table.board.Render()
	if o.State == Won {
		return Reply{Text: text + winText(o.Winner), Outcome: o}
	}
	return Reply{Text: text + noWinnerText, Outcome: o}
}

// Snapshot returns a copy of the current board
func (s *Service) Snapshot() Board {
	s.table.mu.Lock()
	defer s.table.mu.Unlock()
	return s.table.board
}
