package bench

import (
	"io"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"github.com/IlikeChooros/go-gomoku/pkg/board"
)

type VersusMatchResult int

const (
	VersusPl1Win VersusMatchResult = 1
	VersusPl2Win VersusMatchResult = -1
	VersusDraw   VersusMatchResult = 0
)

func (r VersusMatchResult) String() string {
	switch r {
	case VersusPl1Win:
		return "player1"
	case VersusPl2Win:
		return "player2"
	}
	return "draw"
}

type VersusArenaStats struct {
	p1Wins           uint32
	p2Wins           uint32
	draws            uint32
	firstToMoveWins  uint32
	secondToMoveWins uint32
}

func (vas *VersusArenaStats) Total() int {
	return vas.P1Wins() + vas.P2Wins() + vas.Draws()
}

func (vas *VersusArenaStats) P1Wins() int {
	return int(atomic.LoadUint32(&vas.p1Wins))
}

func (vas *VersusArenaStats) P2Wins() int {
	return int(atomic.LoadUint32(&vas.p2Wins))
}

func (vas *VersusArenaStats) Draws() int {
	return int(atomic.LoadUint32(&vas.draws))
}

func (vas *VersusArenaStats) FirstToMoveWins() int {
	return int(atomic.LoadUint32(&vas.firstToMoveWins))
}

func (vas *VersusArenaStats) SecondToMoveWins() int {
	return int(atomic.LoadUint32(&vas.secondToMoveWins))
}

func (vas *VersusArenaStats) record(result VersusMatchResult, outcome GameOutcome) {
	switch result {
	case VersusDraw:
		atomic.AddUint32(&vas.draws, 1)
		return
	case VersusPl1Win:
		atomic.AddUint32(&vas.p1Wins, 1)
	default:
		atomic.AddUint32(&vas.p2Wins, 1)
	}

	if outcome.FirstPlayerWon {
		atomic.AddUint32(&vas.firstToMoveWins, 1)
	} else {
		atomic.AddUint32(&vas.secondToMoveWins, 1)
	}
}

type VersusWorkerInfo struct {
	WorkerID      int
	GameID        string
	GameIndex     int
	GameSeed      uint64
	NGames        int
	FinishedGames int
	GameMoveNum   int
	Moves         []int
	P1First       bool
	Result        VersusMatchResult
	P1Wins        int
	P2Wins        int
	Draws         int
	P1Name        string
	P2Name        string
}

type VersusSummaryInfo struct {
	TotalGames       int         `json:"total_games" yaml:"total_games"`
	P1Wins           int         `json:"player1_wins" yaml:"player1_wins"`
	P2Wins           int         `json:"player2_wins" yaml:"player2_wins"`
	FirstToMoveWins  int         `json:"first_to_move_wins" yaml:"first_to_move_wins"`
	SecondToMoveWins int         `json:"second_to_move_wins" yaml:"second_to_move_wins"`
	Draws            int         `json:"draws" yaml:"draws"`
	Workers          int         `json:"workers" yaml:"workers"`
	Seed             uint64      `json:"seed" yaml:"seed"`
	Rules            board.Rules `json:"rules" yaml:"rules"`
	P1Name           string      `json:"player1_name" yaml:"player1_name"`
	P2Name           string      `json:"player2_name" yaml:"player2_name"`
	AvgGameLength    float64     `json:"avg_game_length" yaml:"avg_game_length"`
}

// Write the summary as a YAML document
func (s VersusSummaryInfo) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// represents result from the first-player's perspective in a single game
type GameOutcome struct {
	FirstPlayerWon bool
	IsDraw         bool
}

// maps a game outcome to which agent won, given player assignments
func toAgentResult(outcome GameOutcome, p1WentFirst bool) VersusMatchResult {
	if outcome.IsDraw {
		return VersusDraw
	}

	if p1WentFirst == outcome.FirstPlayerWon {
		return VersusPl1Win
	}
	return VersusPl2Win
}

// determines the winner from the final position and the last move,
// cross always moves first
func computeOutcome(b *board.Board, lastMove int) GameOutcome {
	outcome, over := board.Terminal(b, lastMove)
	if !over {
		panic("computeOutcome: position not terminated")
	}

	winner, ok := outcome.Winner()
	if !ok {
		return GameOutcome{IsDraw: true}
	}
	return GameOutcome{FirstPlayerWon: winner == board.CrossPlayer}
}
