package api

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/hailam/tictacplay/internal/board"
	"github.com/hailam/tictacplay/internal/game"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

type clientMessage struct {
	Type  string `json:"type"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Piece string `json:"piece,omitempty"`
}

type coordDTO struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type serverMessage struct {
	Type     string    `json:"type"`
	Board    string    `json:"board,omitempty"`
	Human    string    `json:"human,omitempty"`
	Next     string    `json:"next,omitempty"`
	Winner   string    `json:"winner,omitempty"`
	Over     bool      `json:"over"`
	Computer *coordDTO `json:"computer,omitempty"`
	Row      int       `json:"row"`
	Col      int       `json:"col"`
	Outcome  string    `json:"outcome,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// handlePlay runs one game per connection. The human's mark comes from the
// "piece" query parameter (default X).
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	piece := board.Cross
	if q := r.URL.Query().Get("piece"); q != "" {
		p, err := board.ParsePiece(q)
		if err != nil || p == board.Blank {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "piece must be X or O"})
			return
		}
		piece = p
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Str("component", "api").Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	g, _ := game.New(piece, s.engine)
	if err := s.sendState(conn, g, s.computerTurn(g)); err != nil {
		return
	}

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Str("component", "api").Err(err).Msg("websocket read ended")
			}
			return
		}

		var sendErr error
		switch msg.Type {
		case "new":
			if msg.Piece != "" {
				p, err := board.ParsePiece(msg.Piece)
				if err == nil {
					err = g.SetHumanPiece(p)
				}
				if err != nil {
					sendErr = conn.WriteJSON(serverMessage{Type: "error", Error: "piece must be X or O"})
					break
				}
			} else {
				g.Reset()
			}
			sendErr = s.sendState(conn, g, s.computerTurn(g))
		case "move":
			if err := g.PlayHuman(board.Coord{Row: msg.Row, Col: msg.Col}); err != nil {
				sendErr = conn.WriteJSON(serverMessage{Type: "error", Error: err.Error()})
				break
			}
			sendErr = s.sendState(conn, g, s.computerTurn(g))
		case "hint":
			hint, ok := g.Hint()
			if !ok {
				sendErr = conn.WriteJSON(serverMessage{Type: "error", Error: "no legal move"})
				break
			}
			sendErr = conn.WriteJSON(serverMessage{Type: "hint", Row: hint.Move.Row, Col: hint.Move.Col, Outcome: hint.Outcome.String()})
		default:
			sendErr = conn.WriteJSON(serverMessage{Type: "error", Error: "unknown message type"})
		}
		if sendErr != nil {
			return
		}
	}
}

// computerTurn plays the computer's move if it is due.
func (s *Server) computerTurn(g *game.Game) *coordDTO {
	if g.Over() || g.CurrentPlayer().Opponent != game.Computer {
		return nil
	}
	c, err := g.PlayComputer()
	if err != nil {
		log.Error().Str("component", "api").Err(err).Msg("computer move failed")
		return nil
	}
	return &coordDTO{Row: c.Row, Col: c.Col}
}

func (s *Server) sendState(conn *websocket.Conn, g *game.Game, computer *coordDTO) error {
	b := g.Board()
	msg := serverMessage{
		Type:     "state",
		Board:    b.String(),
		Human:    g.Human().Piece.String(),
		Over:     g.Over(),
		Computer: computer,
	}
	if !msg.Over {
		msg.Next = b.SideToMove().String()
	}
	if w, ok := b.Winner(); ok {
		msg.Winner = w.String()
	}
	return conn.WriteJSON(msg)
}
