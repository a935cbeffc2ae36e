// Package remote is a thin request/response wrapper around the game
// backend's endpoints: list games, analyze game, explain move, plus the
// send-details side channel. No caching here — callers own caching.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/akoQassym/grandmaster-ai/app/models"
)

// Client talks to the analysis backend. Construct once and share; the
// transport is injectable for tests.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient builds a client for the backend at baseURL. A nil httpc gets a
// default with a generous timeout — analysis runs for several seconds.
func NewClient(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 90 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpc: httpc}
}

// FetchGamesForPlayer lists the player's games and adapts the raw Lichess
// payload into bare Game records (no analysis, no explanations).
func (c *Client) FetchGamesForPlayer(ctx context.Context, playerID string) ([]models.Game, error) {
	const op = "fetchGames"

	var raw []models.LichessGame
	url := fmt.Sprintf("%s/api/lichess/%s", c.baseURL, playerID)
	if err := c.getJSON(ctx, url, &raw); err != nil {
		return nil, &RemoteServiceError{Op: op, Err: err}
	}

	games := make([]models.Game, 0, len(raw))
	for _, lg := range raw {
		g, err := adaptLichessGame(playerID, lg)
		if err != nil {
			return nil, &RemoteServiceError{Op: op, Err: err}
		}
		games = append(games, g)
	}
	return games, nil
}

// FetchAnalysis runs the engine analysis for one game. May take several
// seconds; callers must treat it as slow and show an in-progress state.
func (c *Client) FetchAnalysis(ctx context.Context, pgn, playerID string) ([]models.Move, error) {
	const op = "fetchAnalysis"

	body := map[string]string{"pgn": pgn, "username": playerID}
	var moves []models.Move
	if err := c.postJSON(ctx, c.baseURL+"/api/analyze", body, &moves); err != nil {
		return nil, &RemoteServiceError{Op: op, Err: err}
	}
	return moves, nil
}

// FetchExplanation asks for a natural-language explanation of one analyzed
// move.
func (c *Client) FetchExplanation(ctx context.Context, move models.Move) (string, error) {
	const op = "fetchExplanation"

	body := map[string]models.Move{"analysis": move}
	var out struct {
		Explanation string `json:"explanation"`
	}
	if err := c.postJSON(ctx, c.baseURL+"/api/explain", body, &out); err != nil {
		return "", &RemoteServiceError{Op: op, Err: err}
	}
	return out.Explanation, nil
}

// SendDetails posts a lichess id + email to the notification side channel.
func (c *Client) SendDetails(ctx context.Context, lichessID, email string) error {
	const op = "sendDetails"

	body := map[string]string{"lichessId": lichessID, "email": email}
	if err := c.postJSON(ctx, c.baseURL+"/api/send-details", body, nil); err != nil {
		return &RemoteServiceError{Op: op, Err: err}
	}
	return nil
}

func adaptLichessGame(playerID string, lg models.LichessGame) (models.Game, error) {
	white, black := lg.Players.White, lg.Players.Black
	if white.User == nil && black.User == nil {
		return models.Game{}, &MalformedResponseError{
			Reason: fmt.Sprintf("game %s: no identified player on either side", lg.ID),
		}
	}

	// Requester is white iff the white user id matches; otherwise black,
	// which also covers games where the requester faced the engine as black.
	isWhite := white.User != nil && white.User.ID == playerID
	opp, color := black, "white"
	if !isWhite {
		opp, color = white, "black"
	}

	g := models.Game{
		ID:     lg.ID,
		Date:   time.UnixMilli(lg.CreatedAt),
		UserID: playerID,
		Color:  color,
		Status: lg.Status,
		Winner: lg.Winner,
		PGN:    lg.PGN,
	}

	if opp.User != nil {
		id := opp.User.ID
		g.OpponentID = &id
		g.OpponentName = opp.User.Name
		g.OpponentRating = opp.Rating
	} else {
		g.OpponentName = fmt.Sprintf("AI Level %d", opp.AILevel)
		g.OpponentRating = opp.AILevel
	}
	return g, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &TransportError{Body: err.Error()}
	}
	return c.do(req, v)
}

func (c *Client) postJSON(ctx context.Context, url string, body, v any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &TransportError{Body: err.Error()}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return &TransportError{Body: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, v)
}

func (c *Client) do(req *http.Request, v any) error {
	res, err := c.httpc.Do(req)
	if err != nil {
		return &TransportError{Body: err.Error()}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		// backend errors arrive as {"detail": "..."}
		var msg struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(res.Body).Decode(&msg)
		return &TransportError{Status: res.StatusCode, Body: msg.Detail}
	}
	if v == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return &MalformedResponseError{Reason: err.Error()}
	}
	return nil
}
