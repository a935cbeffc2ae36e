package app

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/akoQassym/grandmaster-ai/app/config"
	"github.com/akoQassym/grandmaster-ai/app/models"
	"github.com/akoQassym/grandmaster-ai/classify"
	"github.com/akoQassym/grandmaster-ai/logger"
	"github.com/akoQassym/grandmaster-ai/remote"
	"github.com/akoQassym/grandmaster-ai/store"
	"github.com/akoQassym/grandmaster-ai/view"
)

// Server bundles the shared state behind the HTTP surface: the one store,
// the one list view, and the per-game detail views.
type Server struct {
	cfg      *config.Config
	log      *logger.Logger
	store    *store.GameStore
	client   *remote.Client
	listView *view.ListView
	details  *detailRegistry
}

// NewServer wires the store, client, and views together.
func NewServer(cfg *config.Config, log *logger.Logger) *Server {
	client := remote.NewClient(cfg.Backend.BaseURL, &http.Client{Timeout: cfg.Backend.AnalyzeTimeout})
	return newServer(cfg, log, client)
}

func newServer(cfg *config.Config, log *logger.Logger, client *remote.Client) *Server {
	st := store.NewGameStore()
	st.Subscribe(func() {
		log.Debug("store updated", "games", st.Len())
	})
	loader := view.NewAnalysisLoader(st, client)

	return &Server{
		cfg:      cfg,
		log:      log,
		store:    st,
		client:   client,
		listView: view.NewListView(st, client),
		details: newDetailRegistry(func(gameID string) *view.DetailView {
			return view.NewDetailView(st, loader, client, gameID)
		}),
	}
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetPlayerGames runs the list flow: fetch the player's games into the
// store, then return them grouped by calendar day.
func (s *Server) GetPlayerGames(c *gin.Context) {
	playerID := strings.ToLower(c.Param("playerId"))
	if playerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing player id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.Backend.HTTPTimeout)
	defer cancel()

	if err := s.listView.Submit(ctx, playerID); err != nil {
		if errors.Is(err, view.ErrBusy) {
			c.JSON(http.StatusConflict, gin.H{"error": "a game list fetch is already in flight"})
			return
		}
		s.log.Error("list fetch failed", "request_id", requestID(c), "player", playerID, "err", err)
		c.JSON(remoteStatus(err), gin.H{"error": err.Error()})
		return
	}

	groups := s.listView.Groups()
	count := 0
	for _, g := range groups {
		count += len(g.Games)
	}
	c.JSON(http.StatusOK, gin.H{
		"playerId": playerID,
		"count":    count,
		"groups":   groups,
	})
}

// GetGame mounts the detail view for a game: resolves it from the store,
// ensures analysis is present (fetching at most once), and returns the
// enriched view model.
func (s *Server) GetGame(c *gin.Context) {
	gameID := c.Param("gameId")
	if gameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing game id"})
		return
	}

	dv := s.details.get(gameID)

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.Backend.AnalyzeTimeout)
	defer cancel()

	g, err := dv.Mount(ctx)
	if err != nil {
		s.log.Error("analysis fetch failed", "request_id", requestID(c), "game", gameID, "err", err)
		c.JSON(remoteStatus(err), gin.H{"error": err.Error(), "state": dv.State()})
		return
	}
	if dv.State() == view.StateNoGame {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found", "state": view.StateNoGame})
		return
	}

	c.JSON(http.StatusOK, s.gameVM(dv, g))
}

// SelectMove updates the detail view's selected move. Local only.
func (s *Server) SelectMove(c *gin.Context) {
	gameID := c.Param("gameId")
	var body struct {
		Index *int `json:"index"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Index == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must carry a move index"})
		return
	}

	dv := s.details.get(gameID)
	if err := dv.SelectMove(*body.Index); err != nil {
		switch {
		case errors.Is(err, view.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, view.ErrNoAnalysis):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	index, uci := dv.Selected()
	c.JSON(http.StatusOK, gin.H{"selectedIndex": index, "selectedMove": uci})
}

// ExplainMove fetches (or reads from cache) the explanation for the
// detail view's selected move.
func (s *Server) ExplainMove(c *gin.Context) {
	gameID := c.Param("gameId")
	dv := s.details.get(gameID)

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.Backend.AnalyzeTimeout)
	defer cancel()

	text, err := dv.Explain(ctx)
	if err != nil {
		switch {
		case errors.Is(err, view.ErrBusy):
			c.JSON(http.StatusConflict, gin.H{"error": "an explanation fetch is already in flight"})
		case errors.Is(err, view.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, view.ErrNoAnalysis), errors.Is(err, view.ErrBadIndex):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			s.log.Error("explanation fetch failed", "request_id", requestID(c), "game", gameID, "err", err)
			c.JSON(remoteStatus(err), gin.H{"error": err.Error()})
		}
		return
	}

	_, uci := dv.Selected()
	c.JSON(http.StatusOK, gin.H{"move": uci, "explanation": text})
}

// Contact forwards a lichess id + email to the notification side channel.
// Fire-and-forget: the caller gets a 202 as soon as the payload is valid.
func (s *Server) Contact(c *gin.Context) {
	var body struct {
		LichessID string `json:"lichessId"`
		Email     string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.LichessID == "" || body.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lichessId and email are required"})
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Backend.HTTPTimeout)
		defer cancel()
		if err := s.client.SendDetails(ctx, body.LichessID, body.Email); err != nil {
			s.log.Error("send-details failed", "lichessId", body.LichessID, "err", err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

type moveVM struct {
	models.Move
	Badge       classify.Info `json:"badge"`
	Explanation string        `json:"explanation,omitempty"`
}

func (s *Server) gameVM(dv *view.DetailView, g models.Game) gin.H {
	moves := make([]moveVM, 0, len(g.Analysis))
	for _, m := range g.Analysis {
		moves = append(moves, moveVM{
			Move:        m,
			Badge:       classify.Lookup(m.Classification),
			Explanation: g.Explanations[m.UCIMove],
		})
	}

	index, uci := dv.Selected()
	bare := g
	bare.Analysis = nil
	bare.Explanations = nil

	return gin.H{
		"game":          bare,
		"outcome":       view.Outcome(g),
		"state":         dv.State(),
		"selectedIndex": index,
		"selectedMove":  uci,
		"moves":         moves,
	}
}

// remoteStatus maps a remote failure onto the response status: upstream
// 404s pass through (unknown player id), everything else is a bad gateway.
func remoteStatus(err error) int {
	var te *remote.TransportError
	if errors.As(err, &te) && te.Status == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}
