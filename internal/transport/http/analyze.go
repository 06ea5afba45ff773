package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/bot"
)

type analyzeRequest struct {
	Board  [][]int `json:"board" binding:"required"`
	Player int     `json:"player" binding:"required,oneof=-1 1"`
	Depth  int     `json:"depth" binding:"required,min=1"`
}

type analyzeResponse struct {
	Column   int  `json:"column"`
	Score    int  `json:"score"`
	Nodes    int  `json:"nodes"`
	Terminal bool `json:"terminal"`
	Winner   int  `json:"winner"`
}

type AnalyzeHandler struct {
	MaxDepth int
}

func NewAnalyzeHandler(maxDepth int) *AnalyzeHandler {
	return &AnalyzeHandler{MaxDepth: maxDepth}
}

// Analyze runs a search on a posted position without touching any session.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Depth > h.MaxDepth {
		c.JSON(http.StatusBadRequest, gin.H{"error": "depth exceeds the server maximum"})
		return
	}

	board, err := domain.BoardFromInts(req.Board)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	engine, err := bot.NewEngine(domain.Piece(req.Player), req.Depth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := engine.ChooseMove(board)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	winner, _ := domain.Winner(board, domain.WinLength)
	c.JSON(http.StatusOK, analyzeResponse{
		Column:   res.Column,
		Score:    res.Score,
		Nodes:    res.Nodes,
		Terminal: domain.IsTerminal(board, domain.WinLength),
		Winner:   int(winner),
	})
}
