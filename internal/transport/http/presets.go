package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/connect-four/internal/config"
	"github.com/iamasit07/connect-four/internal/service/bot"
)

type difficultyResponse struct {
	Name  bot.BotDifficulty `json:"name"`
	Label string            `json:"label"`
	Depth int               `json:"depth"`
}

type presetsResponse struct {
	Grids             []config.GridPreset  `json:"grids"`
	Difficulties      []difficultyResponse `json:"difficulties"`
	DefaultGrid       config.GridPreset    `json:"defaultGrid"`
	DefaultDifficulty bot.BotDifficulty    `json:"defaultDifficulty"`
}

// PresetsHandler serves the setup menu choices.
func PresetsHandler(cfg *config.Config) gin.HandlerFunc {
	resp := presetsResponse{
		Grids:             config.GridPresets,
		Difficulties:      make([]difficultyResponse, 0, len(bot.Difficulties)),
		DefaultGrid:       config.GridPreset{Rows: cfg.Rows, Columns: cfg.Columns},
		DefaultDifficulty: cfg.Difficulty,
	}
	for _, d := range bot.Difficulties {
		resp.Difficulties = append(resp.Difficulties, difficultyResponse{Name: d, Label: d.Label(), Depth: d.Depth()})
	}

	return func(c *gin.Context) {
		c.JSON(http.StatusOK, resp)
	}
}
