package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/quick-skirmish/internal/config"
	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish"
	"github.com/vovakirdan/quick-skirmish/internal/games/skirmish/engine"
	"github.com/vovakirdan/quick-skirmish/internal/session"
)

const defaultPlayer = "anonymous"

type handler struct {
	sessions *session.Manager
}

func (h *handler) registerRoutes(group *gin.RouterGroup) {
	s := group.Group("/sessions")
	s.POST("", h.create)
	s.GET("/:id", h.get)
	s.DELETE("/:id", h.delete)
	s.GET("/:id/actions", h.actions)
	s.POST("/:id/move", h.move)
	s.POST("/:id/attack", h.attack)
	s.POST("/:id/end-turn", h.endTurn)
	s.POST("/:id/reset", h.reset)
}

func (h *handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	preset, err := config.ParseDifficulty(req.Difficulty)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Player == "" {
		req.Player = defaultPlayer
	}

	s, err := h.sessions.Create(req.Player, preset)
	if err != nil {
		h.error(c, err)
		return
	}
	h.respondSession(c, http.StatusCreated, s, false)
}

func (h *handler) get(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	h.respondSession(c, http.StatusOK, s, true)
}

func (h *handler) delete(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	if err := h.sessions.Delete(id); err != nil {
		h.error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) actions(c *gin.Context) {
	var q actionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.fail(c, http.StatusBadRequest, "x and y query parameters are required")
		return
	}
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var actions engine.Actions
	err := h.sessions.Do(id, func(e *engine.Engine) {
		actions = e.ValidActions(engine.Pos(*q.X, *q.Y))
	})
	if err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusOK, actions)
}

func (h *handler) move(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "from and to are required")
		return
	}
	h.command(c, func(e *engine.Engine) bool {
		return e.MoveUnit(*req.From, *req.To)
	})
}

func (h *handler) attack(c *gin.Context) {
	var req attackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, "from and target are required")
		return
	}
	h.command(c, func(e *engine.Engine) bool {
		return e.AttackUnit(*req.From, *req.Target)
	})
}

// endTurn always succeeds; after game over it leaves the state unchanged.
func (h *handler) endTurn(c *gin.Context) {
	h.command(c, func(e *engine.Engine) bool {
		e.EndTurn()
		return true
	})
}

func (h *handler) reset(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	if err := h.sessions.Reset(id); err != nil {
		h.error(c, err)
		return
	}
	s, err := h.sessions.Get(id)
	if err != nil {
		h.error(c, err)
		return
	}
	h.respondSession(c, http.StatusOK, s, false)
}

// command runs an engine command. Rejected commands are not errors; they
// answer 200 with ok=false.
func (h *handler) command(c *gin.Context, fn func(e *engine.Engine) bool) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var resp commandResponse
	err := h.sessions.Do(id, func(e *engine.Engine) {
		resp.OK = fn(e)
		resp.State = e.State()
	})
	if err != nil {
		h.error(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) respondSession(c *gin.Context, status int, s *session.Session, withEvents bool) {
	resp := sessionResponse{
		SessionID:  string(s.ID()),
		Player:     s.Player(),
		Difficulty: string(s.Difficulty()),
	}
	err := h.sessions.Do(s.ID(), func(e *engine.Engine) {
		resp.State = e.State()
		resp.Result = skirmish.ResultOf(e)
		if withEvents {
			resp.Events = e.Events()
		}
	})
	if err != nil {
		h.error(c, err)
		return
	}
	c.JSON(status, resp)
}

func (h *handler) sessionID(c *gin.Context) (session.ID, bool) {
	id, err := session.ParseID(c.Param("id"))
	if err != nil {
		h.error(c, err)
		return "", false
	}
	return id, true
}

func (h *handler) lookup(c *gin.Context) (*session.Session, bool) {
	id, ok := h.sessionID(c)
	if !ok {
		return nil, false
	}
	s, err := h.sessions.Get(id)
	if err != nil {
		h.error(c, err)
		return nil, false
	}
	return s, true
}

func (h *handler) fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: msg})
}

func (h *handler) error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		h.fail(c, http.StatusNotFound, "session not found")
	case errors.Is(err, session.ErrTooManySessions):
		h.fail(c, http.StatusServiceUnavailable, err.Error())
	default:
		_ = c.Error(err)
		h.fail(c, http.StatusInternalServerError, "internal error")
	}
}
