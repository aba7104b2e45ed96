package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/LJTian/HotSearch/internal/bot"
)

const requestIDHeader = "X-Request-ID"

type Server struct {
	bot *bot.Service
}

func NewServer(svc *bot.Service) *Server {
	return &Server{bot: svc}
}

// NewRouter 创建带请求 ID 与 Recovery 的 gin 引擎并注册全部路由
func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(requestIDMiddleware())
	r.Use(gin.Recovery())
	s.RegisterRoutes(r)
	return r
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/hot/:platform", s.hotSearch)
		v1.POST("/command", s.command)
		v1.GET("/status", s.status)
	}
}

// commandRequest 模拟一条聊天消息；group_id 为空视为私聊
type commandRequest struct {
	Text    string `json:"text" binding:"required"`
	UserID  string `json:"user_id"`
	GroupID string `json:"group_id"`
}

type replyData struct {
	Platform string `json:"platform,omitempty"`
	Reply    string `json:"reply"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) hotSearch(c *gin.Context) {
	p, ok := bot.LookupPlatform(c.Param("platform"))
	if !ok {
		respondError(c, http.StatusNotFound, "not_found", "unknown platform")
		return
	}

	msg := bot.Message{
		UserID:  c.DefaultQuery("user_id", c.ClientIP()),
		GroupID: c.Query("group_id"),
	}
	reply := s.bot.HotSearch(c.Request.Context(), p, msg.Identity(), c.Query("count"))
	respondOK(c, replyData{Platform: string(p), Reply: reply})
}

func (s *Server) command(c *gin.Context) {
	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if req.UserID == "" {
		req.UserID = c.ClientIP()
	}

	reply, ok := s.bot.Handle(c.Request.Context(), bot.Message{
		Text:    req.Text,
		UserID:  req.UserID,
		GroupID: req.GroupID,
	})
	if !ok {
		respondError(c, http.StatusNotFound, "not_found", "unknown command")
		return
	}
	respondOK(c, replyData{Reply: reply})
}

func (s *Server) status(c *gin.Context) {
	respondOK(c, replyData{Reply: s.bot.Status()})
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	logrus.WithField("request_id", c.GetString("request_id")).
		Warnf("%s %s %d: %s", c.Request.Method, c.Request.URL.Path, status, message)
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}

// requestIDMiddleware 沿用调用方的 X-Request-ID，没有则生成一个
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)

		c.Next()

		logrus.WithFields(logrus.Fields{
			"request_id": id,
			"status":     c.Writer.Status(),
		}).Debugf("%s %s", c.Request.Method, c.Request.URL.Path)
	}
}
