package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

func (s *Service) requestLogger(c *gin.Context) {
	start := time.Now()
	reqID := c.GetHeader(requestIDHeader)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	c.Writer.Header().Set(requestIDHeader, reqID)
	c.Set("request_id", reqID)

	s.mu.Lock()
	s.requests++
	s.mu.Unlock()

	c.Next()

	s.log.Info("request",
		zap.String("request_id", reqID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func (s *Service) cors(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", s.cfg.AllowOrigin)
	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)

	if c.Request.Method == "OPTIONS" {
		c.AbortWithStatus(204)
		return
	}

	c.Next()
}
