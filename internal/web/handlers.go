package web

import (
	"context"
	"errors"
	"net/http"

	"DayTradeDesk/internal/customerrors"
	"DayTradeDesk/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	msgEmptyTicker   = "Please enter a ticker symbol."
	msgInvalidTicker = "Invalid Ticker. Please enter a valid stock symbol."
	msgAgentDown     = "The analysis agents are unavailable right now. Please try again shortly."
	msgInternal      = "Something went wrong while analyzing this ticker."
)

// Response is the envelope of every JSON endpoint.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// statusFor maps pipeline errors onto an HTTP status and a user-facing message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, customerrors.ErrEmptyTicker):
		return http.StatusBadRequest, msgEmptyTicker
	case errors.Is(err, customerrors.ErrEmptyInput),
		errors.Is(err, customerrors.ErrUnknownTicker),
		errors.Is(err, customerrors.ErrDataUnavailable):
		return http.StatusUnprocessableEntity, msgInvalidTicker
	case errors.Is(err, customerrors.ErrAgentUnavailable):
		return http.StatusBadGateway, msgAgentDown
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func (s *Server) run(c *gin.Context, ticker string) (*model.Analysis, error) {
	ctx := c.Request.Context()
	if s.p.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.p.RequestTimeout)
		defer cancel()
	}
	res, err := s.analyzer.Analyze(ctx, ticker)
	if err != nil {
		status, _ := statusFor(err)
		ev := log.Warn()
		if status >= http.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Err(err).Str("ticker", ticker).Int("status", status).Msg("analysis failed")
	}
	return res, err
}

func (s *Server) healthCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (s *Server) indexPage(c *gin.Context) {
	s.renderPage(c, http.StatusOK, pageData{})
}

func (s *Server) analyzePage(c *gin.Context) {
	ticker := c.PostForm("ticker")
	data := pageData{Ticker: ticker}

	res, err := s.run(c, ticker)
	if err != nil {
		status, msg := statusFor(err)
		data.Error = msg
		s.renderPage(c, status, data)
		return
	}

	data.Ticker = res.Ticker
	if err := data.fill(res); err != nil {
		log.Error().Err(err).Str("analysis_id", res.ID).Msg("render analysis")
		data = pageData{Ticker: res.Ticker, Error: msgInternal}
		s.renderPage(c, http.StatusInternalServerError, data)
		return
	}
	s.renderPage(c, http.StatusOK, data)
}

func (s *Server) analyzeJSON(c *gin.Context) {
	res, err := s.run(c, c.Query("ticker"))
	if err != nil {
		status, msg := statusFor(err)
		c.JSON(status, Response{Success: false, Message: msg, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: "analysis complete", Data: res})
}

func (s *Server) renderPage(c *gin.Context, status int, data pageData) {
	data.Examples = s.p.ExampleTickers
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(c.Writer, data); err != nil {
		log.Error().Err(err).Msg("execute page template")
	}
}
