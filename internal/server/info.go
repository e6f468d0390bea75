package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guiyumin/vgrab/internal/core/extractor"
	"github.com/guiyumin/vgrab/internal/core/format"
	"github.com/guiyumin/vgrab/internal/core/i18n"
	"github.com/guiyumin/vgrab/internal/core/video"
	log "github.com/sirupsen/logrus"
)

// InfoRequest is the request body for POST /api/info
type InfoRequest struct {
	URL string `json:"url"`
}

// statusForError maps an extraction failure to an HTTP status
func statusForError(err error) int {
	if extractor.IsTimeout(err) {
		return http.StatusGatewayTimeout
	}
	switch extractor.KindOf(err) {
	case extractor.KindInvalidURL:
		return http.StatusBadRequest
	case extractor.KindUnavailable, extractor.KindNotFound:
		return http.StatusNotFound
	case extractor.KindPrivate, extractor.KindAgeRestricted:
		return http.StatusForbidden
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) handleInfo(c *gin.Context) {
	t := i18n.T(s.lang())

	var req InfoRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		c.JSON(http.StatusBadRequest, Response{
			Code:    400,
			Data:    gin.H{"kind": extractor.KindInvalidURL},
			Message: t.Errors.URLRequired,
		})
		return
	}
	rawURL := strings.TrimSpace(req.URL)

	ext := s.registry.Match(rawURL)
	if ext == nil {
		c.JSON(http.StatusBadRequest, Response{
			Code:    400,
			Data:    gin.H{"kind": extractor.KindInvalidURL},
			Message: t.Errors.InvalidURL,
		})
		return
	}

	if !s.acquire(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, Response{
			Code:    503,
			Data:    nil,
			Message: t.Server.Busy,
		})
		return
	}
	defer s.release()

	info, err := s.extract(c.Request.Context(), ext, rawURL)
	if err != nil {
		status := statusForError(err)
		requestLog(c).WithError(err).WithField("url", rawURL).Warn("extraction failed")
		c.JSON(status, Response{
			Code:    status,
			Data:    gin.H{"kind": extractor.KindOf(err)},
			Message: video.ErrorMessage(t, err),
		})
		return
	}

	resp := video.Build(rawURL, info)
	requestLog(c).WithFields(log.Fields{
		"url":   rawURL,
		"video": len(format.Formats(resp.FormatGroups.VideoFormats)),
		"audio": len(format.Formats(resp.FormatGroups.AudioFormats)),
	}).Debug("extraction done")

	c.JSON(http.StatusOK, Response{
		Code:    200,
		Data:    resp,
		Message: "video info retrieved",
	})
}

func (s *Server) extract(ctx context.Context, ext extractor.Extractor, rawURL string) (*extractor.Info, error) {
	info, err := ext.Extract(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, &extractor.Error{Kind: extractor.KindTransient, URL: rawURL}
	}
	return info, nil
}
