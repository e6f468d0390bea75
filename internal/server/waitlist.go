package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guiyumin/vgrab/internal/core/i18n"
	"github.com/guiyumin/vgrab/internal/core/waitlist"
)

// WaitlistRequest is the request body for POST /api/waitlist
type WaitlistRequest struct {
	Email string `json:"email" binding:"required"`
}

func (s *Server) handleJoinWaitlist(c *gin.Context) {
	t := i18n.T(s.lang())

	var req WaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Code:    400,
			Data:    nil,
			Message: t.Waitlist.InvalidEmail,
		})
		return
	}

	entry, err := s.waitlist.Add(c.Request.Context(), req.Email)
	switch {
	case errors.Is(err, waitlist.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, Response{
			Code:    400,
			Data:    nil,
			Message: t.Waitlist.InvalidEmail,
		})
		return
	case errors.Is(err, waitlist.ErrExists):
		c.JSON(http.StatusConflict, Response{
			Code:    409,
			Data:    nil,
			Message: t.Waitlist.AlreadyIn,
		})
		return
	case err != nil:
		requestLog(c).WithError(err).Error("waitlist add failed")
		c.JSON(http.StatusInternalServerError, Response{
			Code:    500,
			Data:    nil,
			Message: err.Error(),
		})
		return
	}

	requestLog(c).WithField("id", entry.ID).Info("waitlist signup")
	c.JSON(http.StatusCreated, Response{
		Code:    201,
		Data:    entry,
		Message: t.Waitlist.Joined,
	})
}

func (s *Server) handleWaitlistStatus(c *gin.Context) {
	t := i18n.T(s.lang())

	email := c.Query("email")
	if email == "" {
		count, err := s.waitlist.Count(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, Response{
				Code:    500,
				Data:    nil,
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, Response{
			Code:    200,
			Data:    gin.H{"count": count},
			Message: "waitlist size",
		})
		return
	}

	exists, err := s.waitlist.Exists(c.Request.Context(), email)
	if errors.Is(err, waitlist.ErrInvalidEmail) {
		c.JSON(http.StatusBadRequest, Response{
			Code:    400,
			Data:    nil,
			Message: t.Waitlist.InvalidEmail,
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Code:    500,
			Data:    nil,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Code:    200,
		Data:    gin.H{"exists": exists},
		Message: "waitlist status",
	})
}
