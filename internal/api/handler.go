// Package api serves ExtendedGCD and ModularInverse over HTTP.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kbolino/modinv"
	"github.com/kbolino/modinv/internal/logger"
)

// InverseRequest holds the query parameters of GET /api/v1/inverse.
type InverseRequest struct {
	A *int64 `form:"a" binding:"required"`
	M *int64 `form:"m" binding:"required"`
}

// InverseResponse is the body of a successful inverse request.
type InverseResponse struct {
	A       int64 `json:"a"`
	M       int64 `json:"m"`
	Inverse int64 `json:"inverse"`
}

// EGCDRequest holds the query parameters of GET /api/v1/egcd.
type EGCDRequest struct {
	A *int64 `form:"a" binding:"required"`
	B *int64 `form:"b" binding:"required"`
}

// EGCDResponse is the body of a successful egcd request.
type EGCDResponse struct {
	A      int64 `json:"a"`
	B      int64 `json:"b"`
	GCD    int64 `json:"gcd"`
	CoeffA int64 `json:"coeff_a"`
	CoeffB int64 `json:"coeff_b"`
}

// Handler implements the API endpoints.
type Handler struct {
	log *logger.Logger
}

// NewHandler returns a handler logging to log. A nil log discards logs.
func NewHandler(log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{log: log}
}

// Inverse answers GET /inverse?a=&m= with the inverse of a modulo m.
func (h *Handler) Inverse(c *gin.Context) {
	var req InverseRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameters a and m must be integers"})
		return
	}

	x, err := modinv.TryModularInverse(*req.A, *req.M)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, modinv.ErrInvalidModulus):
			status = http.StatusBadRequest
		case errors.Is(err, modinv.ErrNotInvertible):
			status = http.StatusUnprocessableEntity
		}
		h.log.WithContext(c.Request.Context()).Debug("no inverse",
			zap.Int64("a", *req.A), zap.Int64("m", *req.M), zap.Error(err))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, InverseResponse{A: *req.A, M: *req.M, Inverse: x})
}

// EGCD answers GET /egcd?a=&b= with the GCD and Bézout coefficients.
func (h *Handler) EGCD(c *gin.Context) {
	var req EGCDRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameters a and b must be integers"})
		return
	}

	gcd, x, y := modinv.ExtendedGCD(*req.A, *req.B)
	c.JSON(http.StatusOK, EGCDResponse{A: *req.A, B: *req.B, GCD: gcd, CoeffA: x, CoeffB: y})
}

// Health answers GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
