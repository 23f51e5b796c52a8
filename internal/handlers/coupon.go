// internal/handlers/coupon.go
package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ecocupon/ecocanasta-api/internal/i18n"
	"github.com/ecocupon/ecocanasta-api/internal/services"
	"github.com/ecocupon/ecocanasta-api/internal/utils"
)

type CouponHandler struct {
	couponService *services.CouponService
}

func NewCouponHandler(couponService *services.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

// GET /products/:id/coupon
func (h *CouponHandler) GetCoupon(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id := c.Param("id")

	coupon, err := h.couponService.GetCoupon(lang, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			utils.NotFoundResponse(c, "product")
		case errors.Is(err, services.ErrCouponNotAvailable):
			utils.NotFoundResponse(c, "coupon")
		default:
			utils.InternalErrorResponse(c, "")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"coupon": coupon,
	})
}

// POST /products/:id/coupon/share
func (h *CouponHandler) ShareCoupon(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id := c.Param("id")

	var req services.ShareCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid), err.Error())
		return
	}

	result, err := h.couponService.ShareCoupon(lang, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			utils.NotFoundResponse(c, "product")
		case errors.Is(err, services.ErrCouponNotAvailable):
			utils.NotFoundResponse(c, "coupon")
		case strings.Contains(err.Error(), "validation failed"):
			utils.BadRequestResponse(c, err.Error(), nil)
		default:
			utils.InternalErrorResponse(c, "")
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCouponSent),
		"share":   result,
	})
}
