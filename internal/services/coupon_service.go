// internal/services/coupon_service.go
package services

import (
	"fmt"
	"net/url"

	"github.com/ecocupon/ecocanasta-api/internal/config"
	"github.com/ecocupon/ecocanasta-api/internal/i18n"
	"github.com/ecocupon/ecocanasta-api/internal/utils"
)

// CouponService derives coupon payloads from the catalog and shares them by
// WhatsApp link or email. Codes are display-only; nothing is persisted.
type CouponService struct {
	catalog       *CatalogService
	notifications *NotificationService
	config        *config.Config
}

type CouponPayload struct {
	ProductID       string `json:"product_id"`
	ProductName     string `json:"product_name"`
	Code            string `json:"code"`
	DiscountPercent int    `json:"discount_percent"`
	Savings         int64  `json:"savings"`
	DisplayPrice    int64  `json:"display_price"`
	Message         string `json:"message"`
}

type ShareCouponRequest struct {
	Phone string `json:"phone,omitempty" validate:"omitempty,phone"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

type ShareResult struct {
	Channel     string `json:"channel"`
	WhatsAppURL string `json:"whatsapp_url,omitempty"`
	EmailSentTo string `json:"email_sent_to,omitempty"`
}

func NewCouponService(catalog *CatalogService, notifications *NotificationService, config *config.Config) *CouponService {
	return &CouponService{
		catalog:       catalog,
		notifications: notifications,
		config:        config,
	}
}

// GetCoupon builds the coupon payload for a product. Products whose
// comparison price does not undercut the regular price have no coupon.
func (s *CouponService) GetCoupon(lang, productID string) (*CouponPayload, error) {
	view, err := s.catalog.GetProduct(productID)
	if err != nil {
		return nil, err
	}
	return s.buildPayload(lang, view)
}

func (s *CouponService) buildPayload(lang string, view *ProductView) (*CouponPayload, error) {
	if !view.Quote.HasDiscount() || view.Coupon == "" {
		return nil, ErrCouponNotAvailable
	}

	return &CouponPayload{
		ProductID:       view.ID,
		ProductName:     view.Name,
		Code:            view.Coupon,
		DiscountPercent: view.Quote.DiscountPercent,
		Savings:         view.Quote.Savings,
		DisplayPrice:    view.Quote.DisplayPrice,
		Message:         s.shareMessage(lang, view),
	}, nil
}

// ShareCoupon delivers a coupon through the requested channel. A phone
// yields a wa.me link for the frontend to open; an email sends directly.
func (s *CouponService) ShareCoupon(lang, productID string, req *ShareCouponRequest) (*ShareResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if req.Phone == "" && req.Email == "" {
		return nil, fmt.Errorf("validation failed: phone or email is required")
	}

	view, err := s.catalog.GetProduct(productID)
	if err != nil {
		return nil, err
	}
	payload, err := s.buildPayload(lang, view)
	if err != nil {
		return nil, err
	}

	if req.Phone != "" {
		phone, ok := utils.NormalizePhone(req.Phone)
		if !ok {
			return nil, fmt.Errorf("validation failed: invalid phone number")
		}
		return &ShareResult{
			Channel:     "whatsapp",
			WhatsAppURL: fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(payload.Message)),
		}, nil
	}

	subject := i18n.T(lang, i18n.KeyCouponEmailSubject, payload.Code)
	data := CouponEmailData{
		Code:            payload.Code,
		ProductName:     view.Name,
		ProductURL:      fmt.Sprintf("%s/product?id=%s", s.config.Site.BaseURL, url.QueryEscape(view.ID)),
		Shop:            view.Shop,
		DiscountPercent: payload.DiscountPercent,
		Savings:         utils.FormatPrice(payload.Savings),
		DisplayPrice:    utils.FormatPrice(payload.DisplayPrice),
		SiteName:        s.config.Site.Name,
	}
	if err := s.notifications.SendCouponEmail(req.Email, subject, data); err != nil {
		return nil, fmt.Errorf("failed to send coupon email: %w", err)
	}

	return &ShareResult{
		Channel:     "email",
		EmailSentTo: req.Email,
	}, nil
}

func (s *CouponService) shareMessage(lang string, view *ProductView) string {
	return i18n.T(lang, i18n.KeyCouponShareMessage,
		view.Coupon,
		utils.FormatPrice(view.Quote.Savings),
		view.Quote.DiscountPercent,
		view.Name,
	)
}
