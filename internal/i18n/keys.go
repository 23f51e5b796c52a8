// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Users
	KeyUserNotFound    = "user.not_found"
	KeyUserRoleUpdated = "user.role_updated"

	// Catalog
	KeyCategoryNotFound = "category.not_found"
	KeyCategoryCreated  = "category.created"
	KeyCategoryUpdated  = "category.updated"
	KeyCategoryDeleted  = "category.deleted"
	KeyProductNotFound  = "product.not_found"
	KeyProductCreated   = "product.created"
	KeyProductUpdated   = "product.updated"
	KeyProductDeleted   = "product.deleted"

	// Coupons
	KeyCouponNotAvailable = "coupon.not_available"
	KeyCouponShareMessage = "coupon.share_message"
	KeyCouponSent         = "coupon.sent"
	KeyCouponEmailSubject = "coupon.email_subject"

	// Knasta price refresh
	KeyKnastaRefreshDone   = "knasta.refresh_done"
	KeyKnastaRefreshFailed = "knasta.refresh_failed"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"
	KeyAdminSeedSuccess  = "admin.seed_success"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationPhone    = "validation.invalid_phone"

	// File upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
)
