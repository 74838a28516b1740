// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyInternalError = "error.internal"
	KeyRateLimited   = "error.rate_limited"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthForbidden          = "auth.forbidden"
	KeyAuthRouteDenied        = "auth.route_denied"
	KeyUserNotFound           = "user.not_found"

	// Products
	KeyProductNotFound    = "product.not_found"
	KeyProductEmptyUpdate = "product.empty_update"

	// Orders
	KeyOrderNotFound        = "order.not_found"
	KeyOrderProductsMissing = "order.products_missing"
	KeyOrderInvalidStatus   = "order.invalid_status"

	// MSME profiles
	KeyMsmeNotFound      = "msme.not_found"
	KeyMsmeInvalidStatus = "msme.invalid_status"

	// Community
	KeyNewsNotFound    = "news.not_found"
	KeyTourismNotFound = "tourism.not_found"
	KeyAdminOnly       = "community.admin_only"

	// Notifications
	KeyNotificationNotFound = "notification.not_found"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// File Upload
	KeyFileMissing      = "file.missing"
	KeyFileInvalidType  = "file.invalid_type"
	KeyFileTooLarge     = "file.too_large"
	KeyFileUploadFailed = "file.upload_failed"
)
