// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"
	KeyWarning = "warning"
	KeyInfo    = "info"

	// Product types
	KeyProductTypeCreated  = "product_type.created"
	KeyProductTypeUpdated  = "product_type.updated"
	KeyProductTypeDeleted  = "product_type.deleted"
	KeyProductTypeNotFound = "product_type.not_found"
	KeyProductTypeArchived = "product_type.archived"

	// Design areas
	KeyDesignAreaCreated        = "design_area.created"
	KeyDesignAreaUpdated        = "design_area.updated"
	KeyDesignAreaDeleted        = "design_area.deleted"
	KeyDesignAreaNotFound       = "design_area.not_found"
	KeyDesignAreaNoneConfigured = "design_area.none_configured"

	// Design area groups
	KeyDesignAreaGroupCreated  = "design_area_group.created"
	KeyDesignAreaGroupUpdated  = "design_area_group.updated"
	KeyDesignAreaGroupDeleted  = "design_area_group.deleted"
	KeyDesignAreaGroupNotFound = "design_area_group.not_found"
	KeyDesignAreaGroupOverlap  = "design_area_group.overlap"

	// Pricing
	KeyPricingCalculated       = "pricing.calculated"
	KeyPricingInvalidQuantity  = "pricing.invalid_quantity"
	KeyPricingUnknownArea      = "pricing.unknown_area"
	KeyPricingCurrencyMismatch = "pricing.currency_mismatch"

	// Quotes
	KeyQuoteCreated       = "quote.created"
	KeyQuoteNotFound      = "quote.not_found"
	KeyQuotePartialErrors = "quote.partial_errors"

	// Artwork
	KeyArtworkUploaded       = "artwork.uploaded"
	KeyArtworkNotFound       = "artwork.not_found"
	KeyArtworkAnalysisFailed = "artwork.analysis_failed"

	// Payments
	KeyPaymentSuccess        = "payment.success"
	KeyPaymentFailed         = "payment.failed"
	KeyPaymentPending        = "payment.pending"
	KeyPaymentRefunded       = "payment.refunded"
	KeyPaymentInvalidAmount  = "payment.invalid_amount"
	KeyPaymentMethodRequired = "payment.method_required"
	KeyPaymentNotFound       = "payment.not_found"

	// Admin
	KeyAdminActionSuccess = "admin.action_success"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationTooShort = "validation.too_short"
	KeyValidationTooLong  = "validation.too_long"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"
)
