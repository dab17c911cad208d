package middleware

import (
	"errors"
	"net/http"
	"strings"

	"satici_paneli/internal/domain/entities"
	"satici_paneli/internal/usecase"
	"satici_paneli/pkg"

	"github.com/gin-gonic/gin"
)

const vendorContextKey = "vendor"

var (
	errMissingToken = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Yetkilendirme tokenı bulunamadı", http.StatusUnauthorized)
	errInvalidToken = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Geçersiz veya süresi dolmuş token", http.StatusUnauthorized)
	errNoVendor     = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Satıcı bulunamadı", http.StatusUnauthorized)
)

// Authenticate resolves the bearer credential to a vendor and stores it on
// the request context. Every failure is a 401; the approval gate is separate.
func Authenticate(identity usecase.IIdentityUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(errMissingToken.HTTPStatus, errMissingToken.ToHTTPError())
			return
		}

		vendor, err := identity.Resolve(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			appErr := errInvalidToken
			switch {
			case errors.Is(err, usecase.ErrVendorNotFound):
				appErr = errNoVendor
			case errors.Is(err, usecase.ErrMissingCredential):
				appErr = errMissingToken
			case !errors.Is(err, usecase.ErrInvalidCredential):
				appErr = pkg.NewDomainError("INTERNAL_ERROR", "Sunucu hatası", err, http.StatusInternalServerError)
			}
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}

		c.Set(vendorContextKey, vendor)
		c.Next()
	}
}

// RequireApproved blocks every vendor whose account review has not been
// approved. The 403 body carries the current status, and the rejection
// reason when there is one, so the panel can render the right screen.
func RequireApproved() gin.HandlerFunc {
	return func(c *gin.Context) {
		vendor, ok := VendorFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(errMissingToken.HTTPStatus, errMissingToken.ToHTTPError())
			return
		}

		if vendor.Status == entities.VendorStatusApproved {
			c.Next()
			return
		}

		message := "Hesabınız henüz onaylanmadı"
		switch vendor.Status {
		case entities.VendorStatusPendingReview:
			message = "Hesabınız inceleme aşamasında. Lütfen onay bekleyiniz."
		case entities.VendorStatusRejected:
			reason := vendor.RejectionReason
			if reason == "" {
				reason = "Belirtilmemiş"
			}
			message = "Hesabınız reddedildi. Sebep: " + reason
		case entities.VendorStatusSuspended:
			message = "Hesabınız askıya alınmıştır. Lütfen destek ekibi ile iletişime geçiniz."
		}

		body := gin.H{
			"success": false,
			"message": message,
			"status":  vendor.Status,
		}
		if vendor.RejectionReason != "" {
			body["rejectionReason"] = vendor.RejectionReason
		}
		c.AbortWithStatusJSON(http.StatusForbidden, body)
	}
}

// VendorFromContext returns the vendor stored by Authenticate.
func VendorFromContext(c *gin.Context) (entities.Vendor, bool) {
	v, ok := c.Get(vendorContextKey)
	if !ok {
		return entities.Vendor{}, false
	}
	vendor, ok := v.(entities.Vendor)
	return vendor, ok
}
