package users

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/Thanajai/GrowFuse/internal/shared/auth"
	"github.com/Thanajai/GrowFuse/internal/shared/server/middleware"
	"github.com/Thanajai/GrowFuse/internal/shared/server/respond"
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

type Handler struct {
	Svc *Service
	OTP *OTPService
}

func NewHandler(svc *Service, otp *OTPService) *Handler {
	return &Handler{Svc: svc, OTP: otp}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/otp/request", h.requestOTP)
	rg.POST("/auth/otp/verify", h.verifyOTP)
	rg.POST("/auth/logout", h.logout)
	rg.GET("/me", h.me)
	rg.POST("/me/farms", h.addFarm)
	rg.POST("/me/recommendations", h.saveRecommendation)
}

func (h *Handler) requestOTP(c *gin.Context) {
	var body otpRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	if !phonePattern.MatchString(body.Phone) {
		respond.Error(c, http.StatusBadRequest, "invalid_phone", "phone must be 10 digits", nil)
		return
	}
	if err := h.OTP.Request(c.Request.Context(), body.Phone); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue code", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"sent": true})
}

func (h *Handler) verifyOTP(c *gin.Context) {
	var body otpVerifyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	if !phonePattern.MatchString(body.Phone) {
		respond.Error(c, http.StatusBadRequest, "invalid_phone", "phone must be 10 digits", nil)
		return
	}

	if err := h.OTP.Verify(c.Request.Context(), body.Phone, body.Code); err != nil {
		switch {
		case errors.Is(err, ErrOTPMismatch):
			respond.Error(c, http.StatusUnauthorized, "invalid_code", "code does not match", nil)
		case errors.Is(err, ErrOTPExpired):
			respond.Error(c, http.StatusUnauthorized, "expired_code", "code expired, request a new one", nil)
		default:
			respond.Error(c, http.StatusUnauthorized, "no_pending_code", "request a code first", nil)
		}
		return
	}

	user, err := h.Svc.Login(c.Request.Context(), body.Phone)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "login failed", nil)
		return
	}
	token, err := auth.SignSession(user.Phone, user.Name)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue session", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"token": token, "user": user})
}

// callerPhone resolves the acting identity from the verified session claims.
// Guests carry no profile, so ok=false for them.
func callerPhone(c *gin.Context) (string, bool) {
	if middleware.IsGuest(c) {
		return "", false
	}
	phone := middleware.UserPhoneFromContext(c)
	return phone, phone != ""
}

func (h *Handler) logout(c *gin.Context) {
	phone, ok := callerPhone(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}
	h.Svc.Logout(c.Request.Context(), phone)
	respond.JSON(c, http.StatusOK, gin.H{"loggedOut": true})
}

func (h *Handler) me(c *gin.Context) {
	phone, ok := callerPhone(c)
	if !ok {
		// Guests are not an error condition; mirror the null profile.
		respond.JSON(c, http.StatusOK, gin.H{"user": nil})
		return
	}
	user, ok := h.Svc.Current(c.Request.Context(), phone)
	if !ok {
		respond.JSON(c, http.StatusOK, gin.H{"user": nil})
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) addFarm(c *gin.Context) {
	phone, ok := callerPhone(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}
	var body addFarmBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	user, err := h.Svc.AddFarm(c.Request.Context(), phone, body.Name, body.Location, body.SoilType, body.LandArea)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotLoggedIn):
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		case errors.Is(err, ErrInvalidFarm):
			respond.Error(c, http.StatusBadRequest, "invalid_farm", "farm name, soil type, and land area are required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save farm", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"user": user})
}

func (h *Handler) saveRecommendation(c *gin.Context) {
	phone, ok := callerPhone(c)
	if !ok {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}
	var body saveRecommendationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid request body", nil)
		return
	}
	user, err := h.Svc.SaveRecommendation(c.Request.Context(), phone, body.FarmID, body.Entry)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotLoggedIn):
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		case errors.Is(err, ErrFarmNotFound):
			respond.Error(c, http.StatusNotFound, "farm_not_found", "farm not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save recommendation", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"user": user})
}
