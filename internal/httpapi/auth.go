package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/dengas/devtimetracker/internal/keycloak"
)

// AuthHandler exposes the identity provider flows.
type AuthHandler struct {
	keycloak *keycloak.Client
}

// Login redirects to the provider's authorize page. prompt=true forces the
// login form even with an active provider session.
func (h *AuthHandler) Login(c *gin.Context) {
	redirectURI := c.Query("redirect_uri")
	if redirectURI == "" {
		respondError(c, http.StatusBadRequest, "redirect_uri is required", codeValidation)
		return
	}
	forceLogin := c.DefaultQuery("prompt", "false") == "true"
	c.Redirect(http.StatusFound, h.keycloak.LoginURL(redirectURI, forceLogin))
}

// Logout redirects to the provider's logout page.
func (h *AuthHandler) Logout(c *gin.Context) {
	redirectURI := c.Query("redirect_uri")
	if redirectURI == "" {
		respondError(c, http.StatusBadRequest, "redirect_uri is required", codeValidation)
		return
	}
	c.Redirect(http.StatusFound, h.keycloak.LogoutURL(redirectURI, c.Query("id_token_hint")))
}

type codeExchangeRequest struct {
	Code        string `json:"code" binding:"required"`
	RedirectURI string `json:"redirectUri" binding:"required"`
}

// ExchangeCode swaps an authorization code for tokens.
func (h *AuthHandler) ExchangeCode(c *gin.Context) {
	req := codeExchangeRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", codeValidation)
		return
	}
	bundle, err := h.keycloak.ExchangeCode(c.Request.Context(), req.Code, req.RedirectURI)
	if err != nil {
		if errors.Is(err, keycloak.ErrExchangeRejected) {
			respondError(c, http.StatusUnauthorized, "Failed to exchange authorization code", codeExchangeFailed)
			return
		}
		log.WithError(err).Error("code exchange failed")
		respondError(c, http.StatusInternalServerError, "Failed to exchange authorization code", codeInternal)
		return
	}
	respond(c, http.StatusOK, bundle)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ExchangeCredentials performs the resource-owner password grant.
func (h *AuthHandler) ExchangeCredentials(c *gin.Context) {
	req := loginRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", codeValidation)
		return
	}
	bundle, err := h.keycloak.ExchangeCredentials(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, keycloak.ErrExchangeRejected) {
			respondError(c, http.StatusUnauthorized, "Invalid username or password", codeInvalidCredentials)
			return
		}
		log.WithError(err).Error("credentials exchange failed")
		respondError(c, http.StatusInternalServerError, "Failed to authenticate", codeInternal)
		return
	}
	respond(c, http.StatusOK, bundle)
}
