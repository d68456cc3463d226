package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/luxstore/backend/config"
	"github.com/luxstore/backend/models"
	"github.com/luxstore/backend/utils"
)

type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// GoogleLogin redirects the browser to the Google consent screen
func GoogleLogin(c *gin.Context) {
	state := uuid.New().String()
	session := sessions.Default(c)
	session.Set("oauth_state", state)
	if err := session.Save(); err != nil {
		utils.InternalServerError(c, "Failed to save session", err.Error())
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, config.GoogleOAuthConfig.AuthCodeURL(state))
}

// GoogleCallback exchanges the code, provisions the account if needed and
// funnels into the same token + LOGIN reward path as password login
func GoogleCallback(c *gin.Context) {
	session := sessions.Default(c)
	expectedState, _ := session.Get("oauth_state").(string)
	if expectedState == "" || c.Query("state") != expectedState {
		utils.BadRequest(c, "Invalid OAuth state", nil)
		return
	}
	session.Delete("oauth_state")
	_ = session.Save()

	code := c.Query("code")
	if code == "" {
		utils.BadRequest(c, "No code provided", nil)
		return
	}

	token, err := config.GoogleOAuthConfig.Exchange(c, code)
	if err != nil {
		utils.InternalServerError(c, "Failed to exchange token", err.Error())
		return
	}

	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
	if err != nil {
		utils.InternalServerError(c, "Failed to get user info", err.Error())
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		utils.InternalServerError(c, "Failed to read response", err.Error())
		return
	}

	var googleUser googleUserInfo
	if err := json.Unmarshal(data, &googleUser); err != nil {
		utils.InternalServerError(c, "Failed to parse user info", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", googleUser.Email).First(&user).Error; err != nil {
		// First login through Google; password is random and unusable
		hashed, err := utils.HashPassword(uuid.New().String())
		if err != nil {
			utils.InternalServerError(c, "Failed to create user", err.Error())
			return
		}
		user = models.User{
			FullName: googleUser.Name,
			Email:    googleUser.Email,
			Password: hashed,
			GoogleID: googleUser.ID,
			IsActive: true,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			utils.InternalServerError(c, "Failed to create user", err.Error())
			return
		}
		utils.SendWelcomeEmail(&user)
	}

	jwtToken, err := utils.GenerateToken(&user)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	utils.FireCouponEvent(config.DB, &user, models.TriggerEventLogin, 0)

	redirectURL := fmt.Sprintf("%s?token=%s", os.Getenv("FRONTEND_URL"), url.QueryEscape(jwtToken))
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}
