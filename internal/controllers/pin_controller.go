package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"trip_ledger/internal/auth"
)

// PinController serves the lock screen endpoints.
type PinController struct {
	Verifier *auth.PinVerifier
}

func NewPinController(v *auth.PinVerifier) *PinController {
	return &PinController{Verifier: v}
}

// pinValue accepts the PIN as a JSON string or number, or as a form value.
type pinValue string

func (p *pinValue) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*p = pinValue(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*p = pinValue(s)
	return nil
}

func (p *pinValue) UnmarshalParam(param string) error {
	*p = pinValue(param)
	return nil
}

// VerifyPin answers with the role a PIN unlocks. Failures are reported in the
// body with success=false, not through the status code.
func (pc *PinController) VerifyPin(c *gin.Context) {
	var body struct {
		Pin pinValue `json:"pin" form:"pin"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBind(&body); err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid PIN"})
			return
		}
	}

	v, err := pc.Verifier.Verify(c.Request.Context(), strings.TrimSpace(string(body.Pin)))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"success":            true,
			"verification_token": v.Token,
			"role":               v.Role,
		})
	case errors.Is(err, auth.ErrInvalidRole):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid role"})
	case errors.Is(err, auth.ErrInvalidPIN):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid PIN"})
	default:
		logrus.WithError(err).Error("VerifyPin: account lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Verification failed"})
	}
}

// Lockscreen has nothing to invalidate server-side; clients drop their token.
func Lockscreen(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Locked"})
}
