package user

import (
	"decide-backend/internal/middleware"
	"decide-backend/internal/services"
	"decide-backend/internal/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CurrentUser godoc
// @Summary Get current user
// @Description Get current user's information together with a refreshed token
// @Tags user
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response{data=user.UserResponse}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /auth/user [get]
func CurrentUser(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	// The middleware copy may come from the cache; the role must be current.
	services.InvalidateUser(c.Request.Context(), u.ID)
	latest, err := services.FindUserByID(c.Request.Context(), u.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	token, err := utils.GenerateToken(latest.ID, latest.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Could not generate token"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User information retrieved successfully", NewUserResponse(latest, token)))
}

// ChangePassword godoc
// @Summary Change password
// @Description Replace the current user's password. Existing tokens stay valid until they expire.
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body ChangePasswordInput true "Current and new password"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Router /auth/user/password [put]
func ChangePassword(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}

	var input ChangePasswordInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	if err := services.ChangePassword(c.Request.Context(), u.ID, input.CurrentPassword, input.NewPassword); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Password changed successfully", nil))
}
