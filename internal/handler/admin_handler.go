package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/gamesurvey-backend/internal/middleware"
	"github.com/stemsi/gamesurvey-backend/internal/response"
	"github.com/stemsi/gamesurvey-backend/internal/service"
)

// AdminHandler serves the admin panel and role changes.
type AdminHandler struct {
	adminService *service.AdminService
	roleService  *service.RoleService
	log          zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *service.AdminService, roleService *service.RoleService, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		roleService:  roleService,
		log:          log.With().Str("component", "admin_handler").Logger(),
	}
}

// GetPanel godoc
// GET /admin
// Lists every account and every result, newest results first.
func (h *AdminHandler) GetPanel(c *gin.Context) {
	data, err := h.adminService.Panel(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build admin panel")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"accounts":         data.Accounts,
		"results":          data.Results,
		"can_change_roles": service.CanChangeRoles(middleware.GetAccount(c)),
	})
}

// ChangeRole godoc
// GET /change_role/:account_id/:action
// Promotes or demotes another account. Super-admin only; always lands back on /admin.
func (h *AdminHandler) ChangeRole(c *gin.Context) {
	actor := middleware.GetAccount(c)
	if actor == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	targetID, err := strconv.Atoi(c.Param("account_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	res, err := h.roleService.ChangeRole(c.Request.Context(), actor, targetID, c.Param("action"))
	if err != nil {
		h.log.Error().Err(err).Int("target_id", targetID).Msg("Role change failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Redirect(c, "/admin", roleChangeNotice(res))
}

func roleChangeNotice(res *service.RoleChangeResult) *response.Notice {
	switch res.Outcome {
	case service.RoleChangeDenied:
		return response.NewNotice(response.NoticeDanger, "Access Denied: Only Super Admin can change roles.")
	case service.RoleChangeSelf:
		return response.NewNotice(response.NoticeWarning, "You cannot change your own role.")
	case service.RoleChangePromoted:
		return response.NewNotice(response.NoticeSuccess, fmt.Sprintf("%s is now an Admin.", res.Target.Username))
	case service.RoleChangeDemoted:
		return response.NewNotice(response.NoticeInfo, fmt.Sprintf("%s is no longer an Admin.", res.Target.Username))
	default:
		return nil
	}
}
