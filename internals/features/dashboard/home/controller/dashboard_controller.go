package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/dashboard/home/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GET /dashboard
func (dc *DashboardController) Index(c *fiber.Ctx) error {
	role := helper.CurrentRole(c)
	d, err := service.Load(c.UserContext(), dc.DB, role, helper.CurrentUserPtr(c), dbtime.Now())
	if err != nil {
		return err
	}
	return helper.Render(c, "dashboard/index", fiber.Map{
		"Title":     "Tableau de bord",
		"Dash":      d,
		"RoleLabel": constants.RoleLabel(role),
	})
}
