package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stake-plus/treasury-gov/src/api/data"
	"github.com/stake-plus/treasury-gov/src/api/governance"
	"github.com/stake-plus/treasury-gov/src/api/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Admin struct {
	svc *governance.Service
	db  *gorm.DB
	log *zap.Logger
}

func NewAdmin(svc *governance.Service, db *gorm.DB, log *zap.Logger) Admin {
	return Admin{svc: svc, db: db, log: log}
}

// RegisterVoter adds a voter to the registry. The engine re-checks the
// caller's admin flag; this handler only shapes the request.
func (a Admin) RegisterVoter(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required,min=3,max=128"`
		Weight  int64  `json:"weight" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	a.log.Info("admin registering voter",
		zap.String("admin", c.GetString("addr")), zap.String("voter", req.Address))

	if err := a.svc.Register(c, c.GetString("addr"), req.Address, req.Weight); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// DeactivateVoter flags a voter ineligible without deleting history.
func (a Admin) DeactivateVoter(c *gin.Context) {
	addr := c.Param("addr")

	a.log.Info("admin deactivating voter",
		zap.String("admin", c.GetString("addr")), zap.String("voter", addr))

	if err := a.svc.Deactivate(c, c.GetString("addr"), addr); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SetSetting writes a governance setting directly, bypassing a proposal.
// Applies to proposals created afterward only.
func (a Admin) SetSetting(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required,max=64"`
		Value string `json:"value" binding:"required,max=255"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if _, err := strconv.ParseInt(req.Value, 10, 64); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "setting value must be numeric"})
		return
	}

	a.log.Info("admin updating setting",
		zap.String("admin", c.GetString("addr")), zap.String("name", req.Name))

	setting := types.Setting{Name: req.Name, Value: req.Value}
	if err := a.db.Save(&setting).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	if err := data.LoadSettings(a.db); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminMiddleware rejects callers whose voter row lacks the admin flag.
func AdminMiddleware(svc *governance.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !svc.IsAdmin(c.GetString("addr")) {
			c.JSON(http.StatusForbidden, gin.H{"err": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
