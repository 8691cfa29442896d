package webserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stake-plus/treasury-gov/src/api/config"
	"github.com/stake-plus/treasury-gov/src/api/governance"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func New(cfg config.Config, svc *governance.Service, db *gorm.DB, rdb *redis.Client, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	attachRoutes(r, cfg, svc, db, rdb, log)
	return r
}

func attachRoutes(r *gin.Engine, cfg config.Config, svc *governance.Service, db *gorm.DB, rdb *redis.Client, log *zap.Logger) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	authH := NewAuth(rdb, svc, []byte(cfg.JWTSecret))
	propH := NewProposals(svc)
	voteH := NewVotes(svc)

	mutLimiter := NewRateLimiter(10, time.Minute)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/challenge", authH.Challenge)
		v1.POST("/auth/verify", authH.Verify)

		secured := v1.Use(JWTMiddleware([]byte(cfg.JWTSecret)))
		secured.GET("/proposals", propH.ListActive)
		secured.GET("/proposals/:id", propH.Get)
		secured.GET("/proposals/:id/tally", propH.Tally)
		secured.GET("/proposals/:id/votes/:addr", propH.GetVote)
		secured.GET("/stats", propH.Stats)

		mutating := v1.Use(RateLimitMiddleware(mutLimiter))
		mutating.POST("/proposals", propH.Create)
		mutating.POST("/proposals/:id/execute", propH.Execute)
		mutating.POST("/votes", voteH.Cast)
		mutating.GET("/votes/:id", voteH.Summary)
	}

	admin := v1.Group("/admin")
	admin.Use(JWTMiddleware([]byte(cfg.JWTSecret)), AdminMiddleware(svc))
	{
		adminH := NewAdmin(svc, db, log)
		admin.POST("/voters", adminH.RegisterVoter)
		admin.DELETE("/voters/:addr", adminH.DeactivateVoter)
		admin.POST("/settings", adminH.SetSetting)
	}
}
