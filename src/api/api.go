package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stake-plus/treasury-gov/src/api/config"
	"github.com/stake-plus/treasury-gov/src/api/data"
	"github.com/stake-plus/treasury-gov/src/api/discord"
	"github.com/stake-plus/treasury-gov/src/api/governance"
	"github.com/stake-plus/treasury-gov/src/api/governance/executor"
	"github.com/stake-plus/treasury-gov/src/api/governance/store"
	"github.com/stake-plus/treasury-gov/src/api/types"
	"github.com/stake-plus/treasury-gov/src/api/webserver"
	"github.com/stake-plus/treasury-gov/src/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var allModels = []interface{}{
	&types.Voter{}, &types.Proposal{}, &types.VoteRecord{},
	&types.Setting{}, &types.TreasuryEntry{},
}

func migrate(db *gorm.DB, log *zap.Logger) {
	err := db.AutoMigrate(allModels...)

	if err == nil {
		return
	}

	log.Warn("auto-migrate failed, dropping & recreating schema", zap.Error(err))
	_ = db.Migrator().DropTable(
		"treasury_entries", "vote_records", "proposals", "voters", "settings",
	)
	if err := db.AutoMigrate(allModels...); err != nil {
		log.Fatal("migrate after drop", zap.Error(err))
	}
}

// ensureAdmin seeds the bootstrap admin voter. Every later registry change
// goes through the admin surface.
func ensureAdmin(db *gorm.DB, addr string) error {
	if addr == "" {
		return nil
	}
	var v types.Voter
	err := db.FirstOrCreate(&v, types.Voter{Address: addr}).Error
	if err != nil {
		return err
	}
	updates := map[string]interface{}{"active": true, "is_admin": true}
	if v.Weight <= 0 {
		updates["weight"] = 1
	}
	return db.Model(&v).Updates(updates).Error
}

func main() {
	log, err := logging.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Load()

	db := data.MustMySQL(cfg.MySQLDSN)
	migrate(db, log)

	if err := data.SeedSettings(db); err != nil {
		log.Fatal("seed settings", zap.Error(err))
	}
	if err := data.LoadSettings(db); err != nil {
		log.Fatal("load settings", zap.Error(err))
	}
	if err := ensureAdmin(db, cfg.AdminAddr); err != nil {
		log.Fatal("seed admin", zap.Error(err))
	}

	rdb := data.MustRedis(cfg.RedisURL)

	svc := governance.NewService(
		store.NewMySQL(db),
		governance.SystemClock{},
		executor.New(db),
		data.GovParams,
		data.NewEventStream(rdb),
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())

	sweeper, err := svc.StartSweeper(ctx)
	if err != nil {
		log.Fatal("start sweeper", zap.Error(err))
	}

	if cfg.DiscordToken != "" && cfg.DiscordChannelID != "" {
		announcer, err := discord.NewAnnouncer(cfg.DiscordToken, cfg.DiscordChannelID, rdb, log)
		if err != nil {
			log.Fatal("discord announcer", zap.Error(err))
		}
		defer announcer.Close()
		go announcer.Run(ctx)
	}

	router := webserver.New(cfg, svc, db, rdb, log)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http", zap.Error(err))
		}
	}()
	log.Info("treasury governance API listening", zap.String("port", cfg.Port))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	cancel()
	sweeper.Stop()

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
