package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"pulse_chat_server/internal/config"
	dao "pulse_chat_server/internal/dao/mysql"
	myredis "pulse_chat_server/internal/dao/redis"
	"pulse_chat_server/internal/handler"
	"pulse_chat_server/internal/https_server"
	"pulse_chat_server/internal/infrastructure/blob"
	"pulse_chat_server/internal/infrastructure/logger"
	"pulse_chat_server/internal/service/auth"
	"pulse_chat_server/internal/service/chat"
	"pulse_chat_server/internal/service/contact"
	"pulse_chat_server/internal/service/group"
	"pulse_chat_server/internal/service/story"
	"pulse_chat_server/pkg/util/jwt"
	"pulse_chat_server/pkg/util/snowflake"
)

func main() {
	conf := config.GetConfig()

	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("logger initialized")

	repos := dao.Init()
	zap.L().Info("mysql initialized")

	cache := myredis.Init()
	zap.L().Info("redis initialized")

	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init(conf.SnowflakeConfig.MachineID)

	store, err := blob.NewMinioStore(&conf.MinioConfig)
	if err != nil {
		zap.L().Fatal("minio initialization failed", zap.Error(err))
	}
	zap.L().Info("blob store initialized")

	if err := handler.InitTrans("en"); err != nil {
		zap.L().Fatal("validator translator initialization failed", zap.Error(err))
	}

	refreshTTL := time.Duration(conf.JWTConfig.RefreshTokenExpiry) * time.Hour
	authSvc := auth.NewService(repos.User, repos.Session, cache, refreshTTL)
	storySvc := story.NewService(repos.Story, repos.User)
	groupSvc := group.NewService(repos.Group, repos.GroupMember, repos.User)
	contactSvc := contact.NewService(repos.Contact, repos.BlockedUser, repos.User)

	chatSrv := chat.NewChatServer(conf, repos, cache)
	chatSrv.Start()

	handlers := handler.NewHandlers(authSvc, chatSrv, storySvc, groupSvc, contactSvc, store)
	engine := https_server.Init(handlers)

	go func() {
		addr := fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port)
		zap.L().Info("server listening", zap.String("addr", addr))
		if err := engine.Run(addr); err != nil {
			zap.L().Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("shutting down")
	chatSrv.Close()
}
