package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dtroode/fileshare-server/internal/api/http/router"
	httpServer "github.com/dtroode/fileshare-server/internal/api/http/server"
	"github.com/dtroode/fileshare-server/internal/broadcast"
	"github.com/dtroode/fileshare-server/internal/config"
	credstore "github.com/dtroode/fileshare-server/internal/credentials"
	"github.com/dtroode/fileshare-server/internal/identity"
	"github.com/dtroode/fileshare-server/internal/logger"
	"github.com/dtroode/fileshare-server/internal/model"
	"github.com/dtroode/fileshare-server/internal/server"
	"github.com/dtroode/fileshare-server/internal/service"
	"github.com/dtroode/fileshare-server/internal/storage/local"
	storage "github.com/dtroode/fileshare-server/internal/storage/minio"
	"github.com/dtroode/fileshare-server/internal/token"

	httpctx "github.com/dtroode/fileshare-server/internal/api/http/context"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	creds, err := credstore.New(cfg.Auth.UsersFile)
	if err != nil {
		logger.Fatal("failed to load credential store", "error", err)
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	federated := identity.NewGoogle(cfg.Auth.FederatedUser)

	localStore, err := local.New(cfg.Uploads.Dir)
	if err != nil {
		logger.Fatal("failed to initialize local store", "error", err)
	}

	remote := newRemoteStorage(ctx, logger, cfg.Storage)

	broadcaster := broadcast.New(logger)
	defer broadcaster.Close()

	authService := service.NewAuth(creds, federated, tokenManager, logger)
	fileService := service.NewFile(localStore, remote, broadcaster, logger)
	ctxMgr := httpctx.NewManager()

	r := router.New(authService, fileService, broadcaster, ctxMgr, cfg.Uploads.MaxUploadBytes, logger)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// newRemoteStorage connects the MinIO adapter. An unreachable bucket is
// not fatal: the service starts anyway and every upload degrades to a
// local-only outcome until the bucket responds again.
func newRemoteStorage(ctx context.Context, logger *logger.Logger, cfg config.Storage) model.Storage {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		logger.Error("failed to create minio client, uploads will be local-only", "error", err)
		return unavailableStorage{}
	}

	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Bucket)
	if err != nil {
		logger.Error("failed to initialize storage client, uploads will be local-only", "error", err)
		return unavailableStorage{}
	}

	return storageClient
}

// unavailableStorage stands in for the remote adapter when MinIO could
// not be reached at startup.
type unavailableStorage struct{}

var _ model.Storage = unavailableStorage{}

func (unavailableStorage) Put(_ context.Context, _ string, _ io.Reader, _ int64) (string, error) {
	return "", model.ErrRemoteUnavailable
}

func (unavailableStorage) Get(_ context.Context, _ string) (io.ReadCloser, error) {
	return nil, model.ErrRemoteUnavailable
}

func (unavailableStorage) Exists(_ context.Context, _ string) (bool, error) {
	return false, model.ErrRemoteUnavailable
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
