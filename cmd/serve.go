package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/pratm1304/IntelliDocs-Ai/llm"
	"github.com/pratm1304/IntelliDocs-Ai/server"
	log "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveFlags struct {
	port string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Launch the HTTP API for README generation and text formatting.",
	Args:  cobra.NoArgs,
	Run:   runServer,
}

func runServer(cmd *cobra.Command, args []string) {
	appConfig.SetPort(serveFlags.port)
	if err := appConfig.RequireAPIKey(); err != nil {
		log.Fatal().Err(err).Msg("cannot start server")
	}
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	model, err := llm.NewGeminiClient(ctx, appConfig.GeminiAPIKey, appConfig.GeminiModel)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create model client")
	}
	defer model.Close()

	svc, err := newService(model, cmdFlags.ignoreList)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare staging directories")
	}
	log.Info().Str("model", model.Name()).Str("repos", appConfig.ReposDir).Str("uploads", appConfig.UploadsDir).Msg("service ready")

	srv := server.New(svc, server.Options{
		Addr:        appConfig.Addr(),
		MaxUploadMB: appConfig.MaxUploadMB,
	})
	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func init() {
	serveCmd.Flags().StringVarP(&serveFlags.port, "port", "p", "", "Port to listen on (overrides PORT, default 5001)")
	rootCmd.AddCommand(serveCmd)
}
