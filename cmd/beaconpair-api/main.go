// @title         beaconpair API
// @version       0.1.0
// @description   Receives IAC payloads and registers the Beacon peers they describe
// @BasePath      /api/v1

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"beaconpair/internal/core/version"
	"beaconpair/internal/platform/config"
	"beaconpair/internal/platform/logger"
	phttp "beaconpair/internal/platform/net/http"

	"beaconpair/internal/services/api"
)

func main() {
	// optional TOML file under the environment
	var file *config.File
	if path := os.Getenv("BEACONPAIR_CONFIG"); path != "" {
		f, err := config.LoadFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		file = f
	}
	root := config.WithFile(file)

	// bring up logging early, LOG_* may come from the file too
	opt := logger.FromConf(root.Raw())
	if opt.Service == "" {
		opt.Service = version.ServiceName
	}
	logger.Init(opt)
	l := logger.Get()
	if file != nil {
		l.Info().Str("path", file.Path).Strs("keys", file.Keys()).Msg("config file loaded")
	}

	// service-scoped config for HTTP etc (CORE_API_*)
	apiCfg := root.Prefix("CORE_API_")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// http server (reads CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
			RequestTimeout: apiCfg.MayDuration("REQUEST_TIMEOUT", 0),
		},
	)

	// run until signalled
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("http server drained")
}
