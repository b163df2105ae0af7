package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/herhollywood/adaptations/pkg/common"
	"github.com/herhollywood/adaptations/pkg/detail"
	"github.com/herhollywood/adaptations/pkg/server"
	"github.com/herhollywood/adaptations/pkg/store"
	"github.com/herhollywood/adaptations/pkg/tracking"
)

var enableProfiling = flag.Bool("profiling", true, "enable profiling endpoints")
var dataUrl = os.Getenv("DATA_URL")
var rabbitUrl = os.Getenv("RABBIT_URL")
var rabbitPrefix = os.Getenv("RABBIT_PREFIX")
var redisUrl = os.Getenv("REDIS_URL")
var listenAddress = ":8080"
var debugAddress = ":8081"

func init() {
	flag.Parse()

	if v := os.Getenv("LISTEN_ADDRESS"); v != "" {
		listenAddress = v
	}
	if v := os.Getenv("DEBUG_ADDRESS"); v != "" {
		debugAddress = v
	}
	if dataUrl == "" {
		log.Fatalf("No data url provided")
	}
}

func main() {
	source := &store.HTTPSource{
		BaseURL: dataUrl,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}

	var shared detail.SharedCache
	var hooks []common.ShutdownHook
	if redisUrl != "" {
		cache, err := detail.NewRedisCache(redisUrl, 24*time.Hour)
		if err != nil {
			log.Fatalf("redis cache setup failed: %v", err)
		}
		shared = cache
		hooks = append(hooks, func(ctx context.Context) error { return cache.Close() })
	}

	var trk tracking.Tracking
	if rabbitUrl != "" {
		if rabbitPrefix == "" {
			rabbitPrefix = "adaptations"
		}
		rt, err := tracking.NewRabbitTracking(rabbitUrl, rabbitPrefix)
		if err != nil {
			log.Printf("tracking disabled, amqp connect failed: %v", err)
		} else {
			trk = rt
			hooks = append(hooks, func(ctx context.Context) error { return rt.Close() })
		}
	}

	ws := &server.WebServer{
		Store:    store.NewStore(source),
		Details:  detail.NewResolver(source, shared),
		Tracking: trk,
	}

	go func() {
		debugMux := http.NewServeMux()
		debugMux.Handle("/metrics", promhttp.Handler())
		if *enableProfiling {
			debugMux.HandleFunc("/debug/pprof/", pprof.Index)
			debugMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
			debugMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
			debugMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
			debugMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
		}
		log.Printf("Starting debug server %v", debugAddress)
		log.Fatal(http.ListenAndServe(debugAddress, debugMux))
	}()

	cfg := common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       30 * time.Second,
		Write:      30 * time.Second,
		Idle:       120 * time.Second,
		Shutdown:   30 * time.Second,
		Hook:       5 * time.Second,
	})
	srv := common.NewServerWithTimeouts(&http.Server{
		Addr:    listenAddress,
		Handler: ws.Handler(),
	}, cfg)

	common.RunServerWithShutdown(srv, "browse api", cfg.Shutdown, cfg.Hook, hooks...)
}
