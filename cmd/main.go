package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/mbiondo/logShaper/core"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	// Import stages for auto-registration
	_ "github.com/mbiondo/logShaper/stages/align"
	_ "github.com/mbiondo/logShaper/stages/cli"
	_ "github.com/mbiondo/logShaper/stages/colorize"
	_ "github.com/mbiondo/logShaper/stages/json"
	_ "github.com/mbiondo/logShaper/stages/label"
	_ "github.com/mbiondo/logShaper/stages/logstash"
	_ "github.com/mbiondo/logShaper/stages/metadata"
	_ "github.com/mbiondo/logShaper/stages/ms"
	_ "github.com/mbiondo/logShaper/stages/padlevels"
	_ "github.com/mbiondo/logShaper/stages/passthrough"
	_ "github.com/mbiondo/logShaper/stages/prettyprint"
	_ "github.com/mbiondo/logShaper/stages/simple"
	_ "github.com/mbiondo/logShaper/stages/timestamp"
	_ "github.com/mbiondo/logShaper/stages/uncolorize"
)

// chainHolder swaps the active chain when the config file is reloaded
type chainHolder struct {
	mu    sync.RWMutex
	chain core.RecordStage
}

func (h *chainHolder) get() core.RecordStage {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.chain
}

func (h *chainHolder) set(chain core.RecordStage) {
	h.mu.Lock()
	h.chain = chain
	h.mu.Unlock()
}

func main() {
	// Command line flags
	configFile := flag.String("config", "", "Path to chain definition file (YAML)")
	watch := flag.Bool("watch", false, "Reload the chain when the config file changes")
	metricsAddr := flag.String("metrics", "", "Address to serve Prometheus metrics on (e.g. :9091)")
	flag.Parse()

	// Load configuration
	var config *core.Config
	var err error

	if *configFile != "" {
		config, err = core.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Error loading config file: %v", err)
		}
		log.Printf("Loaded chain definition from %s", *configFile)
	} else {
		config = core.DefaultConfig()
		log.Println("Using default chain definition")
	}

	chain, err := buildChain(config)
	if err != nil {
		log.Fatalf("Error building chain: %v", err)
	}

	holder := &chainHolder{}
	holder.set(chain)

	// Watch the config file for changes
	if *watch && *configFile != "" {
		watcher, err := core.NewConfigWatcher(*configFile, func(newConfig *core.Config) {
			// A broken edit must not take down a running process
			reloaded, err := buildChain(newConfig)
			if err != nil {
				log.Printf("Error building reloaded chain, keeping previous: %v", err)
				return
			}
			holder.set(reloaded)
			log.Println("Chain definition reloaded")
		})
		if err != nil {
			log.Fatalf("Error watching config file: %v", err)
		}
		defer watcher.Stop()
	}

	// Serve stage metrics
	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr)
	}

	// Transform records from stdin, one per line, and emit kept ones
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		rec, err := core.ParseRecord(line)
		if err != nil {
			log.Printf("Skipping unparsable record: %v", err)
			continue
		}

		out, ok, err := holder.get().Transform(rec)
		if err != nil {
			log.Printf("Error transforming record: %v", err)
			continue
		}
		if !ok {
			continue // Dropped by a stage
		}
		fmt.Println(out.Message)
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("Error reading input: %v", err)
	}
}

// buildChain instantiates every configured stage, wraps each with outcome
// metrics, and folds them into one stage
func buildChain(config *core.Config) (core.RecordStage, error) {
	stages := make([]core.RecordStage, 0, len(config.Stages))
	for i, def := range config.Stages {
		stage, err := core.CreateStage(def.Type, def.Config)
		if err != nil {
			return nil, fmt.Errorf("stage #%d (%s): %w", i+1, def.Type, err)
		}
		stages = append(stages, core.Instrument(stage))
		log.Printf("Using %s stage #%d", def.Type, i+1)
	}
	return core.All(stages...), nil
}

// serveMetrics exposes the Prometheus registry over HTTP
func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Serving metrics on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
