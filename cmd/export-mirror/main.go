package main

import (
	"context"
	"flag"
	"log"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"

	"pokehub/internal/mirror"
	"pokehub/internal/pokeapi"
	"pokehub/pkg/utils"
)

// export-mirror snapshots live records into the directory mirror-server reads.
func main() {
	var (
		outDir = flag.String("out", "data/pokemon", "output directory")
		names  = flag.String("names", "", "comma-separated names or ids to export")
		random = flag.Int("random", 0, "also export this many random pokemon")
	)
	flag.Parse()

	if err := utils.LoadDotEnv(); err != nil {
		log.Fatalf("load .env: %v", err)
	}
	cfg := utils.LoadConfig()

	logger, err := utils.NewLogger(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	var queries []string
	for _, n := range strings.Split(*names, ",") {
		if n = strings.TrimSpace(n); n != "" {
			queries = append(queries, n)
		}
	}
	if *random > 0 {
		r := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
		queries = append(queries, pokeapi.Queries(pokeapi.RandomTeamIDs(r, *random))...)
	}
	if len(queries) == 0 {
		logger.Fatal("nothing to export, pass -names and/or -random")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client := pokeapi.New(cfg.APIBase, cfg.HTTPTimeout, logger.Named("pokeapi"))
	results, err := client.FetchMany(ctx, queries)
	if err != nil {
		logger.Fatal("fetch failed", zap.Error(err))
	}

	paths, err := mirror.Export(*outDir, results)
	if err != nil {
		logger.Fatal("export failed", zap.Error(err))
	}
	logger.Info("exported", zap.Int("records", len(paths)), zap.String("dir", *outDir))
}
