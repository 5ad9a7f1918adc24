package main

import (
	"bufio"
	"context"
	"database/sql"
	"flag"
	"os"
	"strings"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"streetscout/internal/adapters/observability"
	"streetscout/internal/adapters/places"
	redisad "streetscout/internal/adapters/redis"
	"streetscout/internal/app"
	"streetscout/internal/domain"
	"streetscout/internal/scoring"
	"streetscout/internal/shared"
	mysqlrepo "streetscout/internal/storage/mysql"
)

type job struct {
	businessType domain.BusinessType
	location     string
	targets      []string
}

// readJobs parses one job per line: "business_type|location|target1,target2".
// The targets field is optional; blank lines and #-comments are skipped.
func readJobs(path string) ([]job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var jobs []job
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "|", 3)
		if len(parts) < 2 {
			log.Warn().Str("line", line).Msg("skipping malformed job line")
			continue
		}
		j := job{
			businessType: domain.BusinessType(strings.TrimSpace(parts[0])),
			location:     strings.TrimSpace(parts[1]),
		}
		if len(parts) == 3 {
			for _, t := range strings.Split(parts[2], ",") {
				if t = strings.TrimSpace(t); t != "" {
					j.targets = append(j.targets, t)
				}
			}
		}
		jobs = append(jobs, j)
	}
	return jobs, sc.Err()
}

func main() {
	jobsPath := flag.String("jobs", "jobs.txt", "path to the job list file")
	flag.Parse()

	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	// scrapeable while a long batch runs; no-op unless METRICS_ADDR is set
	observability.Serve(observability.InitRegistry())

	jobs, err := readJobs(*jobsPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *jobsPath).Msg("failed to read job list")
	}

	log.Info().
		Str("base", cfg.PlacesBase).
		Int("workers", cfg.Workers).
		Int("jobs", len(jobs)).
		Msg("batch analyzer starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	client, err := places.New(cfg.PlacesBase, cfg.PlacesKey, cfg.PlacesRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize places client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	src := app.NewCachedPlaces(client, cache, cfg.CacheTTL)
	analyzer := app.NewAnalysisService(src, repo, cache, scoring.DefaultRules(), cfg.CacheTTL)

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, j := range jobs {
		j := j

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			defer sem.Release(int64(1))

			a, err := analyzer.AnalyzeLocation(ctx, j.location, j.businessType, j.targets)
			observability.ObserveAnalysis(string(j.businessType), err)
			if err != nil {
				log.Warn().Str("location", j.location).Err(err).Msg("analysis failed")
				return
			}
			log.Info().
				Str("id", a.ID).
				Str("location", j.location).
				Float64("confidence", a.Recommendation.Confidence).
				Msg("analysis ok")
		}(j)
	}

	wg.Wait()
	log.Info().Msg("batch completed")
}
