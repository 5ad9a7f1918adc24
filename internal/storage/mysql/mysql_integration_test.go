//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"streetscout/internal/domain"
	mysqlrepo "streetscout/internal/storage/mysql"
)

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=streetscout",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "streetscout")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func TestRepo_MySQL_SaveAndGetAnalysis(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	a := domain.Analysis{
		ID:                 "analysis_1700000000",
		Location:           "Union Square, NYC",
		Coord:              domain.Coordinate{Lat: 40.7359, Lng: -73.9911},
		BusinessType:       domain.FoodTruck,
		TargetDemographics: []string{"young_professionals"},
		Recommendation: domain.BusinessRecommendation{
			BusinessType: domain.FoodTruck,
			Segment:      "Medium-Potential Location",
			Confidence:   64.5,
			Reasoning:    "Standard market conditions observed",
			Insight: domain.LocationInsight{
				Coord:              domain.Coordinate{Lat: 40.7359, Lng: -73.9911},
				FootTraffic:        72,
				CompetitionDensity: 60,
				DemographicMatch:   55,
				OptimalHours:       []string{"11:00-14:00", "17:00-20:00"},
			},
			RevenuePotential:    "Medium-High",
			SetupRequirements:   []string{"Food truck or cart", "Permits and licenses"},
			RecommendedDuration: "1-2 weeks trial period",
			GeneratedAt:         time.Now().UTC().Truncate(time.Second),
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := repo.SaveAnalysis(ctx, a); err != nil {
		t.Fatalf("SaveAnalysis: %v", err)
	}

	// Saving again must not error (upsert semantics).
	a.Recommendation.Confidence = 66
	if err := repo.SaveAnalysis(ctx, a); err != nil {
		t.Fatalf("SaveAnalysis upsert: %v", err)
	}

	got, err := repo.GetAnalysis(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetAnalysis: %v", err)
	}
	if got.ID != a.ID || got.Location != a.Location || got.BusinessType != domain.FoodTruck {
		t.Fatalf("unexpected analysis: %+v", got)
	}
	if got.Recommendation.Confidence != 66 {
		t.Fatalf("upsert did not replace recommendation: %+v", got.Recommendation)
	}
	if len(got.TargetDemographics) != 1 || got.TargetDemographics[0] != "young_professionals" {
		t.Fatalf("unexpected target demographics: %v", got.TargetDemographics)
	}
	if len(got.Recommendation.Insight.OptimalHours) != 2 {
		t.Fatalf("insight did not round-trip: %+v", got.Recommendation.Insight)
	}
}

func TestRepo_MySQL_GetAnalysisNotFound(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)

	_, err := repo.GetAnalysis(context.Background(), "analysis_missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRepo_MySQL_EventsAndMisses(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	if err := repo.InsertEvent(ctx, "location_analysis", map[string]any{"business_type": "retail"}); err != nil {
		t.Fatalf("InsertEvent: %v", err)
	}
	if err := repo.LogMiss(ctx, "places/search", 503, "upstream 503"); err != nil {
		t.Fatalf("LogMiss: %v", err)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM analytics_events WHERE event_type = 'location_analysis'`).Scan(&n); err != nil || n != 1 {
		t.Fatalf("events count: n=%d err=%v", n, err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM fetch_misses WHERE endpoint = 'places/search'`).Scan(&n); err != nil || n != 1 {
		t.Fatalf("misses count: n=%d err=%v", n, err)
	}
}
