package main

import (
	"context"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/crease/internal/apperr"
	"github.com/mauv0809/crease/internal/auth"
	"github.com/mauv0809/crease/internal/database"
	"github.com/mauv0809/crease/internal/lookup"
	"github.com/mauv0809/crease/internal/match"
	"github.com/mauv0809/crease/internal/profile"
)

const (
	umpireEmail    = "umpire@crease.local"
	umpirePassword = "umpire-demo"
	numMatches     = 20
	playersPerSide = 6
)

var teams = []string{"Warriors", "Titans", "Knights", "Strikers", "Royals", "Chargers"}

// Simplified config loading for the script
func loadConfig() (dbName, primaryURL, authToken string) {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	dbName = os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "crease.db"
	}
	return dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN")
}

func main() {
	log.Info("Starting database seeder...")
	ctx := context.Background()

	db, teardown, err := database.InitDB(loadConfig())
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "seeder"
	}
	identities := auth.NewLocal(db, secret, time.Hour)
	profiles := profile.New(db)
	matches := match.New(db, lookup.New(db))

	umpireID, err := ensureUmpire(ctx, identities, profiles)
	if err != nil {
		log.Fatalf("Failed to create demo umpire: %s", err)
	}
	log.Info("Ensured demo umpire exists.", "email", umpireEmail, "id", umpireID)

	startTime := time.Now()
	for i := 0; i < numMatches; i++ {
		a := rand.Intn(len(teams))
		b := (a + 1 + rand.Intn(len(teams)-1)) % len(teams)
		if err := seedMatch(ctx, matches, umpireID, teams[a], teams[b], i); err != nil {
			log.Fatalf("Failed to seed match: %s", err)
		}
	}
	log.Info("Successfully seeded matches.", "total", numMatches, "duration", time.Since(startTime))
}

func ensureUmpire(ctx context.Context, identities auth.Provider, profiles profile.ProfileStore) (string, error) {
	user, err := identities.CreateUser(ctx, umpireEmail, umpirePassword)
	if apperr.Is(err, apperr.KindConflict) {
		user, _, err = identities.SignIn(ctx, umpireEmail, umpirePassword)
	}
	if err != nil {
		return "", err
	}
	name := "Demo Umpire"
	return user.ID, profiles.Upsert(ctx, &profile.Profile{
		ID:       user.ID,
		FullName: &name,
		Username: user.Email,
		Role:     profile.RoleUmpire,
	})
}

// seedMatch creates a completed match with a batting card for team A and a
// bowling card for team B.
func seedMatch(ctx context.Context, matches match.MatchStore, umpireID, teamA, teamB string, n int) error {
	id, err := matches.Create(ctx, match.CreateInput{
		TeamAName:    teamA,
		TeamBName:    teamB,
		LocationName: "Seeded Oval",
		StartDate:    time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour),
		CreatedBy:    umpireID,
	})
	if err != nil {
		return err
	}
	m, err := matches.Get(ctx, id)
	if err != nil {
		return err
	}

	total, wickets := 0, 0
	for p := 0; p < playersPerSide; p++ {
		name := teamA + " batter " + string(rune('A'+p))
		stat, err := matches.AddPlayer(ctx, id, match.AddPlayerInput{TeamID: m.TeamA.ID, PlayerName: &name})
		if err != nil {
			return err
		}
		runs, balls := rand.Intn(60), 1+rand.Intn(45)
		total += runs
		if _, err := matches.UpdatePlayerStat(ctx, id, stat.ID, match.StatUpdate{
			Runs:    match.Some(runs),
			Balls:   match.Some(balls),
			Fours:   match.Some(runs / 8),
			Sixes:   match.Some(runs / 20),
			Wickets: match.Null[int](),
			Overs:   match.Null[float64](),
		}); err != nil {
			return err
		}

		bowler := teamB + " bowler " + string(rune('A'+p))
		stat, err = matches.AddPlayer(ctx, id, match.AddPlayerInput{TeamID: m.TeamB.ID, PlayerName: &bowler})
		if err != nil {
			return err
		}
		w := rand.Intn(3)
		wickets += w
		if _, err := matches.UpdatePlayerStat(ctx, id, stat.ID, match.StatUpdate{
			Runs:    match.Some(rand.Intn(40)),
			Balls:   match.Null[int](),
			Fours:   match.Null[int](),
			Sixes:   match.Null[int](),
			Wickets: match.Some(w),
			Overs:   match.Some(float64(1 + rand.Intn(4))),
		}); err != nil {
			return err
		}
	}

	if _, err := matches.UpdateScore(ctx, id, match.ScoreUpdate{
		TeamAScore:   match.Some(total),
		TeamAWickets: match.Some(min(wickets, 10)),
		TeamAOvers:   match.Some(float64(m.Overs)),
		TeamBScore:   match.Some(max(0, total-10+rand.Intn(20))),
		TeamBWickets: match.Some(rand.Intn(11)),
		TeamBOvers:   match.Some(float64(m.Overs)),
		Target:       match.Some(total + 1),
	}); err != nil {
		return err
	}
	if _, _, err := matches.UpdateStatus(ctx, id, match.StatusCompleted); err != nil {
		return err
	}
	log.Info("Seeded match", "n", n+1, "matchID", id, "teamA", teamA, "teamB", teamB, "score", total)
	return nil
}
