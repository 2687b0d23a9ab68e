// Command seed creates the admin account and a handful of sample leads.
// Running it again keeps the existing admin and adds the samples again.
package main

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/leadsite/marketing-api/internal/core/domain"
	"github.com/leadsite/marketing-api/internal/infrastructure/config"
	"github.com/leadsite/marketing-api/internal/infrastructure/db"
	"github.com/leadsite/marketing-api/internal/pkg/password"
	"github.com/leadsite/marketing-api/pkg/logger"
)

var samples = []domain.Contact{
	{Name: "Sarah Chen", Email: "sarah@example.com", Message: "Hi! I would love to learn more about your services. Please reach out when you can.", Status: domain.ContactStatusNew},
	{Name: "Miguel Alvarez", Email: "miguel.alvarez@example.com", Message: "We are interested in a partnership. Can you share your media kit and pricing?", Status: domain.ContactStatusRead},
	{Name: "Priya Singh", Email: "priya.singh@example.com", Message: "Great landing page! Could you send more details about your upcoming release?", Status: domain.ContactStatusNew},
	{Name: "Noah Johnson", Email: "noah.j@example.com", Message: "Do you have an enterprise offering? Our team would like to schedule a demo.", Status: domain.ContactStatusRead},
	{Name: "Amina Yusuf", Email: "amina.y@example.com", Message: "Looking to switch providers. Please provide pricing and onboarding steps.", Status: domain.ContactStatusNew},
}

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.New(logger.Options{})
		l.Fatal().Err(err).Msg("load config")
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "marketing-seed",
	})

	if cfg.Store.Driver == config.DriverMemory {
		log.Error().Msg("seeding the memory store has no lasting effect, set STORE_DRIVER")
		os.Exit(1)
	}

	store, err := db.Open(ctx, cfg.Store, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer store.Close(ctx)

	hash, err := password.NewHasher(cfg.Auth.BcryptCost).Hash(cfg.Seed.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("hash admin password")
	}

	email := strings.ToLower(strings.TrimSpace(cfg.Seed.AdminEmail))
	now := time.Now().UTC()
	_, err = store.Users.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Name:         cfg.Seed.AdminName,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	switch {
	case errors.Is(err, domain.ErrUserExists):
		log.Info().Str("email", email).Msg("admin already exists")
	case err != nil:
		log.Fatal().Err(err).Msg("create admin")
	default:
		log.Info().Str("email", email).Msg("admin created")
	}

	for i, s := range samples {
		c := s
		c.ID = uuid.NewString()
		c.CreatedAt = now.Add(time.Duration(i) * time.Second)
		if err := store.Contacts.Create(ctx, &c); err != nil {
			log.Fatal().Err(err).Str("email", c.Email).Msg("create sample contact")
		}
	}

	log.Info().Str("admin", email).Int("contacts", len(samples)).Msg("seed complete")
}
