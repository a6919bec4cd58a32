package main

import (
	"database/sql"

	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/cubedraft/go/internal/catalog"
	catalogdb "github.com/mcdev12/cubedraft/go/internal/catalog/db"
	"github.com/mcdev12/cubedraft/go/internal/draft/draft"
	"github.com/mcdev12/cubedraft/go/internal/draft/pick"
	"github.com/mcdev12/cubedraft/go/internal/draft/pool"
	"github.com/mcdev12/cubedraft/go/internal/draft/repository"
	"github.com/mcdev12/cubedraft/go/internal/models"
	"github.com/mcdev12/cubedraft/go/internal/participants"
	participantsdb "github.com/mcdev12/cubedraft/go/internal/participants/db"
)

type Services struct {
	Participants *participants.Service
	Catalog      *catalog.Service
	Draft        *draft.Service
	Pool         *pool.Service
	Pick         *pick.Service
}

func setupServices(database *sql.DB, rules models.DraftRules, clock clockwork.Clock) *Services {
	// Database layer → Repository layer → App layer → Service layer

	// Participants
	participantRepo := participants.NewRepository(participantsdb.New(database))
	participantApp := participants.NewApp(participantRepo, clock)

	// Catalog
	catalogRepo := catalog.NewRepository(catalogdb.New(database))
	catalogApp := catalog.NewApp(catalogRepo)

	// Draft core shares one locking repository
	base := repository.NewRepository(database)
	draftApp := draft.NewApp(draft.NewRepository(base), clock, draft.DefaultIntner, rules)
	poolApp := pool.NewApp(pool.NewRepository(base), catalogApp, clock)
	pickApp := pick.NewApp(pick.NewRepository(base), clock, rules)

	return &Services{
		Participants: participants.NewService(participantApp),
		Catalog:      catalog.NewService(catalogApp),
		Draft:        draft.NewService(draftApp),
		Pool:         pool.NewService(poolApp),
		Pick:         pick.NewService(pickApp),
	}
}
