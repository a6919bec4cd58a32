package repository

import (
	"github.com/mcdev12/cubedraft/go/internal/draft/db"
	"github.com/mcdev12/cubedraft/go/internal/models"
	"github.com/mcdev12/cubedraft/go/internal/sqlutil"
)

func DraftToModel(d db.Draft) *models.Draft {
	return &models.Draft{
		ID:        d.ID,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
	}
}

func DraftParticipantToModel(dp db.DraftParticipant) *models.DraftParticipant {
	return &models.DraftParticipant{
		ID:            dp.ID,
		DraftID:       dp.DraftID,
		ParticipantID: dp.ParticipantID,
		TurnOrder:     int(dp.TurnOrder),
		JoinedAt:      dp.JoinedAt,
	}
}

func DraftParticipantsToModels(rows []db.DraftParticipant) []models.DraftParticipant {
	out := make([]models.DraftParticipant, len(rows))
	for i, row := range rows {
		out[i] = *DraftParticipantToModel(row)
	}
	return out
}

func PoolEntryToModel(pe db.PoolEntry) *models.PoolEntry {
	return &models.PoolEntry{
		ID:             pe.ID,
		DraftID:        pe.DraftID,
		CardID:         pe.CardID,
		RemainingCount: int(pe.RemainingCount),
	}
}

func PoolCardToModel(row db.ListPoolEntriesRow) models.PoolCard {
	return models.PoolCard{
		PoolEntry: models.PoolEntry{
			ID:             row.ID,
			DraftID:        row.DraftID,
			CardID:         row.CardID,
			RemainingCount: int(row.RemainingCount),
		},
		CardName:       row.CardName,
		SetCode:        row.SetCode,
		ImageURINormal: sqlutil.FromSqlStringPtr(row.ImageUriNormal),
	}
}

func PickToModel(p db.Pick) *models.Pick {
	return &models.Pick{
		ID:                 p.ID,
		DraftID:            p.DraftID,
		DraftParticipantID: p.DraftParticipantID,
		PoolEntryID:        p.PoolEntryID,
		PickNumber:         int(p.PickNumber),
		PickedAt:           p.PickedAt,
	}
}
