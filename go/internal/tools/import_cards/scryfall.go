package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/mcdev12/cubedraft/go/internal/models"
)

// scryfallCard is the subset of a Scryfall bulk-data card object we keep.
type scryfallCard struct {
	ID            string            `json:"id"`
	OracleID      string            `json:"oracle_id"`
	Name          string            `json:"name"`
	Layout        models.CardLayout `json:"layout"`
	ColorIdentity json.RawMessage   `json:"color_identity"`
	SetID         string            `json:"set_id"`
	Set           string            `json:"set"`
	SetName       string            `json:"set_name"`
	SetType       string            `json:"set_type"`
	ScryfallURI   string            `json:"scryfall_uri"`
	Booster       bool              `json:"booster"`
	ImageURIs     *models.ImageURIs `json:"image_uris"`
	CardFaces     []struct {
		ImageURIs *models.ImageURIs `json:"image_uris"`
	} `json:"card_faces"`
}

// filter decides which cards are imported.
type filter struct {
	layouts     map[models.CardLayout]bool
	boosterOnly bool
}

func newFilter(layouts []string, boosterOnly bool) filter {
	f := filter{layouts: make(map[models.CardLayout]bool, len(layouts)), boosterOnly: boosterOnly}
	for _, l := range layouts {
		f.layouts[models.CardLayout(l)] = true
	}
	return f
}

func (f filter) keep(c *scryfallCard) bool {
	return f.layouts[c.Layout] && (c.Booster || !f.boosterOnly)
}

// parseStats counts what happened to every object in the dump.
type parseStats struct {
	Seen     int
	Kept     int
	Filtered int
	Invalid  int
}

// parseCards streams a Scryfall bulk JSON array from r and calls emit for
// every card that passes f. Objects with unusable ids are counted and skipped.
func parseCards(r io.Reader, f filter, emit func(models.Card) error) (parseStats, error) {
	var stats parseStats
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return stats, fmt.Errorf("read opening token: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return stats, fmt.Errorf("expected a JSON array, got %v", tok)
	}

	for dec.More() {
		var sc scryfallCard
		if err := dec.Decode(&sc); err != nil {
			return stats, fmt.Errorf("decode card %d: %w", stats.Seen+1, err)
		}
		stats.Seen++

		if !f.keep(&sc) {
			stats.Filtered++
			continue
		}
		card, err := toCard(&sc)
		if err != nil {
			stats.Invalid++
			continue
		}
		if err := emit(card); err != nil {
			return stats, err
		}
		stats.Kept++
	}

	if _, err := dec.Token(); err != nil {
		return stats, fmt.Errorf("read closing token: %w", err)
	}
	return stats, nil
}

// toCard flattens sc. Dual-faced layouts take the front images from the
// first face and the back images from the second.
func toCard(sc *scryfallCard) (models.Card, error) {
	id, err := uuid.Parse(sc.ID)
	if err != nil {
		return models.Card{}, fmt.Errorf("card id %q: %w", sc.ID, err)
	}

	card := models.Card{
		ID:            id,
		Name:          sc.Name,
		Layout:        sc.Layout,
		ColorIdentity: sc.ColorIdentity,
		SetID:         sc.SetID,
		SetCode:       sc.Set,
		SetName:       sc.SetName,
		SetType:       sc.SetType,
		ScryfallURI:   sc.ScryfallURI,
		Booster:       sc.Booster,
	}
	if oracle, err := uuid.Parse(sc.OracleID); err == nil {
		card.OracleID = &oracle
	}

	if sc.Layout.IsDualFaced() {
		if len(sc.CardFaces) > 0 && sc.CardFaces[0].ImageURIs != nil {
			card.Front = *sc.CardFaces[0].ImageURIs
		}
		back := models.ImageURIs{}
		if len(sc.CardFaces) > 1 && sc.CardFaces[1].ImageURIs != nil {
			back = *sc.CardFaces[1].ImageURIs
		}
		card.Back = &back
	} else if sc.ImageURIs != nil {
		card.Front = *sc.ImageURIs
	}
	return card, nil
}
