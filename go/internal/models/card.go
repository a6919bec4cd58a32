package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// CardLayout is the Scryfall layout of a card.
type CardLayout string

const (
	CardLayoutNormal    CardLayout = "normal"
	CardLayoutSplit     CardLayout = "split"
	CardLayoutFlip      CardLayout = "flip"
	CardLayoutTransform CardLayout = "transform"
	CardLayoutModalDFC  CardLayout = "modal_dfc"
	CardLayoutMeld      CardLayout = "meld"
	CardLayoutLeveler   CardLayout = "leveler"
	CardLayoutClass     CardLayout = "class"
	CardLayoutCase      CardLayout = "case"
	CardLayoutSaga      CardLayout = "saga"
	CardLayoutAdventure CardLayout = "adventure"
	CardLayoutMutate    CardLayout = "mutate"
	CardLayoutPrototype CardLayout = "prototype"
)

// IsDualFaced reports whether images for this layout live on card_faces.
func (l CardLayout) IsDualFaced() bool {
	return l == CardLayoutTransform || l == CardLayoutModalDFC
}

// ImageURIs holds the image variants of one card face.
type ImageURIs struct {
	Small      *string `json:"small,omitempty"`
	Normal     *string `json:"normal,omitempty"`
	Large      *string `json:"large,omitempty"`
	PNG        *string `json:"png,omitempty"`
	ArtCrop    *string `json:"art_crop,omitempty"`
	BorderCrop *string `json:"border_crop,omitempty"`
}

// Card is a flattened catalog record. Faces are resolved at import time.
type Card struct {
	ID            uuid.UUID       `json:"id"`
	OracleID      *uuid.UUID      `json:"oracle_id,omitempty"`
	Name          string          `json:"name"`
	Layout        CardLayout      `json:"layout"`
	ColorIdentity json.RawMessage `json:"color_identity,omitempty"`
	SetID         string          `json:"set_id"`
	SetCode       string          `json:"set_code"`
	SetName       string          `json:"set_name"`
	SetType       string          `json:"set_type"`
	ScryfallURI   string          `json:"scryfall_uri"`
	Booster       bool            `json:"booster"`
	Front         ImageURIs       `json:"front"`
	Back          *ImageURIs      `json:"back,omitempty"`
}

// CardSet summarises one source set in the catalog.
type CardSet struct {
	SetID     string `json:"set_id"`
	SetCode   string `json:"set_code"`
	SetName   string `json:"set_name"`
	CardCount int    `json:"card_count"`
}
